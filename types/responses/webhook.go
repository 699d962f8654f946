package responses

import (
	"time"

	"github.com/2HgO/webhook-registry/models"
)

type WebhookResponseData struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	GuildID   string     `json:"guild_id,omitempty"`
	ChannelID string     `json:"channel_id,omitempty"`
	Token     string     `json:"token,omitempty"`
	URL       string     `json:"url"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewWebhookResponseData(w *models.Webhook, url string) *WebhookResponseData {
	return &WebhookResponseData{
		ID:        w.ID,
		Name:      w.String(),
		GuildID:   w.ServerID(),
		ChannelID: w.ChannelID(),
		Token:     w.Token,
		URL:       url,
	}
}
