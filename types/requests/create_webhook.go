package requests

type CreateWebhookRequest struct {
	ServerID  string `uri:"server_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=80"`
}
