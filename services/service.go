package services

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/2HgO/webhook-registry/config"
	"github.com/2HgO/webhook-registry/models"
)

type service struct {
	dataDB         *sql.DB
	cfg            *config.Config
	serverService  ServerService
	webhookService WebhookService
	log            *zap.Logger
}

// webhookURL derives the invocation URL on the configured host. In strict
// mode incomplete webhooks are refused instead of producing a URL with empty
// segments.
func (s *service) webhookURL(w *models.Webhook) (string, error) {
	if s.cfg.StrictURL {
		if _, err := w.ValidURL(); err != nil {
			return "", err
		}
	}
	return models.FormatURL(s.cfg.WebhookHost, w.ID, w.Token), nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
