package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/2HgO/webhook-registry/services"
)

type handler struct {
	webhookService services.WebhookService

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
