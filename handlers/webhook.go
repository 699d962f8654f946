package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/2HgO/webhook-registry/errors"
	"github.com/2HgO/webhook-registry/services"
	"github.com/2HgO/webhook-registry/types/requests"
	"github.com/2HgO/webhook-registry/utils"
)

type WebhookHandler interface {
	CreateWebhook(w http.ResponseWriter, r *http.Request)
	FetchServerWebhooks(w http.ResponseWriter, r *http.Request)
	FetchChannelWebhooks(w http.ResponseWriter, r *http.Request)
	FetchWebhook(w http.ResponseWriter, r *http.Request)
	FetchWebhookWithToken(w http.ResponseWriter, r *http.Request)
	EditWebhook(w http.ResponseWriter, r *http.Request)
	DeleteWebhook(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewWebhookHandler(webhookService services.WebhookService, log *zap.Logger) WebhookHandler {
	return &webhookHandler{
		handler: handler{webhookService: webhookService, log: log},
	}
}

type webhookHandler struct {
	handler
}

func (h *webhookHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/servers/{server_id}/webhooks", h.CreateWebhook)
	mux.HandleFunc("GET /api/v1/servers/{server_id}/webhooks", h.FetchServerWebhooks)
	mux.HandleFunc("GET /api/v1/channels/{channel_id}/webhooks", h.FetchChannelWebhooks)

	mux.HandleFunc("GET /api/v1/webhooks/{webhook_id}", h.FetchWebhook)
	mux.HandleFunc("PUT /api/v1/webhooks/{webhook_id}", h.EditWebhook)
	mux.HandleFunc("DELETE /api/v1/webhooks/{webhook_id}", h.DeleteWebhook)

	// same shape as the url a webhook derives for itself
	mux.HandleFunc("GET /api/webhooks/{webhook_id}/{token}", h.FetchWebhookWithToken)
}

func (h *webhookHandler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	req := new(requests.CreateWebhookRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := h.webhookService.CreateWebhook(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}

func (h *webhookHandler) FetchServerWebhooks(w http.ResponseWriter, r *http.Request) {
	req := new(requests.FetchServerWebhooksRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := h.webhookService.FetchServerWebhooks(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (h *webhookHandler) FetchChannelWebhooks(w http.ResponseWriter, r *http.Request) {
	req := new(requests.FetchChannelWebhooksRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := h.webhookService.FetchChannelWebhooks(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (h *webhookHandler) FetchWebhook(w http.ResponseWriter, r *http.Request) {
	req := new(requests.FetchWebhookRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := h.webhookService.FetchWebhook(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (h *webhookHandler) FetchWebhookWithToken(w http.ResponseWriter, r *http.Request) {
	req := new(requests.FetchWebhookWithTokenRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := h.webhookService.FetchWebhookWithToken(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (h *webhookHandler) EditWebhook(w http.ResponseWriter, r *http.Request) {
	req := new(requests.EditWebhookRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := h.webhookService.EditWebhook(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (h *webhookHandler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	req := new(requests.DeleteWebhookRequest)
	if err := utils.Bind(r, req); err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	if err := h.webhookService.DeleteWebhook(r.Context(), req); err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	w.WriteHeader(204)
}
