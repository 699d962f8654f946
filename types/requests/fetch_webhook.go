package requests

type FetchWebhookRequest struct {
	WebhookID string `uri:"webhook_id" validate:"required"`
}

type FetchWebhookWithTokenRequest struct {
	WebhookID string `uri:"webhook_id" validate:"required"`
	Token     string `uri:"token" validate:"required"`
}

type DeleteWebhookRequest struct {
	WebhookID string `uri:"webhook_id" validate:"required"`
}
