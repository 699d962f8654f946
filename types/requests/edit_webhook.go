package requests

// EditWebhookRequest replaces every mutable field of a webhook. Fields left
// out of the body are cleared.
type EditWebhookRequest struct {
	WebhookID string `uri:"webhook_id" validate:"required"`
	Name      string `json:"name" validate:"max=80"`
	ChannelID string `json:"channel_id"`
	Token     string `json:"token" validate:"max=100"`
}
