package requests

type FetchServerWebhooksRequest struct {
	ServerID string `uri:"server_id" validate:"required"`
	Limit    uint64 `query:"limit" default:"50" validate:"gte=1,lte=100"`
	Offset   uint64 `query:"offset"`
}

type FetchChannelWebhooksRequest struct {
	ChannelID string `uri:"channel_id" validate:"required"`
	Limit     uint64 `query:"limit" default:"50" validate:"gte=1,lte=100"`
	Offset    uint64 `query:"offset"`
}
