package models

// Server is the guild a webhook belongs to. Webhooks only reference it.
type Server struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Channel struct {
	ID       string `json:"id"`
	ServerID string `json:"guild_id"`
	Name     string `json:"name"`
}
