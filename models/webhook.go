package models

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	DefaultHost = "discordapp.com"
	URLTemplate = "https://%s/api/webhooks/%s/%s"
)

var ErrIncompleteWebhook = errors.New("webhook is missing an id or token")

// WebhookOptions carries the fields a Webhook is built from. Every field is
// optional; a zero field means the value is absent.
type WebhookOptions struct {
	ID      string
	Name    string
	Server  *Server
	Channel *Channel
	Token   string
}

// Webhook represents a webhook in a server's channel.
//
// Two webhooks are equal when their ids are equal, and Hash is derived from
// the id alone. Changing the id of a webhook that is held in a WebhookSet is
// undefined.
type Webhook struct {
	ID      string
	Name    string
	Server  *Server
	Channel *Channel
	Token   string
}

func NewWebhook(opts WebhookOptions) *Webhook {
	w := new(Webhook)
	w.Update(opts)
	return w
}

// Update overwrites every field from opts. Omitted options reset the field.
// The five writes are not atomic; callers sharing a webhook across goroutines
// must synchronise.
func (w *Webhook) Update(opts WebhookOptions) {
	w.Name = opts.Name
	w.Server = opts.Server
	w.Channel = opts.Channel
	w.ID = opts.ID
	w.Token = opts.Token
}

func (w *Webhook) Equal(other any) bool {
	if w == nil {
		return false
	}
	switch o := other.(type) {
	case *Webhook:
		return o != nil && o.ID == w.ID
	case Webhook:
		return o.ID == w.ID
	default:
		return false
	}
}

func (w *Webhook) Hash() uint64 {
	if w == nil {
		return xxhash.Sum64String("")
	}
	return xxhash.Sum64String(w.ID)
}

// Key returns the identity of the webhook for use as a map key.
func (w *Webhook) Key() string {
	return w.ID
}

func (w *Webhook) String() string {
	return w.Name
}

// URL returns the invocation URL of the webhook on the default host. Absent
// ids or tokens are embedded as empty path segments.
func (w *Webhook) URL() string {
	return FormatURL(DefaultHost, w.ID, w.Token)
}

// ValidURL is URL for callers that refuse incomplete webhooks.
func (w *Webhook) ValidURL() (string, error) {
	if w.ID == "" || w.Token == "" {
		return "", ErrIncompleteWebhook
	}
	return w.URL(), nil
}

func FormatURL(host, id, token string) string {
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf(URLTemplate, host, id, token)
}

// ServerID returns the id of the owning server, or "" if absent.
func (w *Webhook) ServerID() string {
	if w.Server == nil {
		return ""
	}
	return w.Server.ID
}

// ChannelID returns the id of the owning channel, or "" if absent.
func (w *Webhook) ChannelID() string {
	if w.Channel == nil {
		return ""
	}
	return w.Channel.ID
}
