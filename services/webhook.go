package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/2HgO/webhook-registry/config"
	"github.com/2HgO/webhook-registry/errors"
	"github.com/2HgO/webhook-registry/models"
	"github.com/2HgO/webhook-registry/types/requests"
	"github.com/2HgO/webhook-registry/types/responses"
)

type WebhookService interface {
	CreateWebhook(context.Context, *requests.CreateWebhookRequest) (*responses.Response[*responses.WebhookResponseData], error)
	FetchWebhook(context.Context, *requests.FetchWebhookRequest) (*responses.Response[*responses.WebhookResponseData], error)
	FetchWebhookWithToken(context.Context, *requests.FetchWebhookWithTokenRequest) (*responses.Response[*responses.WebhookResponseData], error)
	FetchServerWebhooks(context.Context, *requests.FetchServerWebhooksRequest) (*responses.Response[[]*responses.WebhookResponseData], error)
	FetchChannelWebhooks(context.Context, *requests.FetchChannelWebhooksRequest) (*responses.Response[[]*responses.WebhookResponseData], error)
	EditWebhook(context.Context, *requests.EditWebhookRequest) (*responses.Response[*responses.WebhookResponseData], error)
	DeleteWebhook(context.Context, *requests.DeleteWebhookRequest) error

	// PruneOrphanedWebhooks deletes webhooks whose channel no longer exists.
	PruneOrphanedWebhooks(context.Context) (int64, error)
}

func NewWebhookService(dataDatabase *sql.DB, serverService ServerService, cfg *config.Config, log *zap.Logger) WebhookService {
	return &webhookService{
		service: service{
			dataDB:        dataDatabase,
			cfg:           cfg,
			serverService: serverService,
			log:           log,
		},
	}
}

type webhookService struct {
	service
}

// webhookRow is a webhook as read from the data db, with its bookkeeping
// timestamps.
type webhookRow struct {
	hook      *models.Webhook
	createdAt time.Time
	updatedAt time.Time
}

func webhookColumns() sq.SelectBuilder {
	return sq.
		Select(
			"webhooks.id", "webhooks.name", "webhooks.token",
			"webhooks.server_id", "servers.name",
			"webhooks.channel_id", "channels.name", "channels.server_id",
			"webhooks.created_at", "webhooks.updated_at",
		).
		From("webhooks").
		LeftJoin("servers on servers.id = webhooks.server_id").
		LeftJoin("channels on channels.id = webhooks.channel_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWebhook(row rowScanner) (*webhookRow, error) {
	var (
		id, name, token        string
		serverID, serverName   sql.NullString
		channelID, channelName sql.NullString
		channelServerID        sql.NullString
		createdAt, updatedAt   time.Time
	)
	err := row.Scan(&id, &name, &token, &serverID, &serverName, &channelID, &channelName, &channelServerID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	opts := models.WebhookOptions{ID: id, Name: name, Token: token}
	if serverID.Valid {
		opts.Server = &models.Server{ID: serverID.String, Name: serverName.String}
	}
	if channelID.Valid {
		opts.Channel = &models.Channel{ID: channelID.String, ServerID: channelServerID.String, Name: channelName.String}
	}
	return &webhookRow{hook: models.NewWebhook(opts), createdAt: createdAt, updatedAt: updatedAt}, nil
}

func (w *webhookService) fetchWebhook(ctx context.Context, where sq.Eq) (*webhookRow, error) {
	row := webhookColumns().
		Where(where).
		Limit(1).
		RunWith(w.dataDB).
		QueryRowContext(ctx)

	res, err := scanWebhook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("webhook not found")
		}
		return nil, errors.HandleDataDBError(err)
	}
	return res, nil
}

func (w *webhookService) fetchWebhooks(ctx context.Context, where sq.Eq, limit, offset uint64) ([]*webhookRow, error) {
	rows, err := webhookColumns().
		Where(where).
		OrderBy("webhooks.created_at", "webhooks.id").
		Limit(limit).
		Offset(offset).
		RunWith(w.dataDB).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	set := models.NewWebhookSet()
	byID := make(map[string]*webhookRow)
	for rows.Next() {
		res, err := scanWebhook(rows)
		if err != nil {
			return nil, errors.HandleDataDBError(err)
		}
		set.Add(res.hook)
		byID[res.hook.Key()] = res
	}
	if err := rows.Err(); err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	out := make([]*webhookRow, 0, set.Len())
	for _, hook := range set.Slice() {
		out = append(out, byID[hook.Key()])
	}
	return out, nil
}

func (w *webhookService) toResponseData(res *webhookRow) (*responses.WebhookResponseData, error) {
	url, err := w.webhookURL(res.hook)
	if err != nil {
		return nil, err
	}
	data := responses.NewWebhookResponseData(res.hook, url)
	data.CreatedAt = &res.createdAt
	data.UpdatedAt = &res.updatedAt
	return data, nil
}

// toResponseList leaves out webhooks that cannot produce a URL in strict
// mode, so one incomplete row does not hide the rest of a listing.
func (w *webhookService) toResponseList(list []*webhookRow) ([]*responses.WebhookResponseData, error) {
	out := make([]*responses.WebhookResponseData, 0, len(list))
	for _, res := range list {
		data, err := w.toResponseData(res)
		if errors.Is(err, models.ErrIncompleteWebhook) {
			w.log.Warn("skipping incomplete webhook", zap.String("webhook_id", res.hook.ID))
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func newToken() (string, error) {
	head, err := cuid.NewCrypto(rand.Reader)
	if err != nil {
		return "", err
	}
	tail, err := cuid.NewCrypto(rand.Reader)
	if err != nil {
		return "", err
	}
	return head + tail, nil
}

func (w *webhookService) CreateWebhook(ctx context.Context, req *requests.CreateWebhookRequest) (*responses.Response[*responses.WebhookResponseData], error) {
	server, err := w.serverService.FetchServer(ctx, req.ServerID)
	if err != nil {
		return nil, err
	}
	channel, err := w.serverService.FetchChannel(ctx, server.ID, req.ChannelID)
	if err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, errors.NewFatalError(err)
	}

	now := time.Now().UTC()
	hook := models.NewWebhook(models.WebhookOptions{
		ID:      uuid.NewString(),
		Name:    normalizeName(req.Name),
		Server:  server,
		Channel: channel,
		Token:   token,
	})

	_, err = sq.
		Insert("webhooks").
		Columns("id", "name", "server_id", "channel_id", "token", "created_at", "updated_at").
		Values(hook.ID, hook.Name, hook.ServerID(), hook.ChannelID(), hook.Token, now, now).
		RunWith(w.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	w.log.Info("webhook created",
		zap.String("webhook_id", hook.ID),
		zap.String("server_id", hook.ServerID()),
		zap.String("channel_id", hook.ChannelID()),
	)

	data, err := w.toResponseData(&webhookRow{hook: hook, createdAt: now, updatedAt: now})
	if err != nil {
		return nil, err
	}

	return &responses.Response[*responses.WebhookResponseData]{
		Status:  "successful",
		Message: "Webhook created successfully",
		Data:    data,
	}, nil
}

func (w *webhookService) FetchWebhook(ctx context.Context, req *requests.FetchWebhookRequest) (*responses.Response[*responses.WebhookResponseData], error) {
	res, err := w.fetchWebhook(ctx, sq.Eq{"webhooks.id": req.WebhookID})
	if err != nil {
		return nil, err
	}

	data, err := w.toResponseData(res)
	if err != nil {
		return nil, err
	}

	return &responses.Response[*responses.WebhookResponseData]{
		Status: "successful",
		Data:   data,
	}, nil
}

// FetchWebhookWithToken answers lookups made through a webhook's own URL. A
// wrong token is reported as not found.
func (w *webhookService) FetchWebhookWithToken(ctx context.Context, req *requests.FetchWebhookWithTokenRequest) (*responses.Response[*responses.WebhookResponseData], error) {
	res, err := w.fetchWebhook(ctx, sq.Eq{"webhooks.id": req.WebhookID, "webhooks.token": req.Token})
	if err != nil {
		return nil, err
	}

	data, err := w.toResponseData(res)
	if err != nil {
		return nil, err
	}
	// the caller already holds the token
	data.Token = ""

	return &responses.Response[*responses.WebhookResponseData]{
		Status: "successful",
		Data:   data,
	}, nil
}

func (w *webhookService) FetchServerWebhooks(ctx context.Context, req *requests.FetchServerWebhooksRequest) (*responses.Response[[]*responses.WebhookResponseData], error) {
	if _, err := w.serverService.FetchServer(ctx, req.ServerID); err != nil {
		return nil, err
	}

	list, err := w.fetchWebhooks(ctx, sq.Eq{"webhooks.server_id": req.ServerID}, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	data, err := w.toResponseList(list)
	if err != nil {
		return nil, err
	}

	return &responses.Response[[]*responses.WebhookResponseData]{
		Status: "successful",
		Data:   data,
	}, nil
}

func (w *webhookService) FetchChannelWebhooks(ctx context.Context, req *requests.FetchChannelWebhooksRequest) (*responses.Response[[]*responses.WebhookResponseData], error) {
	list, err := w.fetchWebhooks(ctx, sq.Eq{"webhooks.channel_id": req.ChannelID}, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	data, err := w.toResponseList(list)
	if err != nil {
		return nil, err
	}

	return &responses.Response[[]*responses.WebhookResponseData]{
		Status: "successful",
		Data:   data,
	}, nil
}

// EditWebhook overwrites the name, channel and token of a webhook. The id and
// server never change, so the webhook keeps its identity.
func (w *webhookService) EditWebhook(ctx context.Context, req *requests.EditWebhookRequest) (*responses.Response[*responses.WebhookResponseData], error) {
	res, err := w.fetchWebhook(ctx, sq.Eq{"webhooks.id": req.WebhookID})
	if err != nil {
		return nil, err
	}
	hook := res.hook

	var channel *models.Channel
	if req.ChannelID != "" {
		channel, err = w.serverService.FetchChannel(ctx, hook.ServerID(), req.ChannelID)
		if err != nil {
			return nil, err
		}
	}

	hook.Update(models.WebhookOptions{
		ID:      hook.ID,
		Name:    normalizeName(req.Name),
		Server:  hook.Server,
		Channel: channel,
		Token:   req.Token,
	})
	if w.cfg.StrictURL {
		if _, err := hook.ValidURL(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	_, err = sq.
		Update("webhooks").
		Set("name", hook.Name).
		Set("channel_id", nullable(hook.ChannelID())).
		Set("token", hook.Token).
		Set("updated_at", now).
		Where(sq.Eq{"id": hook.ID}).
		RunWith(w.dataDB).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	res.updatedAt = now

	data, err := w.toResponseData(res)
	if err != nil {
		return nil, err
	}

	return &responses.Response[*responses.WebhookResponseData]{
		Status:  "successful",
		Message: "Webhook updated successfully",
		Data:    data,
	}, nil
}

func (w *webhookService) DeleteWebhook(ctx context.Context, req *requests.DeleteWebhookRequest) error {
	res, err := sq.
		Delete("webhooks").
		Where(sq.Eq{"id": req.WebhookID}).
		RunWith(w.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.HandleDataDBError(err)
	}
	if n == 0 {
		return errors.NewNotFoundError("webhook not found")
	}

	w.log.Info("webhook deleted", zap.String("webhook_id", req.WebhookID))
	return nil
}

func (w *webhookService) PruneOrphanedWebhooks(ctx context.Context) (int64, error) {
	res, err := sq.
		Delete("webhooks").
		Where(sq.NotEq{"channel_id": nil}).
		Where("channel_id NOT IN (SELECT id FROM channels)").
		RunWith(w.dataDB).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.HandleDataDBError(err)
	}
	return res.RowsAffected()
}
