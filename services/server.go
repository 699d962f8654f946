package services

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/2HgO/webhook-registry/errors"
	"github.com/2HgO/webhook-registry/models"
)

// ServerService resolves the servers and channels webhooks point at.
type ServerService interface {
	FetchServer(ctx context.Context, serverID string) (*models.Server, error)
	FetchChannel(ctx context.Context, serverID, channelID string) (*models.Channel, error)
}

func NewServerService(dataDatabase *sql.DB, log *zap.Logger) ServerService {
	return &serverService{
		service{
			dataDB: dataDatabase,
			log:    log,
		},
	}
}

type serverService struct {
	service
}

func (s *serverService) FetchServer(ctx context.Context, serverID string) (*models.Server, error) {
	row := sq.
		Select("id", "name").
		From("servers").
		Where(sq.Eq{"id": serverID}).
		Limit(1).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	server := &models.Server{}
	if err := row.Scan(&server.ID, &server.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("server not found")
		}
		return nil, errors.HandleDataDBError(err)
	}
	return server, nil
}

// FetchChannel only finds channels that belong to the given server.
func (s *serverService) FetchChannel(ctx context.Context, serverID, channelID string) (*models.Channel, error) {
	row := sq.
		Select("id", "server_id", "name").
		From("channels").
		Where(sq.Eq{"id": channelID, "server_id": serverID}).
		Limit(1).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	channel := &models.Channel{}
	if err := row.Scan(&channel.ID, &channel.ServerID, &channel.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("channel not found")
		}
		return nil, errors.HandleDataDBError(err)
	}
	return channel, nil
}
