package services

import (
	"context"
	"time"

	"github.com/madflojo/tasks"
	"go.uber.org/zap"

	"github.com/2HgO/webhook-registry/config"
)

const PruneTaskID = "prune-orphaned-webhooks"

// pruneTimeout bounds a single prune run.
const pruneTimeout = 30 * time.Second

type SchedulerService interface {
	SchedulePrune() error
	DropTask(taskID string)
	HasTask(taskID string) bool
	Stop()
}

func NewSchedulerService(scheduler *tasks.Scheduler, webhookService WebhookService, cfg *config.Config, log *zap.Logger) SchedulerService {
	return &schedulerService{
		service: service{
			cfg:            cfg,
			webhookService: webhookService,
			log:            log,
		},
		scheduler: scheduler,
	}
}

type schedulerService struct {
	service
	scheduler *tasks.Scheduler
}

func (s *schedulerService) DropTask(taskID string) {
	s.scheduler.Del(taskID)
}

func (s *schedulerService) HasTask(taskID string) bool {
	_, ok := s.scheduler.Tasks()[taskID]
	return ok
}

func (s *schedulerService) Stop() {
	s.scheduler.Stop()
}

// SchedulePrune removes orphaned webhooks every PruneInterval.
func (s *schedulerService) SchedulePrune() error {
	return s.scheduler.AddWithID(PruneTaskID, &tasks.Task{
		Interval: s.cfg.PruneInterval,
		TaskFunc: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
			defer cancel()

			n, err := s.webhookService.PruneOrphanedWebhooks(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				s.log.Info("pruned orphaned webhooks", zap.Int64("count", n))
			}
			return nil
		},
		ErrFunc: func(err error) {
			s.log.Error("pruning orphaned webhooks", zap.Error(err))
		},
	})
}
