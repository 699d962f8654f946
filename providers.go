package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/madflojo/tasks"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/2HgO/webhook-registry/config"
	"github.com/2HgO/webhook-registry/handlers"
	"github.com/2HgO/webhook-registry/services"
	"github.com/2HgO/webhook-registry/utils"
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func NewHttpServer(lc fx.Lifecycle, cfg *config.Config, mux *http.ServeMux, middlewares handlers.MiddleWareHandler, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      utils.Middleware(mux, middlewares.LogRequests, middlewares.Recover),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting http server", zap.String("addr", srv.Addr))
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func NewServeMux(routers []handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, router := range routers {
		router.ServeHttp(mux)
	}
	return mux
}

func NewScheduler() *tasks.Scheduler {
	return tasks.New()
}

func StartPruning(lc fx.Lifecycle, scheduler services.SchedulerService) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return scheduler.SchedulePrune()
		},
		OnStop: func(context.Context) error {
			if scheduler.HasTask(services.PruneTaskID) {
				scheduler.DropTask(services.PruneTaskID)
			}
			scheduler.Stop()
			return nil
		},
	})
}
