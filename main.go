package main

import (
	"database/sql"
	"net/http"

	"go.uber.org/fx"

	"github.com/2HgO/webhook-registry/config"
	"github.com/2HgO/webhook-registry/db"
	"github.com/2HgO/webhook-registry/handlers"
	"github.com/2HgO/webhook-registry/services"
)

func main() {
	fx.New(app()).Run()
}

func app() fx.Option {
	return fx.Options(
		fx.Provide(
			NewHttpServer,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewWebhookHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			services.NewServerService,
			services.NewWebhookService,
			services.NewSchedulerService,
			db.GetDataDBConnection,
			NewScheduler,
			NewLogger,
			config.Load,
		),
		fx.Invoke(
			StartPruning,
			func(*http.Server) {},
			func(lc fx.Lifecycle, dataDB *sql.DB) {
				lc.Append(fx.StopHook(dataDB.Close))
			},
		),
	)
}
