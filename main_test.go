package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/2HgO/webhook-registry/config"
	"github.com/2HgO/webhook-registry/handlers"
	"github.com/2HgO/webhook-registry/services"
)

func TestAppGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(app()))
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(&config.Config{LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}

type pingRouter struct{}

func (pingRouter) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestNewServeMux(t *testing.T) {
	mux := NewServeMux([]handlers.Handler{pingRouter{}, handlers.NewWebhookHandler(nil, zap.NewNop())})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/webhooks/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewHttpServer_LogsRecoveredPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	srv := NewHttpServer(fxtest.NewLifecycle(t), &config.Config{HTTPAddr: ":0"}, mux, handlers.NewMiddlewareHandler(log), log)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("http request").Len())
}

type fakeScheduler struct {
	scheduled, dropped, stopped bool
}

func (f *fakeScheduler) SchedulePrune() error {
	f.scheduled = true
	return nil
}

func (f *fakeScheduler) DropTask(string) { f.dropped = true }

func (f *fakeScheduler) HasTask(id string) bool { return f.scheduled && id == services.PruneTaskID }

func (f *fakeScheduler) Stop() { f.stopped = true }

func TestStartPruning(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	sched := &fakeScheduler{}
	StartPruning(lc, sched)

	lc.RequireStart()
	assert.True(t, sched.scheduled)
	assert.False(t, sched.stopped)

	lc.RequireStop()
	assert.True(t, sched.dropped)
	assert.True(t, sched.stopped)
}
