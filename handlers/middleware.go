package handlers

import (
	"net/http"

	"github.com/MadAppGang/httplog"
	lzap "github.com/MadAppGang/httplog/zap"
	ghandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"
)

type MiddleWareHandler interface {
	LogRequests(http.Handler) http.Handler
	Recover(http.Handler) http.Handler
}

type middlewareHandler struct {
	log *zap.Logger
}

func NewMiddlewareHandler(log *zap.Logger) MiddleWareHandler {
	return &middlewareHandler{log: log}
}

// LogRequests writes one access log entry per request through zap.
func (m *middlewareHandler) LogRequests(h http.Handler) http.Handler {
	return httplog.LoggerWithConfig(httplog.LoggerConfig{
		Formatter:  lzap.ZapLogger(m.log, zap.InfoLevel, "http request"),
		RouterName: "webhooks",
	})(h)
}

// Recover turns panics into 500 responses and logs the stack.
func (m *middlewareHandler) Recover(h http.Handler) http.Handler {
	return ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(zap.NewStdLog(m.log)),
		ghandlers.PrintRecoveryStack(true),
	)(h)
}
