package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (l *zapLoggerAdapter) Print(v ...interface{}) {
	l.logger.Sugar().Info(v...)
}

// NewRouter wires h behind request-ID, request-logging and panic-recovery
// middleware. log may be nil to disable request logs.
func NewRouter(h *Handler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if log != nil {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: &zapLoggerAdapter{logger: log}, NoColor: false}))
	}
	r.Use(middleware.Recoverer)

	r.Get("/api/health", HealthHandler)
	r.Get("/api/algorithms", h.Algorithms)
	r.Post("/api/search", h.Search)
	r.Get("/api/documents", h.Documents)
	r.Get("/api/documents/{name}/search", h.SearchDocument)
	r.Get("/api/runs", h.Runs)
	r.Get("/api/runs/{id}/timings", h.RunTimings)
	r.Get("/api/reports", h.Reports)

	return r
}
