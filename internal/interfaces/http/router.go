// Package http is the valuation API transport: the chi route tree and the
// server around it.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DealLens/internal/interfaces/http/handlers"
	"github.com/turtacn/DealLens/internal/interfaces/http/middleware"
)

// RouterConfig holds what NewRouter mounts. Nil handlers and middleware are
// skipped.
type RouterConfig struct {
	ValuationHandler *handlers.ValuationHandler
	HealthHandler    *handlers.HealthHandler

	CORS    *middleware.CORSConfig
	Logging *middleware.LoggingConfig

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter builds the route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Logging != nil && cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, *cfg.Logging))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if h := cfg.ValuationHandler; h != nil {
		r.Get("/", h.Index)
		r.Get("/health", h.Health)
		r.Get("/test", h.Test)
		r.Post("/predict", h.Predict)
	}

	if h := cfg.HealthHandler; h != nil {
		r.Get("/healthz", h.Liveness)
		r.Get("/readyz", h.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	return r
}

//Personal.AI order the ending
