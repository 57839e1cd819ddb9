package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/txpulse/internal/adapter/http/handler"
	"github.com/iho/txpulse/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	HealthHandler      *handler.HealthHandler
	Logging            *middleware.LoggingMiddleware
	IngestRateLimiter  *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Ingestion
	r.Route("/transactions", func(r chi.Router) {
		if cfg.IngestRateLimiter != nil {
			r.Use(cfg.IngestRateLimiter.Limit)
		}

		r.Post("/", cfg.TransactionHandler.Ingest)
		r.Get("/{id}", cfg.TransactionHandler.Get)
	})

	// Analytics
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/summary", cfg.AnalyticsHandler.Summary)
		r.Get("/timeline", cfg.AnalyticsHandler.Timeline)
		r.Get("/type-distribution", cfg.AnalyticsHandler.TypeDistribution)
		r.Get("/by-account", cfg.AnalyticsHandler.ByAccount)
		r.Get("/recent", cfg.AnalyticsHandler.Recent)
	})

	return r
}
