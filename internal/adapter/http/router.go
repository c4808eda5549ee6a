package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/adapter/http/handler"
	"github.com/iho/txengine/internal/adapter/http/middleware"
	"github.com/iho/txengine/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BatchHandler          *handler.BatchHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyMiddleware *middleware.IdempotencyMiddleware
	RateLimiter           *middleware.RateLimiter
	Metrics               *metrics.Metrics
	MetricsHandler        http.Handler
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	r.Use(middleware.Recovery)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyMiddleware != nil {
			r.Use(cfg.IdempotencyMiddleware.Wrap)
		}

		r.Route("/batches", func(r chi.Router) {
			r.Post("/", cfg.BatchHandler.Create)
			r.Get("/{runID}", cfg.BatchHandler.Get)
		})
	})

	return r
}
