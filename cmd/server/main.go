package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/txengine/internal/adapter/http"
	"github.com/iho/txengine/internal/adapter/http/handler"
	"github.com/iho/txengine/internal/adapter/http/middleware"
	redisRepo "github.com/iho/txengine/internal/adapter/repository/redis"
	"github.com/iho/txengine/internal/infrastructure/config"
	"github.com/iho/txengine/internal/infrastructure/idgen"
	"github.com/iho/txengine/internal/infrastructure/logger"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/infrastructure/redis"
	"github.com/iho/txengine/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to Redis when configured
	var redisClient *goredis.Client
	if cfg.IdempotencyEnabled() {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL, cfg.RedisConnectTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Info().Msg("REDIS_URL not set, idempotency and run history disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	server := newServer(cfg, appLogger, registry, redisClient, rateLimiter)

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if rateLimiter != nil {
		go cleanupLimiters(shutdownCtx, rateLimiter, limiterIdleTimeout)
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	<-shutdownCtx.Done()

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// newServer wires the engine, handlers and middleware into an http.Server.
// redisClient and rateLimiter may be nil.
func newServer(
	cfg *config.Config,
	appLogger zerolog.Logger,
	registry *prometheus.Registry,
	redisClient *goredis.Client,
	rateLimiter *middleware.RateLimiter,
) *http.Server {
	m := metrics.New(registry)

	engine := usecase.NewEngine(
		usecase.NewProcessor(appLogger, m),
		usecase.NewLogReporter(m),
		idgen.NewULIDGenerator(),
		appLogger,
		m,
	)

	var (
		runStore    usecase.RunStore
		idempotency *middleware.IdempotencyMiddleware
	)
	if redisClient != nil {
		runStore = redisRepo.NewRunStore(redisClient)
		idempotency = middleware.NewIdempotencyMiddleware(redisRepo.NewIdempotencyStore(redisClient), cfg.IdempotencyTTL)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BatchHandler:          handler.NewBatchHandler(engine, runStore, cfg.RunHistoryTTL, cfg.MaxBatchBytes),
		HealthHandler:         handler.NewHealthHandler(redisClient),
		IdempotencyMiddleware: idempotency,
		RateLimiter:           rateLimiter,
		Metrics:               m,
		MetricsHandler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:                appLogger,
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, idle time.Duration) {
	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := rl.CleanupLimiters(idle); removed > 0 {
				log.Debug().Int("removed", removed).Msg("dropped idle rate limiters")
			}
		}
	}
}
