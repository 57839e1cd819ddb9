package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/txpulse/internal/adapter/http"
	"github.com/iho/txpulse/internal/adapter/http/handler"
	"github.com/iho/txpulse/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/txpulse/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/txpulse/internal/adapter/repository/redis"
	"github.com/iho/txpulse/internal/infrastructure/config"
	"github.com/iho/txpulse/internal/infrastructure/logger"
	"github.com/iho/txpulse/internal/infrastructure/metrics"
	"github.com/iho/txpulse/internal/infrastructure/postgres"
	"github.com/iho/txpulse/internal/infrastructure/redis"
	"github.com/iho/txpulse/internal/usecase"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	appMetrics := metrics.New()

	// Repositories and use cases
	txRepo := postgresRepo.NewTransactionRepository(pool)
	ingestUC := usecase.NewIngestUseCase(txRepo, appMetrics)

	// Redis is optional. Without it analytics queries always recompute
	// from the store, which is correct, just not cached.
	var (
		redisClient *goredis.Client
		cache       usecase.Cache
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		appLogger.Info().Msg("connected to redis")

		redisClient = client
		cache = redisRepo.NewCache(client)
	}

	analyticsUC := usecase.NewAnalyticsUseCase(txRepo, cache, cfg.AnalyticsCacheTTL, appMetrics)

	// Handlers
	transactionHandler := handler.NewTransactionHandler(ingestUC)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.IngestRateLimit > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.IngestRateLimit, cfg.IngestRateBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		AnalyticsHandler:   analyticsHandler,
		HealthHandler:      healthHandler,
		Logging:            middleware.NewLoggingMiddleware(appLogger),
		IngestRateLimiter:  rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
