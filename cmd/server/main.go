package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/smartstores/cashbook/internal/adapter/http"
	"github.com/smartstores/cashbook/internal/adapter/http/handler"
	"github.com/smartstores/cashbook/internal/adapter/http/middleware"
	postgresRepo "github.com/smartstores/cashbook/internal/adapter/repository/postgres"
	redisRepo "github.com/smartstores/cashbook/internal/adapter/repository/redis"
	"github.com/smartstores/cashbook/internal/infrastructure/auth"
	"github.com/smartstores/cashbook/internal/infrastructure/clock"
	"github.com/smartstores/cashbook/internal/infrastructure/config"
	"github.com/smartstores/cashbook/internal/infrastructure/logger"
	"github.com/smartstores/cashbook/internal/infrastructure/metrics"
	"github.com/smartstores/cashbook/internal/infrastructure/postgres"
	"github.com/smartstores/cashbook/internal/infrastructure/redis"
	"github.com/smartstores/cashbook/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		appLogger.Fatal().Msg("JWT_SECRET must be set")
	}

	businessClock, err := clock.New(cfg.BusinessTimezone)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to load business timezone")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	counterRepo := postgresRepo.NewCounterRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize use cases
	resolver := usecase.NewCarryForwardResolver(entryRepo)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, counterRepo, resolver, idGen, businessClock, retrier, m)
	paymentUC := usecase.NewPaymentUseCase(txManager, entryRepo, idGen, businessClock)
	reportUC := usecase.NewReportUseCase(entryRepo, counterRepo, cache, businessClock, appLogger)
	userUC := usecase.NewUserUseCase(userRepo, counterRepo, idGen, businessClock, jwtManager)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:       handler.NewEntryHandler(entryUC),
		PaymentHandler:     handler.NewPaymentHandler(paymentUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		AuthHandler:        handler.NewAuthHandler(userUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
		Metrics:            m,
		Logger:             appLogger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
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
