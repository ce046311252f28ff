package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/smartstores/cashbook/internal/adapter/http/handler"
	"github.com/smartstores/cashbook/internal/adapter/http/middleware"
	"github.com/smartstores/cashbook/internal/infrastructure/auth"
	"github.com/smartstores/cashbook/internal/infrastructure/metrics"
	"github.com/smartstores/cashbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler   *handler.EntryHandler
	PaymentHandler *handler.PaymentHandler
	ReportHandler  *handler.ReportHandler
	AuthHandler    *handler.AuthHandler
	HealthHandler  *handler.HealthHandler

	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger

	CORSAllowedOrigins []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Everything else requires a token
		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)
			r.Get("/counters", cfg.EntryHandler.ListCounters)

			// Day entries, keyed by business date and counter name
			r.Route("/entries/{date}", func(r chi.Router) {
				r.Get("/", cfg.EntryHandler.ListByDate)

				r.Route("/{counter}", func(r chi.Router) {
					r.Post("/", cfg.EntryHandler.GetOrCreate)
					r.Get("/", cfg.EntryHandler.Get)

					r.Post("/opening/verify", cfg.EntryHandler.VerifyOpening)
					r.Put("/opening", cfg.EntryHandler.OverrideOpening)
					r.Put("/sales", cfg.EntryHandler.UpdateSales)
					r.Put("/closing", cfg.EntryHandler.RecordClosing)
					r.Put("/forwarding", cfg.EntryHandler.RecordForwarding)

					r.Post("/submit", cfg.EntryHandler.Submit)
					r.Post("/confirm", cfg.EntryHandler.Confirm)
					r.Post("/unlock", cfg.EntryHandler.Unlock)

					r.Post("/payments", cfg.PaymentHandler.Add)
					r.Put("/payments/{paymentID}", cfg.PaymentHandler.Update)
					r.Delete("/payments/{paymentID}", cfg.PaymentHandler.Remove)
				})
			})

			// Reports
			r.Get("/reports/daily/{date}", cfg.ReportHandler.Daily)

			// User management
			r.Route("/users", func(r chi.Router) {
				r.Post("/", cfg.AuthHandler.CreateUser)
				r.Get("/", cfg.AuthHandler.ListUsers)
				r.Put("/{id}/password", cfg.AuthHandler.ChangePassword)
				r.Put("/{id}/active", cfg.AuthHandler.SetActive)
			})
		})
	})

	return r
}
