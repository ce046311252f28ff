package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry lifecycle metrics
	EntriesCreated   prometheus.Counter
	EntriesSubmitted prometheus.Counter
	EntriesConfirmed prometheus.Counter
	EntriesUnlocked  prometheus.Counter
	SubmitDuration   prometheus.Histogram

	// ShortageAmount tracks the signed shortage at submission. Positive
	// buckets are missing cash, negative ones are excess.
	ShortageAmount prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_created_total",
			Help: "Total number of day entries created",
		}),
		EntriesSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_submitted_total",
			Help: "Total number of day entries submitted",
		}),
		EntriesConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_confirmed_total",
			Help: "Total number of day entries confirmed",
		}),
		EntriesUnlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_unlocked_total",
			Help: "Total number of day entries unlocked for correction",
		}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_submit_duration_seconds",
			Help:    "Duration of day entry submissions",
			Buckets: prometheus.DefBuckets,
		}),
		ShortageAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_shortage_amount",
			Help:    "Shortage recorded at submission, negative means excess",
			Buckets: []float64{-1000, -500, -100, -10, 0, 10, 100, 500, 1000, 5000},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashbook_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cashbook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
