package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking the entries table
	DefaultTransactionTimeout = 10 * time.Second

	// DailyReportCacheTTL bounds how stale the cached daily report may be
	DailyReportCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
