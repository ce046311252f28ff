package usecase

import (
	"context"
	"time"

	"github.com/smartstores/cashbook/internal/domain"
)

// EntryRepository defines data access for day entries.
type EntryRepository interface {
	// Insert creates a new entry. Returns domain.ErrEntryExists when an
	// entry for the same (counter, date) already exists.
	Insert(ctx context.Context, entry *domain.DayEntry) error
	GetByKey(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	GetByKeyForUpdate(ctx context.Context, tx Transaction, counter, date string) (*domain.DayEntry, error)
	GetByID(ctx context.Context, id string) (*domain.DayEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.DayEntry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.DayEntry) error
	// LatestTerminalBefore finds the most recent entry for the counter
	// strictly before date with status submitted or confirmed.
	LatestTerminalBefore(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	ListByDate(ctx context.Context, date string) ([]*domain.DayEntry, error)
}

// CounterRepository defines data access for counter configuration.
type CounterRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Counter, error)
	List(ctx context.Context) ([]*domain.Counter, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current instant and the current business date.
// All "today" and "yesterday" computations go through it so tests can
// pin dates and so server-local time never leaks into date math.
type Clock interface {
	Now() time.Time
	Today() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// TokenIssuer creates an auth token for a user.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}
