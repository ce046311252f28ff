package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartstores/cashbook/internal/domain"
)

// CounterRepository implements usecase.CounterRepository.
type CounterRepository struct {
	pool *pgxpool.Pool
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(pool *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{pool: pool}
}

// GetByName retrieves a counter by name.
func (r *CounterRepository) GetByName(ctx context.Context, name string) (*domain.Counter, error) {
	query := `SELECT name, store, kind, created_at FROM counters WHERE name = $1`

	var counter domain.Counter
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&counter.Name,
		&counter.Store,
		&counter.Kind,
		&counter.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCounterNotFound
	}
	if err != nil {
		return nil, err
	}

	return &counter, nil
}

// List retrieves all counters.
func (r *CounterRepository) List(ctx context.Context) ([]*domain.Counter, error) {
	query := `SELECT name, store, kind, created_at FROM counters ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []*domain.Counter
	for rows.Next() {
		var counter domain.Counter
		err := rows.Scan(
			&counter.Name,
			&counter.Store,
			&counter.Kind,
			&counter.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		counters = append(counters, &counter)
	}

	return counters, rows.Err()
}
