package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
)

const entryColumns = `
	id, counter_name, entry_date,
	opening_cash, opening_denominations, opening_verified, opening_verified_at,
	payments, sales, closing_denominations,
	next_day_opening_cash, next_day_opening_denominations,
	submitted_expected_cash, submitted_actual_cash, submitted_shortage,
	closed_by, status, submitted_at, confirmed_at, confirmed_by,
	created_at, updated_at
`

// EntryRepository implements usecase.EntryRepository. One row holds a
// full day entry; payments, sales and denomination counts live in JSONB
// columns since they are always read and written with the entry.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Insert creates a new entry. The unique (counter_name, entry_date)
// index decides races between concurrent first requests for a day; the
// loser gets domain.ErrEntryExists and re-reads.
func (r *EntryRepository) Insert(ctx context.Context, entry *domain.DayEntry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (counter_name, entry_date) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, entryArgs(entry)...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryExists
	}

	return nil
}

// GetByKey retrieves the entry for (counter, date).
func (r *EntryRepository) GetByKey(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE counter_name = $1 AND entry_date = $2`
	return scanEntry(r.pool.QueryRow(ctx, query, counter, date))
}

// GetByKeyForUpdate retrieves the entry for (counter, date) with a row lock.
func (r *EntryRepository) GetByKeyForUpdate(ctx context.Context, tx usecase.Transaction, counter, date string) (*domain.DayEntry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	query := `SELECT ` + entryColumns + ` FROM entries WHERE counter_name = $1 AND entry_date = $2 FOR UPDATE`
	return scanEntry(pgxTx.QueryRow(ctx, query, counter, date))
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.DayEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	return scanEntry(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves an entry by ID with a row lock.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.DayEntry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 FOR UPDATE`
	return scanEntry(pgxTx.QueryRow(ctx, query, id))
}

// Update rewrites an entry inside the caller's transaction.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.DayEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE entries SET
			opening_cash = $2,
			opening_denominations = $3,
			opening_verified = $4,
			opening_verified_at = $5,
			payments = $6,
			sales = $7,
			closing_denominations = $8,
			next_day_opening_cash = $9,
			next_day_opening_denominations = $10,
			submitted_expected_cash = $11,
			submitted_actual_cash = $12,
			submitted_shortage = $13,
			closed_by = $14,
			status = $15,
			submitted_at = $16,
			confirmed_at = $17,
			confirmed_by = $18,
			updated_at = $19
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		entry.ID,
		decimalToNumeric(entry.OpeningCash),
		entry.OpeningDenominations,
		entry.OpeningVerified,
		timePtrToPgTimestamptz(entry.OpeningVerifiedAt),
		paymentsJSON(entry.Payments),
		entry.Sales,
		entry.ClosingDenominations,
		decimalPtrToNumeric(entry.NextDayOpeningCash),
		entry.NextDayOpeningDenominations,
		decimalToNumeric(entry.SubmittedExpectedCash),
		decimalToNumeric(entry.SubmittedActualCash),
		decimalToNumeric(entry.SubmittedShortage),
		entry.ClosedBy,
		entry.Status,
		timePtrToPgTimestamptz(entry.SubmittedAt),
		timePtrToPgTimestamptz(entry.ConfirmedAt),
		entry.ConfirmedBy,
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// LatestTerminalBefore finds the most recent submitted or confirmed
// entry for the counter strictly before the date. This is the
// carry-forward source for the day's opening balance.
func (r *EntryRepository) LatestTerminalBefore(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE counter_name = $1 AND entry_date < $2 AND status IN ('submitted', 'confirmed')
		ORDER BY entry_date DESC
		LIMIT 1
	`

	return scanEntry(r.pool.QueryRow(ctx, query, counter, date))
}

// ListByDate retrieves every counter's entry for a date.
func (r *EntryRepository) ListByDate(ctx context.Context, date string) ([]*domain.DayEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_date = $1 ORDER BY counter_name`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.DayEntry
	for rows.Next() {
		entry, err := scanEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func entryArgs(entry *domain.DayEntry) []any {
	return []any{
		entry.ID,
		entry.CounterName,
		entry.Date,
		decimalToNumeric(entry.OpeningCash),
		entry.OpeningDenominations,
		entry.OpeningVerified,
		timePtrToPgTimestamptz(entry.OpeningVerifiedAt),
		paymentsJSON(entry.Payments),
		entry.Sales,
		entry.ClosingDenominations,
		decimalPtrToNumeric(entry.NextDayOpeningCash),
		entry.NextDayOpeningDenominations,
		decimalToNumeric(entry.SubmittedExpectedCash),
		decimalToNumeric(entry.SubmittedActualCash),
		decimalToNumeric(entry.SubmittedShortage),
		entry.ClosedBy,
		entry.Status,
		timePtrToPgTimestamptz(entry.SubmittedAt),
		timePtrToPgTimestamptz(entry.ConfirmedAt),
		entry.ConfirmedBy,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	}
}

// paymentsJSON keeps the stored column a JSON array even when the day
// has no payments yet.
func paymentsJSON(payments []domain.Payment) []domain.Payment {
	if payments == nil {
		return []domain.Payment{}
	}
	return payments
}

func scanEntry(row pgx.Row) (*domain.DayEntry, error) {
	entry, err := scanEntryFromRows(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func scanEntryFromRows(row pgx.Row) (*domain.DayEntry, error) {
	var (
		entry          domain.DayEntry
		entryDate      time.Time
		openVerifiedAt pgtype.Timestamptz
		nextDayCash    pgtype.Numeric
		openingCash    pgtype.Numeric
		expectedCash   pgtype.Numeric
		actualCash     pgtype.Numeric
		shortage       pgtype.Numeric
		submittedAt    pgtype.Timestamptz
		confirmedAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.CounterName,
		&entryDate,
		&openingCash,
		&entry.OpeningDenominations,
		&entry.OpeningVerified,
		&openVerifiedAt,
		&entry.Payments,
		&entry.Sales,
		&entry.ClosingDenominations,
		&nextDayCash,
		&entry.NextDayOpeningDenominations,
		&expectedCash,
		&actualCash,
		&shortage,
		&entry.ClosedBy,
		&entry.Status,
		&submittedAt,
		&confirmedAt,
		&entry.ConfirmedBy,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Date = entryDate.Format(domain.DateLayout)
	entry.OpeningCash = numericToDecimal(openingCash)
	entry.OpeningVerifiedAt = pgTimestamptzToTimePtr(openVerifiedAt)
	entry.NextDayOpeningCash = numericToDecimalPtr(nextDayCash)
	entry.SubmittedExpectedCash = numericToDecimal(expectedCash)
	entry.SubmittedActualCash = numericToDecimal(actualCash)
	entry.SubmittedShortage = numericToDecimal(shortage)
	entry.SubmittedAt = pgTimestamptzToTimePtr(submittedAt)
	entry.ConfirmedAt = pgTimestamptzToTimePtr(confirmedAt)

	return &entry, nil
}
