package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/infrastructure/metrics"
)

// EntryUseCase handles the day-entry lifecycle for a counter.
type EntryUseCase struct {
	txManager   TransactionManager
	entryRepo   EntryRepository
	counterRepo CounterRepository
	resolver    *CarryForwardResolver
	idGen       IDGenerator
	clock       Clock
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	counterRepo CounterRepository,
	resolver *CarryForwardResolver,
	idGen IDGenerator,
	clock Clock,
	retrier Retrier,
	m *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:   txManager,
		entryRepo:   entryRepo,
		counterRepo: counterRepo,
		resolver:    resolver,
		idGen:       idGen,
		clock:       clock,
		retrier:     retrier,
		metrics:     m,
	}
}

// requireOperator returns the caller identity if it may mutate the counter.
func requireOperator(ctx context.Context, counter string) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok || !id.CanOperate(counter) {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// requireAdmin returns the caller identity if it may administer entries.
func requireAdmin(ctx context.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok || !id.CanAdminister() {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// requireViewer checks read access to one counter's entries.
func requireViewer(ctx context.Context, counter string) error {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id.CanViewAll() || id.CanOperate(counter) {
		return nil
	}
	return domain.ErrUnauthorized
}

func (uc *EntryUseCase) validateKey(ctx context.Context, counter, date string) (*domain.Counter, error) {
	if err := domain.ValidateCounterName(counter); err != nil {
		return nil, err
	}
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}
	return uc.counterRepo.GetByName(ctx, counter)
}

// GetOrCreate returns the entry for (counter, date), creating an open one
// with a carried-forward opening balance when none exists yet. Concurrent
// first requests race on the insert; the loser re-reads the winner's row.
func (uc *EntryUseCase) GetOrCreate(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, counter); err != nil {
		return nil, err
	}

	if _, err := uc.validateKey(ctx, counter, date); err != nil {
		return nil, err
	}

	entry, err := uc.entryRepo.GetByKey(ctx, counter, date)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	opening, err := uc.resolver.OpeningFor(ctx, counter, date)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	entry = &domain.DayEntry{
		ID:                   uc.idGen.Generate(),
		CounterName:          counter,
		Date:                 date,
		OpeningCash:          opening.Cash,
		OpeningDenominations: opening.Denominations,
		Status:               domain.StatusOpen,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = uc.entryRepo.Insert(ctx, entry)
	if errors.Is(err, domain.ErrEntryExists) {
		return uc.entryRepo.GetByKey(ctx, counter, date)
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return entry, nil
}

// Get returns the entry for (counter, date).
func (uc *EntryUseCase) Get(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if err := requireViewer(ctx, counter); err != nil {
		return nil, err
	}

	if _, err := uc.validateKey(ctx, counter, date); err != nil {
		return nil, err
	}

	return uc.entryRepo.GetByKey(ctx, counter, date)
}

// ListByDate returns every counter's entry for a date.
func (uc *EntryUseCase) ListByDate(ctx context.Context, date string) ([]*domain.DayEntry, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok || !id.CanViewAll() {
		return nil, domain.ErrUnauthorized
	}

	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByDate(ctx, date)
}

// Counters lists the configured counters.
func (uc *EntryUseCase) Counters(ctx context.Context) ([]*domain.Counter, error) {
	if _, ok := domain.IdentityFromContext(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	return uc.counterRepo.List(ctx)
}

// VerifyOpening marks the opening balance as physically checked by the
// counter operator. Idempotent, allowed in any entry state, and purely
// informational: the recorded amounts never change here. Corrections go
// through the admin override.
func (uc *EntryUseCase) VerifyOpening(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, counter); err != nil {
		return nil, err
	}

	if _, err := uc.validateKey(ctx, counter, date); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, counter, date, func(entry *domain.DayEntry) error {
		now := uc.clock.Now()
		entry.OpeningVerified = true
		entry.OpeningVerifiedAt = &now
		return nil
	})
}

// OverrideOpeningInput represents an admin correction of the opening float.
type OverrideOpeningInput struct {
	Counter       string
	Date          string
	Cash          decimal.Decimal
	Denominations *domain.DenominationCount
}

// OverrideOpening replaces the opening balance in any entry state; its
// whole point is fixing a bad carry-forward after the day was already
// submitted. The override counts as verified so the carry-forward
// resolver treats it as authoritative. A frozen snapshot is not
// recomputed here; that happens on the next submit.
func (uc *EntryUseCase) OverrideOpening(ctx context.Context, input OverrideOpeningInput) (*domain.DayEntry, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if input.Cash.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Denominations != nil {
		if err := input.Denominations.Validate(); err != nil {
			return nil, err
		}
	}

	if _, err := uc.validateKey(ctx, input.Counter, input.Date); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, input.Counter, input.Date, func(entry *domain.DayEntry) error {
		entry.OpeningCash = input.Cash
		if input.Denominations != nil {
			entry.OpeningDenominations = *input.Denominations
		} else {
			entry.OpeningDenominations = domain.DenominationCount{}
		}
		now := uc.clock.Now()
		entry.OpeningVerified = true
		entry.OpeningVerifiedAt = &now
		return nil
	})
}

// UpdateSalesInput represents input for recording the day's sales figures.
type UpdateSalesInput struct {
	Counter string
	Date    string
	Sales   domain.SalesData
}

// UpdateSales stores the day's sales figures. Figures are stored as
// reported; a cash-sales figure going negative surfaces in the
// reconciliation rather than being rejected here.
func (uc *EntryUseCase) UpdateSales(ctx context.Context, input UpdateSalesInput) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, input.Counter); err != nil {
		return nil, err
	}

	return uc.mutateOpen(ctx, input.Counter, input.Date, func(entry *domain.DayEntry) error {
		entry.Sales = input.Sales
		return nil
	})
}

// RecordClosingInput represents input for the end-of-day till count.
type RecordClosingInput struct {
	Counter       string
	Date          string
	Denominations domain.DenominationCount
}

// RecordClosing stores the physical closing count. The next-day float is
// re-synced to the full count; an operator who keeps less calls
// RecordForwarding afterwards.
func (uc *EntryUseCase) RecordClosing(ctx context.Context, input RecordClosingInput) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, input.Counter); err != nil {
		return nil, err
	}

	if err := input.Denominations.Validate(); err != nil {
		return nil, err
	}

	return uc.mutateOpen(ctx, input.Counter, input.Date, func(entry *domain.DayEntry) error {
		entry.ClosingDenominations = input.Denominations

		total := input.Denominations.Total()
		denoms := input.Denominations
		entry.NextDayOpeningCash = &total
		entry.NextDayOpeningDenominations = &denoms
		return nil
	})
}

// RecordForwardingInput represents input for the next-day float.
type RecordForwardingInput struct {
	Counter       string
	Date          string
	Cash          *decimal.Decimal
	Denominations *domain.DenominationCount
}

// RecordForwarding stores how much of the closing count stays in the till
// for the next day. Allowed in any entry state: the float only matters
// when the next day's entry first reads it, so it stays editable after
// submission.
func (uc *EntryUseCase) RecordForwarding(ctx context.Context, input RecordForwardingInput) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, input.Counter); err != nil {
		return nil, err
	}

	if input.Cash != nil && input.Cash.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Denominations != nil {
		if err := input.Denominations.Validate(); err != nil {
			return nil, err
		}
	}

	if _, err := uc.validateKey(ctx, input.Counter, input.Date); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, input.Counter, input.Date, func(entry *domain.DayEntry) error {
		entry.NextDayOpeningCash = input.Cash
		entry.NextDayOpeningDenominations = input.Denominations

		if input.Cash == nil && input.Denominations != nil {
			total := input.Denominations.Total()
			entry.NextDayOpeningCash = &total
		}
		return nil
	})
}

// SubmitInput represents input for closing the day.
type SubmitInput struct {
	Counter  string
	Date     string
	ClosedBy string
}

// Submit closes the day: it freezes the reconciliation snapshot and moves
// the entry to submitted. Only a terminal entry feeds the next day's
// carry-forward. Runs under the retrier because it is the one write that
// must not be lost at end of shift.
func (uc *EntryUseCase) Submit(ctx context.Context, input SubmitInput) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, input.Counter); err != nil {
		return nil, err
	}

	closedBy, err := domain.ValidateCloserName(input.ClosedBy)
	if err != nil {
		return nil, err
	}

	counter, err := uc.validateKey(ctx, input.Counter, input.Date)
	if err != nil {
		return nil, err
	}

	start := uc.clock.Now()

	var entry *domain.DayEntry
	operation := func() error {
		var opErr error
		entry, opErr = uc.submitOnce(ctx, counter, input.Date, closedBy)
		return opErr
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesSubmitted.Inc()
		uc.metrics.SubmitDuration.Observe(time.Since(start).Seconds())
		shortage, _ := entry.SubmittedShortage.Float64()
		uc.metrics.ShortageAmount.Observe(shortage)
	}

	return entry, nil
}

func (uc *EntryUseCase) submitOnce(ctx context.Context, counter *domain.Counter, date, closedBy string) (*domain.DayEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByKeyForUpdate(txCtx, tx, counter.Name, date)
	if err != nil {
		return nil, err
	}

	if !entry.IsOpen() {
		return nil, domain.ErrEntryNotOpen
	}

	snapshot := domain.ReconcileEntry(entry, counter.Kind)

	now := uc.clock.Now()
	entry.SubmittedExpectedCash = snapshot.ExpectedCash
	entry.SubmittedActualCash = snapshot.ActualCash
	entry.SubmittedShortage = snapshot.Shortage
	entry.ClosedBy = closedBy
	entry.Status = domain.StatusSubmitted
	entry.SubmittedAt = &now
	entry.UpdatedAt = now

	// A submission with no explicit float forwards the whole count.
	if entry.NextDayOpeningCash == nil && entry.NextDayOpeningDenominations == nil {
		total := entry.ClosingDenominations.Total()
		denoms := entry.ClosingDenominations
		entry.NextDayOpeningCash = &total
		entry.NextDayOpeningDenominations = &denoms
	}

	if err := uc.entryRepo.Update(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Confirm locks a submitted entry after admin review.
func (uc *EntryUseCase) Confirm(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	id, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := uc.validateKey(ctx, counter, date); err != nil {
		return nil, err
	}

	entry, err := uc.mutate(ctx, counter, date, func(entry *domain.DayEntry) error {
		if entry.Status != domain.StatusSubmitted {
			return domain.ErrEntryNotSubmitted
		}
		now := uc.clock.Now()
		entry.Status = domain.StatusConfirmed
		entry.ConfirmedAt = &now
		entry.ConfirmedBy = id.Username
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesConfirmed.Inc()
	}

	return entry, nil
}

// Unlock reopens a submitted or confirmed entry for correction. Recorded
// figures survive; only the lifecycle markers are cleared, and the frozen
// snapshot is rewritten on the next submit.
func (uc *EntryUseCase) Unlock(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if _, err := uc.validateKey(ctx, counter, date); err != nil {
		return nil, err
	}

	entry, err := uc.mutate(ctx, counter, date, func(entry *domain.DayEntry) error {
		if !entry.Status.IsTerminal() {
			return domain.ErrEntryNotLocked
		}
		entry.Status = domain.StatusOpen
		entry.SubmittedAt = nil
		entry.ConfirmedAt = nil
		entry.ConfirmedBy = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesUnlocked.Inc()
	}

	return entry, nil
}

// mutateOpen applies a field edit to an entry that must still be open.
func (uc *EntryUseCase) mutateOpen(ctx context.Context, counter, date string, apply func(*domain.DayEntry) error) (*domain.DayEntry, error) {
	if _, err := uc.validateKey(ctx, counter, date); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, counter, date, func(entry *domain.DayEntry) error {
		if !entry.IsOpen() {
			return domain.ErrEntryNotOpen
		}
		return apply(entry)
	})
}

// mutate runs apply on the row-locked entry inside a transaction.
func (uc *EntryUseCase) mutate(ctx context.Context, counter, date string, apply func(*domain.DayEntry) error) (*domain.DayEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByKeyForUpdate(txCtx, tx, counter, date)
	if err != nil {
		return nil, err
	}

	if err := apply(entry); err != nil {
		return nil, err
	}

	entry.UpdatedAt = uc.clock.Now()

	if err := uc.entryRepo.Update(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}
