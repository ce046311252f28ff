package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/smartstores/cashbook/internal/domain"
)

// PaymentUseCase handles the ad-hoc cash movements recorded on an open
// day entry.
type PaymentUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	idGen     IDGenerator
	clock     Clock
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	idGen IDGenerator,
	clock Clock,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		idGen:     idGen,
		clock:     clock,
	}
}

// AddPaymentInput represents input for recording a payment.
type AddPaymentInput struct {
	Counter     string
	Date        string
	Description string
	Amount      decimal.Decimal
	Direction   domain.PaymentDirection
}

// AddPayment appends a payment to the day's list. The ID it gets is
// stable for the life of the entry; later edits address it, never a
// position in the list.
func (uc *PaymentUseCase) AddPayment(ctx context.Context, input AddPaymentInput) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, input.Counter); err != nil {
		return nil, err
	}

	payment := domain.Payment{
		ID:          uc.idGen.Generate(),
		Time:        uc.clock.Now(),
		Description: input.Description,
		Amount:      input.Amount,
		Direction:   input.Direction,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	return uc.mutateOpen(ctx, input.Counter, input.Date, func(entry *domain.DayEntry) error {
		entry.Payments = append(entry.Payments, payment)
		return nil
	})
}

// UpdatePaymentInput represents input for editing a recorded payment.
type UpdatePaymentInput struct {
	Counter     string
	Date        string
	PaymentID   string
	Description string
	Amount      decimal.Decimal
	Direction   domain.PaymentDirection
}

// UpdatePayment replaces a payment's fields in place. The ID and the
// original recording time survive the edit.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, input UpdatePaymentInput) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, input.Counter); err != nil {
		return nil, err
	}

	replacement := domain.Payment{
		Description: input.Description,
		Amount:      input.Amount,
		Direction:   input.Direction,
	}
	if err := replacement.Validate(); err != nil {
		return nil, err
	}

	return uc.mutateOpen(ctx, input.Counter, input.Date, func(entry *domain.DayEntry) error {
		idx := entry.PaymentIndex(input.PaymentID)
		if idx < 0 {
			return domain.ErrPaymentNotFound
		}

		entry.Payments[idx].Description = replacement.Description
		entry.Payments[idx].Amount = replacement.Amount
		entry.Payments[idx].Direction = replacement.Direction
		return nil
	})
}

// RemovePayment deletes a payment from the day's list.
func (uc *PaymentUseCase) RemovePayment(ctx context.Context, counter, date, paymentID string) (*domain.DayEntry, error) {
	if _, err := requireOperator(ctx, counter); err != nil {
		return nil, err
	}

	return uc.mutateOpen(ctx, counter, date, func(entry *domain.DayEntry) error {
		idx := entry.PaymentIndex(paymentID)
		if idx < 0 {
			return domain.ErrPaymentNotFound
		}

		entry.Payments = append(entry.Payments[:idx], entry.Payments[idx+1:]...)
		return nil
	})
}

// mutateOpen mirrors EntryUseCase.mutateOpen for payment edits.
func (uc *PaymentUseCase) mutateOpen(ctx context.Context, counter, date string, apply func(*domain.DayEntry) error) (*domain.DayEntry, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

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

	if !entry.IsOpen() {
		return nil, domain.ErrEntryNotOpen
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
