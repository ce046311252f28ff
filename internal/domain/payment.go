package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection tags a cash movement as money into or out of the till.
type PaymentDirection string

const (
	PaymentIn  PaymentDirection = "IN"
	PaymentOut PaymentDirection = "OUT"
)

// IsValid checks if the direction is a known tag.
func (d PaymentDirection) IsValid() bool {
	return d == PaymentIn || d == PaymentOut
}

// Payment is one ad-hoc cash movement recorded during the day.
// Records migrated from the old book may carry an empty direction; those
// are treated as OUT everywhere.
type Payment struct {
	ID          string           `json:"id"`
	Time        time.Time        `json:"time"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Direction   PaymentDirection `json:"type,omitempty"`
}

// EffectiveDirection resolves the legacy untagged case to OUT.
func (p Payment) EffectiveDirection() PaymentDirection {
	if p.Direction == PaymentIn {
		return PaymentIn
	}
	return PaymentOut
}

// Validate checks a payment at the entry boundary.
func (p Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if p.Direction != "" && !p.Direction.IsValid() {
		return ErrInvalidDirection
	}
	if len(p.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return nil
}

// PaymentSummary holds the per-direction sums of a day's payments.
type PaymentSummary struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
}

// SummarizePayments partitions payments by direction and sums each side.
// Amounts are trusted as recorded; validation happens at entry time.
func SummarizePayments(payments []Payment) PaymentSummary {
	summary := PaymentSummary{
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
	}

	for _, p := range payments {
		if p.EffectiveDirection() == PaymentIn {
			summary.TotalIn = summary.TotalIn.Add(p.Amount)
		} else {
			summary.TotalOut = summary.TotalOut.Add(p.Amount)
		}
	}

	return summary
}
