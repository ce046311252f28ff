package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a day entry.
type EntryStatus string

const (
	StatusOpen      EntryStatus = "open"
	StatusSubmitted EntryStatus = "submitted"
	StatusConfirmed EntryStatus = "confirmed"
)

// IsValid checks if the status is a known state.
func (s EntryStatus) IsValid() bool {
	return s == StatusOpen || s == StatusSubmitted || s == StatusConfirmed
}

// IsTerminal reports whether an entry in this state qualifies as a
// carry-forward source for later days.
func (s EntryStatus) IsTerminal() bool {
	return s == StatusSubmitted || s == StatusConfirmed
}

// DayEntry is one counter's cash book for one calendar day. At most one
// entry exists per (counter, date); the store enforces that with a
// uniqueness constraint.
type DayEntry struct {
	ID          string
	CounterName string
	Date        string // YYYY-MM-DD in the business timezone

	OpeningCash          decimal.Decimal
	OpeningDenominations DenominationCount
	OpeningVerified      bool
	OpeningVerifiedAt    *time.Time

	Payments []Payment
	Sales    SalesData

	ClosingDenominations DenominationCount

	// Next-day float, set together with the closing count. A nil cash
	// amount means "derive from the denominations, if any".
	NextDayOpeningCash          *decimal.Decimal
	NextDayOpeningDenominations *DenominationCount

	// Snapshot written once at submission, never recomputed afterwards.
	SubmittedExpectedCash decimal.Decimal
	SubmittedActualCash   decimal.Decimal
	SubmittedShortage     decimal.Decimal
	ClosedBy              string

	Status      EntryStatus
	SubmittedAt *time.Time
	ConfirmedAt *time.Time
	ConfirmedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether field-level edits are still permitted.
func (e *DayEntry) IsOpen() bool {
	return e.Status == StatusOpen
}

// PaymentIndex finds a payment by its stable ID. Returns -1 when absent.
func (e *DayEntry) PaymentIndex(id string) int {
	for i, p := range e.Payments {
		if p.ID == id {
			return i
		}
	}
	return -1
}
