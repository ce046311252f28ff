package domain

import "github.com/shopspring/decimal"

// ExpectedCash is the direction-aware till expectation:
// opening + cash sales + payments in - payments out.
func ExpectedCash(opening, cashSales, totalIn, totalOut decimal.Decimal) decimal.Decimal {
	return opening.Add(cashSales).Add(totalIn).Sub(totalOut)
}

// LegacyExpectedCash is the pre-direction formula that treated every
// payment as a deduction. Kept only for rendering entries recorded before
// directions existed; new computations must use ExpectedCash.
func LegacyExpectedCash(opening, cashSales, totalPayments decimal.Decimal) decimal.Decimal {
	return opening.Add(cashSales).Sub(totalPayments)
}

// Shortage compares expectation against the physical count. Positive means
// the till holds less than expected; negative is an excess.
func Shortage(expected, actual decimal.Decimal) decimal.Decimal {
	return expected.Sub(actual)
}

// ReconciliationSnapshot is the full derived picture of one entry.
type ReconciliationSnapshot struct {
	CashSales    decimal.Decimal
	TotalIn      decimal.Decimal
	TotalOut     decimal.Decimal
	ExpectedCash decimal.Decimal
	ActualCash   decimal.Decimal
	Shortage     decimal.Decimal
}

// ReconcileEntry computes the snapshot from the entry's current data.
// Submit persists the result; reports on open entries call it live.
func ReconcileEntry(e *DayEntry, kind CounterKind) ReconciliationSnapshot {
	cashSales := e.Sales.CashSales(kind)
	summary := SummarizePayments(e.Payments)
	expected := ExpectedCash(e.OpeningCash, cashSales, summary.TotalIn, summary.TotalOut)
	actual := e.ClosingDenominations.Total()

	return ReconciliationSnapshot{
		CashSales:    cashSales,
		TotalIn:      summary.TotalIn,
		TotalOut:     summary.TotalOut,
		ExpectedCash: expected,
		ActualCash:   actual,
		Shortage:     Shortage(expected, actual),
	}
}
