package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CounterKind selects how a counter's sales figures are reported.
type CounterKind string

const (
	// CounterSimple reports one total/card-UPI/credit triple.
	CounterSimple CounterKind = "simple"

	// CounterCombined runs two sub-businesses (mart and fashion) and
	// reports a triple for each.
	CounterCombined CounterKind = "combined"
)

// IsValid checks if the kind is known.
func (k CounterKind) IsValid() bool {
	return k == CounterSimple || k == CounterCombined
}

// Counter is a configured point-of-sale counter. Kind is fixed at
// configuration time; computations never infer it from the name.
type Counter struct {
	Name      string
	Store     string
	Kind      CounterKind
	CreatedAt time.Time
}

// BusinessSales is the end-of-day triple for one business unit.
type BusinessSales struct {
	TotalSales   decimal.Decimal `json:"totalSales"`
	CardUPISales decimal.Decimal `json:"cardUpiSales"`
	CreditSales  decimal.Decimal `json:"creditSales"`
}

// CashSales derives the cash portion: total minus card/UPI minus credit.
// The result may be negative on bad data entry and is never clamped.
func (b BusinessSales) CashSales() decimal.Decimal {
	return b.TotalSales.Sub(b.CardUPISales).Sub(b.CreditSales)
}

// SalesData is the end-of-day sales aggregate for one entry. Simple
// counters fill the top-level triple; combined counters fill Mart and
// Fashion instead. Cash sales are always derived, never stored.
type SalesData struct {
	TotalSales   decimal.Decimal `json:"totalSales"`
	CardUPISales decimal.Decimal `json:"cardUpiSales"`
	CreditSales  decimal.Decimal `json:"creditSales"`

	Mart    BusinessSales `json:"mart"`
	Fashion BusinessSales `json:"fashion"`
}

// CashSales derives the cash portion of sales for the given counter kind.
func (s SalesData) CashSales(kind CounterKind) decimal.Decimal {
	if kind == CounterCombined {
		return s.Mart.CashSales().Add(s.Fashion.CashSales())
	}

	simple := BusinessSales{
		TotalSales:   s.TotalSales,
		CardUPISales: s.CardUPISales,
		CreditSales:  s.CreditSales,
	}

	return simple.CashSales()
}
