package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DenominationCount holds the physical note and coin counts for one till.
// The ten slots are fixed; a zero value means an empty till.
type DenominationCount struct {
	Notes500 int64 `json:"notes500"`
	Notes200 int64 `json:"notes200"`
	Notes100 int64 `json:"notes100"`
	Notes50  int64 `json:"notes50"`
	Notes20  int64 `json:"notes20"`
	Notes10  int64 `json:"notes10"`
	Coins10  int64 `json:"coins10"`
	Coins5   int64 `json:"coins5"`
	Coins2   int64 `json:"coins2"`
	Coins1   int64 `json:"coins1"`
}

// Total converts the counts into a currency amount.
func (d DenominationCount) Total() decimal.Decimal {
	sum := d.Notes500*500 +
		d.Notes200*200 +
		d.Notes100*100 +
		d.Notes50*50 +
		d.Notes20*20 +
		d.Notes10*10 +
		d.Coins10*10 +
		d.Coins5*5 +
		d.Coins2*2 +
		d.Coins1

	return decimal.NewFromInt(sum)
}

// Retained returns the counts physically removed from the till when
// `forwarded` is kept as the next day's float. Slots where the forwarded
// count exceeds the closing count floor at zero; the edit surface is
// expected to prevent that input.
func (d DenominationCount) Retained(forwarded DenominationCount) DenominationCount {
	return DenominationCount{
		Notes500: clampNonNegative(d.Notes500 - forwarded.Notes500),
		Notes200: clampNonNegative(d.Notes200 - forwarded.Notes200),
		Notes100: clampNonNegative(d.Notes100 - forwarded.Notes100),
		Notes50:  clampNonNegative(d.Notes50 - forwarded.Notes50),
		Notes20:  clampNonNegative(d.Notes20 - forwarded.Notes20),
		Notes10:  clampNonNegative(d.Notes10 - forwarded.Notes10),
		Coins10:  clampNonNegative(d.Coins10 - forwarded.Coins10),
		Coins5:   clampNonNegative(d.Coins5 - forwarded.Coins5),
		Coins2:   clampNonNegative(d.Coins2 - forwarded.Coins2),
		Coins1:   clampNonNegative(d.Coins1 - forwarded.Coins1),
	}
}

// IsZero reports whether every slot is zero.
func (d DenominationCount) IsZero() bool {
	return d == DenominationCount{}
}

// Validate rejects negative counts. Counts arrive from form input, so a
// negative slot is always operator error.
func (d DenominationCount) Validate() error {
	slots := []struct {
		name  string
		count int64
	}{
		{"notes500", d.Notes500},
		{"notes200", d.Notes200},
		{"notes100", d.Notes100},
		{"notes50", d.Notes50},
		{"notes20", d.Notes20},
		{"notes10", d.Notes10},
		{"coins10", d.Coins10},
		{"coins5", d.Coins5},
		{"coins2", d.Coins2},
		{"coins1", d.Coins1},
	}

	for _, s := range slots {
		if s.count < 0 {
			return fmt.Errorf("%w: %s is %d", ErrNegativeQuantity, s.name, s.count)
		}
	}

	return nil
}

func clampNonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
