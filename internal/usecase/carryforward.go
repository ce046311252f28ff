package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/smartstores/cashbook/internal/domain"
)

// CarryForwardResolver determines a day's opening balance from the chain
// of prior entries.
type CarryForwardResolver struct {
	entryRepo EntryRepository
}

// NewCarryForwardResolver creates a new CarryForwardResolver.
func NewCarryForwardResolver(entryRepo EntryRepository) *CarryForwardResolver {
	return &CarryForwardResolver{entryRepo: entryRepo}
}

// OpeningBalance is a resolved opening amount with its breakdown.
type OpeningBalance struct {
	Cash          decimal.Decimal
	Denominations domain.DenominationCount
}

// OpeningFor resolves the opening balance for (counter, date).
//
// A verified or overridden opening on the day's own entry is authoritative.
// Otherwise the most recent submitted or confirmed entry before the date
// supplies its next-day float: the explicit amount if one was set, the
// total of the forwarded denominations if not. With no qualifying prior
// entry the counter opens empty.
func (r *CarryForwardResolver) OpeningFor(ctx context.Context, counter, date string) (OpeningBalance, error) {
	existing, err := r.entryRepo.GetByKey(ctx, counter, date)
	if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		return OpeningBalance{}, err
	}

	if err == nil && existing.OpeningVerified && existing.OpeningCash.IsPositive() {
		return OpeningBalance{
			Cash:          existing.OpeningCash,
			Denominations: existing.OpeningDenominations,
		}, nil
	}

	prev, err := r.entryRepo.LatestTerminalBefore(ctx, counter, date)
	if errors.Is(err, domain.ErrEntryNotFound) {
		return OpeningBalance{Cash: decimal.Zero}, nil
	}
	if err != nil {
		return OpeningBalance{}, err
	}

	if prev.NextDayOpeningCash != nil {
		balance := OpeningBalance{Cash: *prev.NextDayOpeningCash}
		if prev.NextDayOpeningDenominations != nil {
			balance.Denominations = *prev.NextDayOpeningDenominations
		}
		return balance, nil
	}

	if prev.NextDayOpeningDenominations != nil {
		denoms := *prev.NextDayOpeningDenominations
		return OpeningBalance{
			Cash:          denoms.Total(),
			Denominations: denoms,
		}, nil
	}

	return OpeningBalance{Cash: decimal.Zero}, nil
}
