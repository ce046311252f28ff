package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/smartstores/cashbook/internal/domain"
)

// ReportUseCase builds the cross-counter daily comparison report.
type ReportUseCase struct {
	entryRepo   EntryRepository
	counterRepo CounterRepository
	cache       Cache
	clock       Clock
	logger      zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	entryRepo EntryRepository,
	counterRepo CounterRepository,
	cache Cache,
	clock Clock,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		entryRepo:   entryRepo,
		counterRepo: counterRepo,
		cache:       cache,
		clock:       clock,
		logger:      logger,
	}
}

// CounterReport is one counter's line in the daily report.
type CounterReport struct {
	CounterName  string             `json:"counterName"`
	Status       domain.EntryStatus `json:"status"`
	OpeningCash  decimal.Decimal    `json:"openingCash"`
	CashSales    decimal.Decimal    `json:"cashSales"`
	TotalIn      decimal.Decimal    `json:"totalIn"`
	TotalOut     decimal.Decimal    `json:"totalOut"`
	ExpectedCash decimal.Decimal    `json:"expectedCash"`
	ActualCash   decimal.Decimal    `json:"actualCash"`
	Shortage     decimal.Decimal    `json:"shortage"`
	ClosedBy     string             `json:"closedBy,omitempty"`
	Frozen       bool               `json:"frozen"`
}

// DailyReport aggregates every counter's reconciliation for one date.
type DailyReport struct {
	Date          string          `json:"date"`
	Counters      []CounterReport `json:"counters"`
	MissingEntry  []string        `json:"missingEntry,omitempty"`
	TotalExpected decimal.Decimal `json:"totalExpected"`
	TotalActual   decimal.Decimal `json:"totalActual"`
	TotalShortage decimal.Decimal `json:"totalShortage"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// Daily builds the report for one date. Terminal entries report their
// frozen submission snapshot; open entries are reconciled live. Counters
// with no entry yet are listed as missing. Results are cached briefly
// since the admin dashboard polls this.
func (uc *ReportUseCase) Daily(ctx context.Context, date string) (*DailyReport, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok || !id.CanViewAll() {
		return nil, domain.ErrUnauthorized
	}

	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

	cacheKey := "report:daily:" + date
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var report DailyReport
			if err := json.Unmarshal(raw, &report); err == nil {
				return &report, nil
			}
		}
	}

	counters, err := uc.counterRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	byCounter := make(map[string]*domain.DayEntry, len(entries))
	for _, e := range entries {
		byCounter[e.CounterName] = e
	}

	report := &DailyReport{
		Date:          date,
		TotalExpected: decimal.Zero,
		TotalActual:   decimal.Zero,
		TotalShortage: decimal.Zero,
		GeneratedAt:   uc.clock.Now(),
	}

	for _, counter := range counters {
		entry, found := byCounter[counter.Name]
		if !found {
			report.MissingEntry = append(report.MissingEntry, counter.Name)
			continue
		}

		line := buildCounterReport(entry, counter.Kind)
		report.Counters = append(report.Counters, line)
		report.TotalExpected = report.TotalExpected.Add(line.ExpectedCash)
		report.TotalActual = report.TotalActual.Add(line.ActualCash)
		report.TotalShortage = report.TotalShortage.Add(line.Shortage)
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, raw, DailyReportCacheTTL); err != nil {
				uc.logger.Warn().Err(err).Str("date", date).Msg("failed to cache daily report")
			}
		}
	}

	return report, nil
}

func buildCounterReport(entry *domain.DayEntry, kind domain.CounterKind) CounterReport {
	line := CounterReport{
		CounterName: entry.CounterName,
		Status:      entry.Status,
		OpeningCash: entry.OpeningCash,
		ClosedBy:    entry.ClosedBy,
	}

	if entry.Status.IsTerminal() {
		// The frozen snapshot is authoritative once submitted; the
		// in/out split is still derived since it was never frozen.
		summary := domain.SummarizePayments(entry.Payments)
		line.CashSales = entry.Sales.CashSales(kind)
		line.TotalIn = summary.TotalIn
		line.TotalOut = summary.TotalOut
		line.ExpectedCash = entry.SubmittedExpectedCash
		line.ActualCash = entry.SubmittedActualCash
		line.Shortage = entry.SubmittedShortage
		line.Frozen = true
		return line
	}

	snapshot := domain.ReconcileEntry(entry, kind)
	line.CashSales = snapshot.CashSales
	line.TotalIn = snapshot.TotalIn
	line.TotalOut = snapshot.TotalOut
	line.ExpectedCash = snapshot.ExpectedCash
	line.ActualCash = snapshot.ActualCash
	line.Shortage = snapshot.Shortage
	return line
}
