package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/smartstores/cashbook/internal/adapter/http/dto"
	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	GetOrCreate(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	Get(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	ListByDate(ctx context.Context, date string) ([]*domain.DayEntry, error)
	Counters(ctx context.Context) ([]*domain.Counter, error)
	VerifyOpening(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	OverrideOpening(ctx context.Context, input usecase.OverrideOpeningInput) (*domain.DayEntry, error)
	UpdateSales(ctx context.Context, input usecase.UpdateSalesInput) (*domain.DayEntry, error)
	RecordClosing(ctx context.Context, input usecase.RecordClosingInput) (*domain.DayEntry, error)
	RecordForwarding(ctx context.Context, input usecase.RecordForwardingInput) (*domain.DayEntry, error)
	Submit(ctx context.Context, input usecase.SubmitInput) (*domain.DayEntry, error)
	Confirm(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	Unlock(ctx context.Context, counter, date string) (*domain.DayEntry, error)
}

// EntryHandler handles day-entry HTTP requests.
type EntryHandler struct {
	entryUC  EntryService
	validate *validator.Validate
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{
		entryUC:  entryUC,
		validate: validator.New(),
	}
}

// GetOrCreate opens the day's entry, creating it with a carried-forward
// opening balance on first touch.
func (h *EntryHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	entry, err := h.entryUC.GetOrCreate(r.Context(), counter, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Get retrieves an existing entry.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	entry, err := h.entryUC.Get(r.Context(), counter, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ListByDate lists every counter's entry for one date.
func (h *EntryHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	entries, err := h.entryUC.ListByDate(r.Context(), date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListCounters lists the configured counters.
func (h *EntryHandler) ListCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := h.entryUC.Counters(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list counters", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CountersFromDomain(counters))
}

// VerifyOpening marks the opening float as physically checked.
func (h *EntryHandler) VerifyOpening(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	entry, err := h.entryUC.VerifyOpening(r.Context(), counter, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify opening", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// OverrideOpening replaces the opening float on an open entry.
func (h *EntryHandler) OverrideOpening(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	var req dto.OverrideOpeningRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.entryUC.OverrideOpening(r.Context(), req.ToUseCaseInput(counter, date))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to override opening", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// UpdateSales stores the day's sales figures.
func (h *EntryHandler) UpdateSales(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	var req dto.UpdateSalesRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.entryUC.UpdateSales(r.Context(), req.ToUseCaseInput(counter, date))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update sales", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// RecordClosing stores the physical closing count.
func (h *EntryHandler) RecordClosing(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	var req dto.RecordClosingRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.entryUC.RecordClosing(r.Context(), req.ToUseCaseInput(counter, date))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record closing", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// RecordForwarding stores the next-day float.
func (h *EntryHandler) RecordForwarding(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	var req dto.RecordForwardingRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.entryUC.RecordForwarding(r.Context(), req.ToUseCaseInput(counter, date))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record forwarding", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Submit closes the day and freezes the reconciliation snapshot.
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	var req dto.SubmitRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.entryUC.Submit(r.Context(), req.ToUseCaseInput(counter, date))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Confirm locks a submitted entry after admin review.
func (h *EntryHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	entry, err := h.entryUC.Confirm(r.Context(), counter, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to confirm entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Unlock reopens a submitted or confirmed entry for correction.
func (h *EntryHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	entry, err := h.entryUC.Unlock(r.Context(), counter, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to unlock entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
