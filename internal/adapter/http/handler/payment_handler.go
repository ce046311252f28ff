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

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	AddPayment(ctx context.Context, input usecase.AddPaymentInput) (*domain.DayEntry, error)
	UpdatePayment(ctx context.Context, input usecase.UpdatePaymentInput) (*domain.DayEntry, error)
	RemovePayment(ctx context.Context, counter, date, paymentID string) (*domain.DayEntry, error)
}

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
	validate  *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
		validate:  validator.New(),
	}
}

// Add records a payment on the day's entry.
func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)

	var req dto.AddPaymentRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.paymentUC.AddPayment(r.Context(), req.ToUseCaseInput(counter, date))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Update edits a recorded payment in place.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)
	paymentID := chi.URLParam(r, "paymentID")

	var req dto.UpdatePaymentRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	entry, err := h.paymentUC.UpdatePayment(r.Context(), req.ToUseCaseInput(counter, date, paymentID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Remove deletes a recorded payment.
func (h *PaymentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	counter, date := entryKey(r)
	paymentID := chi.URLParam(r, "paymentID")

	entry, err := h.paymentUC.RemovePayment(r.Context(), counter, date, paymentID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to remove payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
