package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/smartstores/cashbook/internal/domain"
)

// withRouteParams attaches chi URL params to a request for direct
// handler invocation.
func withRouteParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"counter not found", domain.ErrCounterNotFound, http.StatusNotFound},
		{"payment not found", domain.ErrPaymentNotFound, http.StatusNotFound},
		{"entry exists", domain.ErrEntryExists, http.StatusConflict},
		{"entry not open", domain.ErrEntryNotOpen, http.StatusConflict},
		{"entry not locked", domain.ErrEntryNotLocked, http.StatusConflict},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid date", domain.ErrInvalidDate, http.StatusBadRequest},
		{"empty closer name", domain.ErrEmptyCloserName, http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	wrapped := errors.New("context: " + domain.ErrInvalidDate.Error())
	if got := mapDomainError(wrapped); got != http.StatusInternalServerError {
		t.Fatalf("expected string-alike error to stay 500, got %d", got)
	}

	if got := mapDomainError(errors.Join(errors.New("ctx"), domain.ErrEntryNotOpen)); got != http.StatusConflict {
		t.Fatalf("expected wrapped sentinel to map to 409, got %d", got)
	}
}

func TestEntryKey_UnescapesCounterName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/entries/2024-01-01/whatever", nil)
	req = withRouteParams(req, map[string]string{
		"date":    "2024-01-01",
		"counter": "Smart%20Mart%20Counter%201",
	})

	counter, date := entryKey(req)
	if counter != "Smart Mart Counter 1" {
		t.Fatalf("expected decoded counter name, got %q", counter)
	}
	if date != "2024-01-01" {
		t.Fatalf("expected date to pass through, got %q", date)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Fatalf("unexpected body: %v", decoded)
	}
}
