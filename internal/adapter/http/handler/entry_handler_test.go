package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartstores/cashbook/internal/adapter/http/dto"
	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
)

// entryServiceStub implements EntryService with overridable hooks. A nil
// hook fails the call so tests only wire what they expect to be hit.
type entryServiceStub struct {
	getOrCreateFn      func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	getFn              func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	listByDateFn       func(ctx context.Context, date string) ([]*domain.DayEntry, error)
	countersFn         func(ctx context.Context) ([]*domain.Counter, error)
	verifyOpeningFn    func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	overrideOpeningFn  func(ctx context.Context, input usecase.OverrideOpeningInput) (*domain.DayEntry, error)
	updateSalesFn      func(ctx context.Context, input usecase.UpdateSalesInput) (*domain.DayEntry, error)
	recordClosingFn    func(ctx context.Context, input usecase.RecordClosingInput) (*domain.DayEntry, error)
	recordForwardingFn func(ctx context.Context, input usecase.RecordForwardingInput) (*domain.DayEntry, error)
	submitFn           func(ctx context.Context, input usecase.SubmitInput) (*domain.DayEntry, error)
	confirmFn          func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	unlockFn           func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
}

var errStubNotWired = errors.New("stub method not wired")

func (s *entryServiceStub) GetOrCreate(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if s.getOrCreateFn == nil {
		return nil, errStubNotWired
	}
	return s.getOrCreateFn(ctx, counter, date)
}

func (s *entryServiceStub) Get(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if s.getFn == nil {
		return nil, errStubNotWired
	}
	return s.getFn(ctx, counter, date)
}

func (s *entryServiceStub) ListByDate(ctx context.Context, date string) ([]*domain.DayEntry, error) {
	if s.listByDateFn == nil {
		return nil, errStubNotWired
	}
	return s.listByDateFn(ctx, date)
}

func (s *entryServiceStub) Counters(ctx context.Context) ([]*domain.Counter, error) {
	if s.countersFn == nil {
		return nil, errStubNotWired
	}
	return s.countersFn(ctx)
}

func (s *entryServiceStub) VerifyOpening(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if s.verifyOpeningFn == nil {
		return nil, errStubNotWired
	}
	return s.verifyOpeningFn(ctx, counter, date)
}

func (s *entryServiceStub) OverrideOpening(ctx context.Context, input usecase.OverrideOpeningInput) (*domain.DayEntry, error) {
	if s.overrideOpeningFn == nil {
		return nil, errStubNotWired
	}
	return s.overrideOpeningFn(ctx, input)
}

func (s *entryServiceStub) UpdateSales(ctx context.Context, input usecase.UpdateSalesInput) (*domain.DayEntry, error) {
	if s.updateSalesFn == nil {
		return nil, errStubNotWired
	}
	return s.updateSalesFn(ctx, input)
}

func (s *entryServiceStub) RecordClosing(ctx context.Context, input usecase.RecordClosingInput) (*domain.DayEntry, error) {
	if s.recordClosingFn == nil {
		return nil, errStubNotWired
	}
	return s.recordClosingFn(ctx, input)
}

func (s *entryServiceStub) RecordForwarding(ctx context.Context, input usecase.RecordForwardingInput) (*domain.DayEntry, error) {
	if s.recordForwardingFn == nil {
		return nil, errStubNotWired
	}
	return s.recordForwardingFn(ctx, input)
}

func (s *entryServiceStub) Submit(ctx context.Context, input usecase.SubmitInput) (*domain.DayEntry, error) {
	if s.submitFn == nil {
		return nil, errStubNotWired
	}
	return s.submitFn(ctx, input)
}

func (s *entryServiceStub) Confirm(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if s.confirmFn == nil {
		return nil, errStubNotWired
	}
	return s.confirmFn(ctx, counter, date)
}

func (s *entryServiceStub) Unlock(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if s.unlockFn == nil {
		return nil, errStubNotWired
	}
	return s.unlockFn(ctx, counter, date)
}

func entryRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return withRouteParams(req, map[string]string{
		"date":    "2024-01-01",
		"counter": "Smart%20Mart%20Counter%201",
	})
}

func TestEntryHandler_GetOrCreate_Success(t *testing.T) {
	var capturedCounter, capturedDate string
	h := NewEntryHandler(&entryServiceStub{
		getOrCreateFn: func(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
			capturedCounter, capturedDate = counter, date
			return &domain.DayEntry{
				ID:          "entry-1",
				CounterName: counter,
				Date:        date,
				Status:      domain.StatusOpen,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.GetOrCreate(rec, entryRequest(http.MethodPost, "/entries/2024-01-01/c", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedCounter != "Smart Mart Counter 1" || capturedDate != "2024-01-01" {
		t.Fatalf("expected decoded key, got %q %q", capturedCounter, capturedDate)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "entry-1" || resp.Status != domain.StatusOpen {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Payments == nil {
		t.Fatal("expected payments to serialize as an empty list, not null")
	}
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		getFn: func(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
			return nil, domain.ErrEntryNotFound
		},
	})

	rec := httptest.NewRecorder()
	h.Get(rec, entryRequest(http.MethodGet, "/entries/2024-01-01/c", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_Submit_Success(t *testing.T) {
	var captured usecase.SubmitInput
	h := NewEntryHandler(&entryServiceStub{
		submitFn: func(ctx context.Context, input usecase.SubmitInput) (*domain.DayEntry, error) {
			captured = input
			return &domain.DayEntry{
				ID:          "entry-1",
				CounterName: input.Counter,
				Date:        input.Date,
				Status:      domain.StatusSubmitted,
				ClosedBy:    input.ClosedBy,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.SubmitRequest{ClosedBy: "Raj"})
	rec := httptest.NewRecorder()
	h.Submit(rec, entryRequest(http.MethodPost, "/entries/2024-01-01/c/submit", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ClosedBy != "Raj" || captured.Counter != "Smart Mart Counter 1" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestEntryHandler_Submit_MissingCloserName(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		submitFn: func(ctx context.Context, input usecase.SubmitInput) (*domain.DayEntry, error) {
			t.Fatal("Submit should not be called when validation fails")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Submit(rec, entryRequest(http.MethodPost, "/entries/2024-01-01/c/submit", []byte(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Submit_NotOpenConflict(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		submitFn: func(ctx context.Context, input usecase.SubmitInput) (*domain.DayEntry, error) {
			return nil, domain.ErrEntryNotOpen
		},
	})

	body, _ := json.Marshal(dto.SubmitRequest{ClosedBy: "Raj"})
	rec := httptest.NewRecorder()
	h.Submit(rec, entryRequest(http.MethodPost, "/entries/2024-01-01/c/submit", body))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a locked entry, got %d", rec.Code)
	}
}

func TestEntryHandler_RecordClosing_InvalidJSON(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{})

	rec := httptest.NewRecorder()
	h.RecordClosing(rec, entryRequest(http.MethodPut, "/entries/2024-01-01/c/closing", []byte("{invalid")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_ListByDate_Forbidden(t *testing.T) {
	h := NewEntryHandler(&entryServiceStub{
		listByDateFn: func(ctx context.Context, date string) ([]*domain.DayEntry, error) {
			return nil, domain.ErrUnauthorized
		},
	})

	rec := httptest.NewRecorder()
	h.ListByDate(rec, entryRequest(http.MethodGet, "/entries/2024-01-01", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
