package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartstores/cashbook/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Daily(ctx context.Context, date string) (*usecase.DailyReport, error)
}

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Daily returns the cross-counter reconciliation report for one date.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	report, err := h.reportUC.Daily(r.Context(), date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build daily report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
