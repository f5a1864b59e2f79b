/*
handlers.go - HTTP API handlers for the pay tracker

PURPOSE:
  Exposes the derivation engine via REST. Handlers parse and validate
  input, load the relevant snapshot from the backend, run the pure engine
  transforms, write the whole updated mapping back, and serialize the
  result.

ENDPOINTS:
  Days:
    GET    /api/days                       Full day-record mapping
    PUT    /api/days/{date}                Save (derive + overwrite) one day
    DELETE /api/days/{date}                Delete one day

  Weeks:
    GET    /api/weeks/{date}               Week view for the week containing {date}
    POST   /api/weeks/{date}/payments      Record a payment against that week
    GET    /api/weeks/{date}/payments      Payment audit trail for that week

  History:
    GET    /api/history                    Week history index

  Export:
    GET    /api/export/work?format=csv|html
    GET    /api/export/payments?format=csv|html

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (validator tags + engine's defensive checks)
  3. Load snapshot -> engine transform -> save snapshot
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed dates/times, negative amounts
  - 404: Unknown day record
  - 500: Backend failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glasspay/paytrack/engine"
	"github.com/glasspay/paytrack/export"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Backend engine.Backend
	Rates   engine.RateConfig

	validate *validator.Validate

	// now is swappable in tests; everything time-dependent goes through it.
	now func() time.Time
}

// NewHandler creates a handler over the given backend and rate configuration.
func NewHandler(backend engine.Backend, rates engine.RateConfig) *Handler {
	return &Handler{
		Backend:  backend,
		Rates:    rates,
		validate: validator.New(),
		now:      time.Now,
	}
}

// =============================================================================
// DAY HANDLERS
// =============================================================================

// ListDays returns the full day-record mapping.
// GET /api/days
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}

	dtos := make(map[string]DayRecordDTO, len(days))
	for date, rec := range days {
		dtos[date] = toDayRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveDay derives and saves one day record, overwriting any existing entry
// for that date wholesale.
// PUT /api/days/{date}
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var req SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	if (req.StartTime == "") != (req.EndTime == "") {
		writeError(w, http.StatusBadRequest, "Start and end time must be set together", nil)
		return
	}

	rec, err := h.Rates.Derive(date, engine.WorkStatus(req.WorkStatus), req.JobsCompleted, req.StartTime, req.EndTime)
	if err != nil {
		writeEngineError(w, "Failed to derive day record", err)
		return
	}

	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}
	days[date] = rec
	if err := h.Backend.SaveDays(r.Context(), days); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save day records", err)
		return
	}

	writeJSON(w, http.StatusOK, toDayRecordDTO(rec))
}

// DeleteDay removes one day record entirely.
// DELETE /api/days/{date}
func (h *Handler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := engine.ParseDate(date); err != nil {
		writeEngineError(w, "Invalid date", err)
		return
	}

	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}
	if _, ok := days[date]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No record for %s", date), nil)
		return
	}
	delete(days, date)
	if err := h.Backend.SaveDays(r.Context(), days); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save day records", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// WEEK HANDLERS
// =============================================================================

// GetWeek returns the 7-day sequence, summary, and payment state for the
// week containing {date}.
// GET /api/weeks/{date}
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	window, err := engine.WeekOfDate(chi.URLParam(r, "date"))
	if err != nil {
		writeEngineError(w, "Invalid date", err)
		return
	}

	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}
	ledger, err := h.Backend.LoadLedger(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payment ledger", err)
		return
	}

	week := engine.WeekData(days, window)
	summary := engine.Summarize(week)

	entry, ok := ledger[window.ID()]
	if !ok {
		entry = engine.EmptyLedgerEntry(window)
	}
	// The stored totals are a cache; the live summary is authoritative.
	entry = engine.RefreshLedgerEntry(entry, window, summary)

	dtos := make([]DayRecordDTO, len(week))
	for i, rec := range week {
		dtos[i] = toDayRecordDTO(rec)
	}

	writeJSON(w, http.StatusOK, WeekResponse{
		WeekStart: window.Start.Format(engine.DateLayout),
		WeekEnd:   window.End.Format(engine.DateLayout),
		Days:      dtos,
		Summary:   toSummaryDTO(summary),
		Payment:   toLedgerEntryDTO(entry),
	})
}

// RecordPayment applies a payment to the week containing {date} and appends
// an event to the audit trail.
// POST /api/weeks/{date}/payments
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	window, err := engine.WeekOfDate(chi.URLParam(r, "date"))
	if err != nil {
		writeEngineError(w, "Invalid date", err)
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}
	ledger, err := h.Backend.LoadLedger(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payment ledger", err)
		return
	}

	summary := engine.SummarizeWeek(days, window)
	entry, ok := ledger[window.ID()]
	if !ok {
		entry = engine.EmptyLedgerEntry(window)
	}

	amount := decimal.NewFromFloat(req.Amount)
	now := h.now()

	updated, err := engine.ApplyPayment(entry, window, summary, amount, req.Notes, now)
	if err != nil {
		writeEngineError(w, "Failed to apply payment", err)
		return
	}

	ledger[window.ID()] = updated
	if err := h.Backend.SaveLedger(r.Context(), ledger); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save payment ledger", err)
		return
	}

	// Zero payments change no monetary state and leave no audit event.
	if amount.IsPositive() {
		ev := engine.PaymentEvent{
			ID:         uuid.NewString(),
			WeekID:     window.ID(),
			Amount:     engine.RoundCurrency(amount),
			Note:       req.Notes,
			RecordedAt: now,
		}
		if err := h.Backend.AppendEvent(r.Context(), ev); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to record payment event", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toLedgerEntryDTO(updated))
}

// ListWeekPayments returns the audit trail for the week containing {date}.
// GET /api/weeks/{date}/payments
func (h *Handler) ListWeekPayments(w http.ResponseWriter, r *http.Request) {
	window, err := engine.WeekOfDate(chi.URLParam(r, "date"))
	if err != nil {
		writeEngineError(w, "Invalid date", err)
		return
	}

	events, err := h.Backend.EventsForWeek(r.Context(), window.ID())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payment events", err)
		return
	}

	dtos := make([]PaymentEventDTO, len(events))
	for i, ev := range events {
		dtos[i] = toPaymentEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HISTORY HANDLER
// =============================================================================

// GetHistory returns the week history index, most recent week first.
// GET /api/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}
	ledger, err := h.Backend.LoadLedger(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payment ledger", err)
		return
	}

	index := engine.BuildIndex(days, ledger)
	dtos := make([]HistoryEntryDTO, len(index))
	for i, e := range index {
		dtos[i] = toHistoryEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// ExportWork streams the day records as CSV or HTML.
// GET /api/export/work?format=csv|html
func (h *Handler) ExportWork(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	if !format.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown format %q", format), nil)
		return
	}

	days, err := h.Backend.LoadDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day records", err)
		return
	}

	setExportHeaders(w, "work-record", format)
	if err := export.WorkData(w, days, format); err != nil {
		// Headers are gone; all we can do is log via the middleware chain.
		return
	}
}

// ExportPayments streams the payment ledger as CSV or HTML.
// GET /api/export/payments?format=csv|html
func (h *Handler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	if !format.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown format %q", format), nil)
		return
	}

	ledger, err := h.Backend.LoadLedger(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payment ledger", err)
		return
	}

	setExportHeaders(w, "payment-record", format)
	if err := export.Payments(w, ledger, format); err != nil {
		return
	}
}

func setExportHeaders(w http.ResponseWriter, name string, format export.Format) {
	switch format {
	case export.FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".html"))
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors onto HTTP statuses: caller-input
// problems are 400s, anything else a 500.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	if engine.IsClientError(err) {
		status = http.StatusBadRequest
	}
	writeError(w, status, message, err)
}
