/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based model from the external API contract: decimals
  become plain JSON numbers at this boundary and nowhere else.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run the
  validator before touching the engine. Clock-time and date formats are
  validated by the engine itself, which rejects malformed values with
  explicit errors.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The authoritative model
*/
package api

import (
	"time"

	"github.com/glasspay/paytrack/engine"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// DayRecordDTO represents one day's work entry in API responses.
type DayRecordDTO struct {
	Date          string  `json:"date"`
	WorkStatus    string  `json:"workStatus"`
	JobsCompleted int     `json:"jobsCompleted"`
	HoursWorked   float64 `json:"hoursWorked"`
	PayAmount     float64 `json:"payAmount"`
	HourlyRate    float64 `json:"hourlyRate"`
	StartTime     string  `json:"startTime,omitempty"`
	EndTime       string  `json:"endTime,omitempty"`
}

// SaveDayRequest is the body for PUT /api/days/{date}. Hours, pay, and rate
// are never accepted from clients; they are derived.
type SaveDayRequest struct {
	WorkStatus    string `json:"workStatus" validate:"required,oneof=full half off"`
	JobsCompleted int    `json:"jobsCompleted" validate:"gte=0"`
	StartTime     string `json:"startTime" validate:"omitempty,len=5"`
	EndTime       string `json:"endTime" validate:"omitempty,len=5"`
}

// SummaryDTO is the derived weekly summary.
type SummaryDTO struct {
	TotalHours    float64 `json:"totalHours"`
	TotalPay      float64 `json:"totalPay"`
	TotalJobs     int     `json:"totalJobs"`
	AvgHourlyRate float64 `json:"avgHourlyRate"`
}

// LedgerEntryDTO is the per-week payment state.
type LedgerEntryDTO struct {
	WeekStart     string  `json:"weekStart"`
	WeekEnd       string  `json:"weekEnd"`
	TotalAmount   float64 `json:"totalAmount"`
	AmountPaid    float64 `json:"amountPaid"`
	AmountDue     float64 `json:"amountDue"`
	Notes         string  `json:"notes,omitempty"`
	LastUpdated   string  `json:"lastUpdated,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`
}

// WeekResponse is the full view of one week: window, day sequence, summary,
// and payment state.
type WeekResponse struct {
	WeekStart string         `json:"weekStart"`
	WeekEnd   string         `json:"weekEnd"`
	Days      []DayRecordDTO `json:"days"`
	Summary   SummaryDTO     `json:"summary"`
	Payment   LedgerEntryDTO `json:"payment"`
}

// RecordPaymentRequest is the body for POST /api/weeks/{date}/payments.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Notes  string  `json:"notes"`
}

// PaymentEventDTO is one row of the append-only payment audit trail.
type PaymentEventDTO struct {
	ID         string  `json:"id"`
	WeekID     string  `json:"weekId"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
	RecordedAt string  `json:"recordedAt"`
}

// HistoryEntryDTO is one row of the week history index.
type HistoryEntryDTO struct {
	WeekID        string  `json:"weekId"`
	WeekStart     string  `json:"weekStart"`
	WeekEnd       string  `json:"weekEnd"`
	TotalHours    float64 `json:"totalHours"`
	TotalPay      float64 `json:"totalPay"`
	TotalJobs     int     `json:"totalJobs"`
	AvgHourlyRate float64 `json:"avgHourlyRate"`
	TotalAmount   float64 `json:"totalAmount"`
	AmountPaid    float64 `json:"amountPaid"`
	PaymentStatus string  `json:"paymentStatus"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toDayRecordDTO(rec engine.DayRecord) DayRecordDTO {
	return DayRecordDTO{
		Date:          rec.Date,
		WorkStatus:    string(rec.WorkStatus),
		JobsCompleted: rec.JobsCompleted,
		HoursWorked:   rec.HoursWorked.InexactFloat64(),
		PayAmount:     rec.PayAmount.InexactFloat64(),
		HourlyRate:    rec.HourlyRate.InexactFloat64(),
		StartTime:     rec.StartTime,
		EndTime:       rec.EndTime,
	}
}

func toSummaryDTO(s engine.WeeklySummary) SummaryDTO {
	return SummaryDTO{
		TotalHours:    s.TotalHours.InexactFloat64(),
		TotalPay:      s.TotalPay.InexactFloat64(),
		TotalJobs:     s.TotalJobs,
		AvgHourlyRate: s.AvgHourlyRate.InexactFloat64(),
	}
}

func toLedgerEntryDTO(entry engine.PaymentLedgerEntry) LedgerEntryDTO {
	updated := ""
	if !entry.LastUpdated.IsZero() {
		updated = entry.LastUpdated.Format(time.RFC3339)
	}
	return LedgerEntryDTO{
		WeekStart:     entry.WeekStart,
		WeekEnd:       entry.WeekEnd,
		TotalAmount:   entry.TotalAmount.InexactFloat64(),
		AmountPaid:    entry.AmountPaid.InexactFloat64(),
		AmountDue:     entry.AmountDue.InexactFloat64(),
		Notes:         entry.Notes,
		LastUpdated:   updated,
		PaymentStatus: string(engine.ClassifyPayment(entry.AmountPaid, entry.TotalAmount)),
	}
}

func toPaymentEventDTO(ev engine.PaymentEvent) PaymentEventDTO {
	return PaymentEventDTO{
		ID:         ev.ID,
		WeekID:     ev.WeekID,
		Amount:     ev.Amount.InexactFloat64(),
		Note:       ev.Note,
		RecordedAt: ev.RecordedAt.Format(time.RFC3339),
	}
}

func toHistoryEntryDTO(e engine.WeekHistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		WeekID:        e.WeekID,
		WeekStart:     e.Window.Start.Format(engine.DateLayout),
		WeekEnd:       e.Window.End.Format(engine.DateLayout),
		TotalHours:    e.Summary.TotalHours.InexactFloat64(),
		TotalPay:      e.Summary.TotalPay.InexactFloat64(),
		TotalJobs:     e.Summary.TotalJobs,
		AvgHourlyRate: e.Summary.AvgHourlyRate.InexactFloat64(),
		TotalAmount:   e.TotalAmount.InexactFloat64(),
		AmountPaid:    e.AmountPaid.InexactFloat64(),
		PaymentStatus: string(e.Status),
	}
}
