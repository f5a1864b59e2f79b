/*
Package engine is the derivation core of the pay tracker.

PURPOSE:
  This package contains the pure types and algorithms that turn raw day
  records into weekly summaries and reconciled payment state. It computes
  elapsed hours from clock times, derives pay from a work-status selection,
  resolves canonical Monday-through-Sunday week windows, aggregates days
  into summaries, and reconciles cumulative payments against what a week
  earned.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkStatus: Full day, half day, or off
  - DayRecord: One calendar day's work entry (the persisted unit)
  - WeekWindow: Monday 00:00:00.000 through Sunday 23:59:59.999
  - WeeklySummary: Derived totals for one week, never persisted
  - PaymentLedgerEntry: Per-week running payment state

DESIGN PRINCIPLES:
  1. Purity: Every function is a transform over snapshots. Inputs are never
     mutated; callers receive new values and own all persistence.
  2. Precision: Uses decimal.Decimal for hours and money. Hours carry one
     decimal place, currency two. The two rounding rules live here, in
     RoundHours and RoundCurrency, and are applied at every accumulation
     step so drift cannot build up across additions.
  3. Derived fields stay derived: hourlyRate and amountDue are always
     recomputed, never independently set.

USAGE:
  cfg := engine.DefaultRateConfig()
  rec, err := cfg.Derive("2026-03-09", engine.StatusFull, 3, "09:00", "17:30")
  window  := engine.WeekOf(someDate)
  week    := engine.WeekData(days, window)
  summary := engine.Summarize(week)

SEE ALSO:
  - clock.go: Elapsed-hours calculation with overnight wraparound
  - derive.go: Status-based pay derivation
  - week.go: Week window resolution
  - aggregate.go: Weekly aggregation
  - reconcile.go: Payment reconciliation
  - history.go: Historical week index
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROUNDING - The only two precisions this system knows
// =============================================================================

// RoundHours rounds to one decimal place, half up. Applied to every hours
// value and every partial hours sum.
func RoundHours(d decimal.Decimal) decimal.Decimal { return d.Round(1) }

// RoundCurrency rounds to two decimal places, half up. Applied to every
// monetary value and every partial monetary sum.
func RoundCurrency(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// =============================================================================
// WORK STATUS
// =============================================================================

type WorkStatus string

const (
	StatusFull WorkStatus = "full"
	StatusHalf WorkStatus = "half"
	StatusOff  WorkStatus = "off"
)

// Valid reports whether s is one of the three known statuses.
func (s WorkStatus) Valid() bool {
	switch s {
	case StatusFull, StatusHalf, StatusOff:
		return true
	}
	return false
}

// =============================================================================
// DAY RECORD - One calendar day's work entry
// =============================================================================

// DayRecord is the persisted unit: one entry per calendar day, keyed by its
// ISO date. Records are created or overwritten wholesale on save and removed
// entirely on delete; there is no partial-field update.
//
// INVARIANTS:
//   - Status == StatusOff implies zero hours/pay/jobs and absent times.
//   - StartTime and EndTime are present together or absent together.
//   - When times are present, HoursWorked is recomputed from them, never
//     hand-entered.
//   - HourlyRate is derived from PayAmount and HoursWorked.
type DayRecord struct {
	Date          string          `json:"date"` // ISO YYYY-MM-DD, canonical key
	WorkStatus    WorkStatus      `json:"workStatus"`
	JobsCompleted int             `json:"jobsCompleted"`
	HoursWorked   decimal.Decimal `json:"hoursWorked"` // 1-decimal precision
	PayAmount     decimal.Decimal `json:"payAmount"`   // 2-decimal precision
	HourlyRate    decimal.Decimal `json:"hourlyRate"`  // derived, 2-decimal precision
	StartTime     string          `json:"startTime,omitempty"` // "HH:MM" or empty
	EndTime       string          `json:"endTime,omitempty"`   // "HH:MM" or empty
}

// OffDay returns the zeroed record a missing day stands for.
func OffDay(date string) DayRecord {
	return DayRecord{
		Date:        date,
		WorkStatus:  StatusOff,
		HoursWorked: decimal.Zero,
		PayAmount:   decimal.Zero,
		HourlyRate:  decimal.Zero,
	}
}

// HasCustomTimes reports whether this record's hours came from explicit
// clock times rather than the status default.
func (r DayRecord) HasCustomTimes() bool {
	return r.StartTime != "" && r.EndTime != ""
}

// =============================================================================
// WEEK WINDOW - Canonical Monday-through-Sunday span
// =============================================================================

// WeekWindow is always computed fresh from a reference date and never
// persisted. Start is Monday 00:00:00.000, End the following Sunday
// 23:59:59.999.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// ID returns the week identifier: the ISO date of the Monday.
func (w WeekWindow) ID() string { return w.Start.Format(DateLayout) }

// Contains reports whether t falls inside the window.
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w WeekWindow) String() string {
	return "[" + w.Start.Format(DateLayout) + ", " + w.End.Format(DateLayout) + "]"
}

// =============================================================================
// WEEKLY SUMMARY - Derived, never persisted
// =============================================================================

type WeeklySummary struct {
	TotalHours    decimal.Decimal
	TotalPay      decimal.Decimal
	TotalJobs     int
	AvgHourlyRate decimal.Decimal // TotalPay / TotalHours, 0 when no hours
}

// =============================================================================
// PAYMENT LEDGER ENTRY - Per-week running payment state
// =============================================================================

// PaymentLedgerEntry tracks cumulative payment against one week, keyed by the
// week identifier (ISO date of the Monday).
//
// INVARIANTS:
//   - AmountDue == max(0, TotalAmount - AmountPaid) at the time of read.
//   - Notes are append-only: reconciliation events add lines, they never
//     rewrite history.
//   - TotalAmount is a cache of the week's derived pay; the live summary is
//     authoritative and refreshes it on every reconciliation.
type PaymentLedgerEntry struct {
	WeekStart   string          `json:"weekStart"`
	WeekEnd     string          `json:"weekEnd"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	AmountDue   decimal.Decimal `json:"amountDue"`
	Notes       string          `json:"notes"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// EmptyLedgerEntry returns the zeroed entry a week has before any payment.
func EmptyLedgerEntry(w WeekWindow) PaymentLedgerEntry {
	return PaymentLedgerEntry{
		WeekStart:   w.Start.Format(DateLayout),
		WeekEnd:     w.End.Format(DateLayout),
		TotalAmount: decimal.Zero,
		AmountPaid:  decimal.Zero,
		AmountDue:   decimal.Zero,
	}
}
