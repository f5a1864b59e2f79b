/*
history.go - Historical week index

PURPOSE:
  Scans the full day-record store, groups records by the week they fall
  into, and produces a browsable index of week summaries annotated with
  payment status, most recent week first. Entirely read-only over both
  input stores.
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYMENT STATUS
// =============================================================================

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ClassifyPayment buckets a paid amount against a total. Nothing paid is
// unpaid even when nothing is owed; paid in full requires covering the total.
func ClassifyPayment(amountPaid, totalAmount decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.IsZero():
		return PaymentUnpaid
	case amountPaid.GreaterThanOrEqual(totalAmount):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// =============================================================================
// HISTORY INDEX
// =============================================================================

// WeekHistoryEntry is one row of the browsable history: a week's summary
// plus its payment standing.
type WeekHistoryEntry struct {
	WeekID      string // ISO date of the Monday
	Window      WeekWindow
	Summary     WeeklySummary
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	Status      PaymentStatus
}

// BuildIndex groups every day record by its week and returns one entry per
// unique week, descending by week start. Weeks without a ledger entry
// default to nothing paid against the summary's total. Date keys that do
// not parse are skipped; a malformed key cannot be assigned to any week.
func BuildIndex(days map[string]DayRecord, ledger map[string]PaymentLedgerEntry) []WeekHistoryEntry {
	windows := make(map[string]WeekWindow)
	for date := range days {
		t, err := ParseDate(date)
		if err != nil {
			continue
		}
		w := WeekOf(t)
		windows[w.ID()] = w
	}

	index := make([]WeekHistoryEntry, 0, len(windows))
	for id, w := range windows {
		summary := SummarizeWeek(days, w)

		paid := decimal.Zero
		total := RoundCurrency(summary.TotalPay)
		if entry, ok := ledger[id]; ok {
			paid = RoundCurrency(entry.AmountPaid)
		}

		index = append(index, WeekHistoryEntry{
			WeekID:      id,
			Window:      w,
			Summary:     summary,
			TotalAmount: total,
			AmountPaid:  paid,
			Status:      ClassifyPayment(paid, total),
		})
	}

	// Most recent week first. Week IDs are unique per group, so the order
	// is total.
	sort.Slice(index, func(i, j int) bool {
		return index[i].WeekID > index[j].WeekID
	})
	return index
}
