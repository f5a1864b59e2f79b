package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspay/paytrack/engine"
)

func paidWeek(t *testing.T) (engine.WeekWindow, engine.WeeklySummary) {
	t.Helper()
	w, err := engine.WeekOfDate("2026-03-09")
	require.NoError(t, err)
	return w, engine.WeeklySummary{
		TotalHours: decimal.RequireFromString("16.0"),
		TotalPay:   decimal.NewFromInt(300),
	}
}

func TestApplyPayment_FirstPartialPayment(t *testing.T) {
	// GIVEN: A week owing $300 with no ledger entry yet
	// WHEN: $100 is recorded
	// THEN: Paid 100, due 200, and the audit line is appended

	w, summary := paidWeek(t)
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(100), "", now)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-09", entry.WeekStart)
	assert.Equal(t, "2026-03-15", entry.WeekEnd)
	assert.Equal(t, "300.00", entry.TotalAmount.StringFixed(2))
	assert.Equal(t, "100.00", entry.AmountPaid.StringFixed(2))
	assert.Equal(t, "200.00", entry.AmountDue.StringFixed(2))
	assert.Equal(t, "Added $100.00 on 2026-03-16", entry.Notes)
	assert.True(t, entry.LastUpdated.Equal(now))
}

func TestApplyPayment_PaymentsAccumulate(t *testing.T) {
	// GIVEN: $100 then $250 against a $300 week
	// THEN: Paid accumulates to 350 and due floors at zero

	w, summary := paidWeek(t)
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(100), "", now)
	require.NoError(t, err)
	entry, err = engine.ApplyPayment(entry, w, summary, decimal.NewFromInt(250), entry.Notes, now.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "350.00", entry.AmountPaid.StringFixed(2))
	assert.Equal(t, "0.00", entry.AmountDue.StringFixed(2))
	assert.Equal(t, "Added $100.00 on 2026-03-16\nAdded $250.00 on 2026-03-17", entry.Notes)
}

func TestApplyPayment_ZeroIsMonetaryNoOp(t *testing.T) {
	// A zero payment must leave paid/due/total untouched and append no audit
	// line, so a failed persistence write can be retried safely.

	w, summary := paidWeek(t)
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(120), "", now)
	require.NoError(t, err)

	again, err := engine.ApplyPayment(entry, w, summary, decimal.Zero, entry.Notes, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, entry.AmountPaid.StringFixed(2), again.AmountPaid.StringFixed(2))
	assert.Equal(t, entry.AmountDue.StringFixed(2), again.AmountDue.StringFixed(2))
	assert.Equal(t, entry.TotalAmount.StringFixed(2), again.TotalAmount.StringFixed(2))
	assert.Equal(t, entry.Notes, again.Notes)
}

func TestApplyPayment_RejectsNegativeAmount(t *testing.T) {
	w, summary := paidWeek(t)

	_, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(-50), "", time.Now())
	assert.ErrorIs(t, err, engine.ErrNegativePayment)
}

func TestApplyPayment_UserNotesPrecedeAuditLine(t *testing.T) {
	w, summary := paidWeek(t)
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(50), "paid by bank transfer", now)
	require.NoError(t, err)

	assert.Equal(t, "paid by bank transfer\nAdded $50.00 on 2026-03-16", entry.Notes)
}

func TestApplyPayment_AmountRoundsHalfUp(t *testing.T) {
	w, summary := paidWeek(t)

	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.RequireFromString("99.995"), "", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "100.00", entry.AmountPaid.StringFixed(2))
}

func TestRefreshLedgerEntry_TracksLiveTotals(t *testing.T) {
	// GIVEN: A ledger entry cached against an older, smaller total
	// WHEN: Refreshed against a summary that grew to $450
	// THEN: Total and due follow the live summary; paid is untouched

	w, summary := paidWeek(t)
	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(300), "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "0.00", entry.AmountDue.StringFixed(2))

	grown := engine.WeeklySummary{TotalPay: decimal.NewFromInt(450)}
	entry = engine.RefreshLedgerEntry(entry, w, grown)

	assert.Equal(t, "450.00", entry.TotalAmount.StringFixed(2))
	assert.Equal(t, "300.00", entry.AmountPaid.StringFixed(2))
	assert.Equal(t, "150.00", entry.AmountDue.StringFixed(2))
}

func TestRefreshLedgerEntry_OverpaidWeekFloorsAtZero(t *testing.T) {
	w, summary := paidWeek(t)
	entry, err := engine.ApplyPayment(engine.EmptyLedgerEntry(w), w, summary, decimal.NewFromInt(400), "", time.Now())
	require.NoError(t, err)

	shrunk := engine.WeeklySummary{TotalPay: decimal.NewFromInt(150)}
	entry = engine.RefreshLedgerEntry(entry, w, shrunk)

	assert.Equal(t, "0.00", entry.AmountDue.StringFixed(2))
}
