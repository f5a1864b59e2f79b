/*
reconcile.go - Payment reconciliation against a week's earnings

PURPOSE:
  Applies a new payment to a week's ledger entry. Paid amounts accumulate
  across repeated partial payments; the amount due is recomputed from the
  live weekly summary every time and floors at zero, so overpayment never
  produces a negative balance.

RETRY SAFETY:
  Applying a zero payment is a monetary no-op: paid, due, and total come out
  byte-identical, only the note text and timestamp may move. A host whose
  persistence write failed can therefore re-derive and retry without
  double-counting.

NOTE POLICY:
  Every positive payment appends an auto-generated audit line ("Added $X on
  <date>") to the notes, first payment included. User-supplied note text is
  applied as the new base text either way; a zero payment appends no audit
  line.
*/
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPayment returns the updated ledger entry after recording a payment of
// amount against the week. The existing entry may be the zero value (or
// EmptyLedgerEntry) for a week's first payment. summary must be the live
// summary for the window; the entry's stored TotalAmount is only a cache and
// is refreshed from it. notes is the user-supplied note text that replaces
// the entry's free text; the audit line is appended after it.
//
// Negative amounts are rejected with ErrNegativePayment.
func ApplyPayment(entry PaymentLedgerEntry, w WeekWindow, summary WeeklySummary, amount decimal.Decimal, notes string, now time.Time) (PaymentLedgerEntry, error) {
	if amount.IsNegative() {
		return PaymentLedgerEntry{}, ErrNegativePayment
	}

	amount = RoundCurrency(amount)
	paid := RoundCurrency(RoundCurrency(entry.AmountPaid).Add(amount))
	total := RoundCurrency(summary.TotalPay)

	due := RoundCurrency(total.Sub(paid))
	if due.IsNegative() {
		due = decimal.Zero
	}

	if amount.IsPositive() {
		if notes != "" {
			notes += "\n"
		}
		notes += fmt.Sprintf("Added $%s on %s", amount.StringFixed(2), now.Format(DateLayout))
	}

	return PaymentLedgerEntry{
		WeekStart:   w.Start.Format(DateLayout),
		WeekEnd:     w.End.Format(DateLayout),
		TotalAmount: total,
		AmountPaid:  paid,
		AmountDue:   due,
		Notes:       notes,
		LastUpdated: now,
	}, nil
}

// RefreshLedgerEntry recomputes an entry's cached totals from the live
// summary without recording a payment. Used when a week is viewed after its
// day records changed.
func RefreshLedgerEntry(entry PaymentLedgerEntry, w WeekWindow, summary WeeklySummary) PaymentLedgerEntry {
	total := RoundCurrency(summary.TotalPay)
	paid := RoundCurrency(entry.AmountPaid)

	due := RoundCurrency(total.Sub(paid))
	if due.IsNegative() {
		due = decimal.Zero
	}

	entry.WeekStart = w.Start.Format(DateLayout)
	entry.WeekEnd = w.End.Format(DateLayout)
	entry.TotalAmount = total
	entry.AmountPaid = paid
	entry.AmountDue = due
	return entry
}
