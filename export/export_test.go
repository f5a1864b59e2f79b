package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspay/paytrack/engine"
	"github.com/glasspay/paytrack/export"
)

func sampleDays(t *testing.T) map[string]engine.DayRecord {
	t.Helper()
	cfg := engine.DefaultRateConfig()

	full, err := cfg.Derive("2026-03-10", engine.StatusFull, 3, "", "")
	require.NoError(t, err)
	half, err := cfg.Derive("2026-03-09", engine.StatusHalf, 1, "", "")
	require.NoError(t, err)

	return map[string]engine.DayRecord{
		"2026-03-10": full,
		"2026-03-09": half,
	}
}

func TestWorkData_CSV(t *testing.T) {
	// GIVEN: Two days inserted out of date order
	// THEN: The CSV carries the header row and the days sorted by date

	var buf bytes.Buffer
	require.NoError(t, export.WorkData(&buf, sampleDays(t), export.FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Date", "Work Type", "Hours Worked", "Pay Amount", "Jobs Completed", "Hourly Rate"}, records[0])
	assert.Equal(t, []string{"Mon, Mar 9, 2026", "Half Day", "4.0", "75.00", "1", "18.75"}, records[1])
	assert.Equal(t, []string{"Tue, Mar 10, 2026", "Full Day", "8.0", "150.00", "3", "18.75"}, records[2])
}

func TestWorkData_CSVEmptyStoreIsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WorkData(&buf, nil, export.FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWorkData_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WorkData(&buf, sampleDays(t), export.FormatHTML))

	out := buf.String()
	assert.Contains(t, out, "<title>Work Record")
	assert.Contains(t, out, "Mon, Mar 9, 2026")
	assert.Contains(t, out, "Full Day")
	assert.Contains(t, out, "$150.00")
	assert.True(t, strings.Index(out, "Mar 9") < strings.Index(out, "Mar 10"), "rows sorted by date")
}

func TestWorkData_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := export.WorkData(&buf, nil, export.Format("pdf"))
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func sampleLedger() map[string]engine.PaymentLedgerEntry {
	return map[string]engine.PaymentLedgerEntry{
		"2026-03-09": {
			WeekStart:   "2026-03-09",
			WeekEnd:     "2026-03-15",
			TotalAmount: decimal.RequireFromString("300.00"),
			AmountPaid:  decimal.RequireFromString("100.00"),
			AmountDue:   decimal.RequireFromString("200.00"),
			Notes:       "Added $100.00 on 2026-03-16",
			LastUpdated: time.Date(2026, 3, 16, 14, 5, 0, 0, time.UTC),
		},
		"2026-03-02": {
			WeekStart:   "2026-03-02",
			WeekEnd:     "2026-03-08",
			TotalAmount: decimal.RequireFromString("150.00"),
			AmountPaid:  decimal.RequireFromString("150.00"),
			AmountDue:   decimal.RequireFromString("0.00"),
			LastUpdated: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestPayments_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Payments(&buf, sampleLedger(), export.FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Week Period", "Total Amount", "Amount Paid", "Balance Due", "Payment Status", "Last Updated", "Payment Notes"}, records[0])

	// Oldest week first
	assert.Equal(t, "Mar 2 to Mar 8, 2026", records[1][0])
	assert.Equal(t, "$150.00", records[1][1])
	assert.Equal(t, "Paid in Full", records[1][4])

	assert.Equal(t, "Mar 9 to Mar 15, 2026", records[2][0])
	assert.Equal(t, "Partially Paid", records[2][4])
	assert.Equal(t, "Mar 16, 2026 2:05 PM", records[2][5])
	assert.Equal(t, "Added $100.00 on 2026-03-16", records[2][6])
}

func TestPayments_CSVQuotesMultilineNotes(t *testing.T) {
	// Multi-line audit notes must survive the CSV round trip intact.

	ledger := sampleLedger()
	entry := ledger["2026-03-09"]
	entry.Notes = "paid by bank transfer\nAdded $100.00 on 2026-03-16"
	ledger["2026-03-09"] = entry

	var buf bytes.Buffer
	require.NoError(t, export.Payments(&buf, ledger, export.FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, entry.Notes, records[2][6])
}

func TestPayments_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Payments(&buf, sampleLedger(), export.FormatHTML))

	out := buf.String()
	assert.Contains(t, out, "<title>Payment Record")
	assert.Contains(t, out, "Paid in Full")
	assert.Contains(t, out, "Partially Paid")
	assert.Contains(t, out, "$200.00")
}

func TestFormat_Valid(t *testing.T) {
	assert.True(t, export.FormatCSV.Valid())
	assert.True(t, export.FormatHTML.Valid())
	assert.False(t, export.Format("pdf").Valid())
	assert.False(t, export.Format("").Valid())
}
