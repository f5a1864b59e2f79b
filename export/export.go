/*
Package export formats day records and payment ledger entries as CSV or HTML.

PURPOSE:
  The serialization end of the pipeline. Everything handed to this package
  is already fully derived and rounded, so exporters only format — they
  never compute. Column sets and labels follow the printable reports the
  tracker has always produced: readable dates, Full Day / Half Day / Day Off
  labels, and Paid in Full / Partially Paid / Unpaid payment statuses.

FORMATS:
  FormatCSV:  RFC 4180 CSV via encoding/csv
  FormatHTML: A self-contained printable document via html/template

SEE ALSO:
  - engine/types.go: The shapes being exported
*/
package export

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/glasspay/paytrack/engine"
)

// Format selects the output serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned for a format tag outside {csv, html}.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// Valid reports whether f is a supported format tag.
func (f Format) Valid() bool { return f == FormatCSV || f == FormatHTML }

const (
	displayDate      = "Mon, Jan 2, 2006"
	displayShortDate = "Jan 2"
	displayLongDate  = "Jan 2, 2006"
)

// =============================================================================
// WORK RECORD EXPORT
// =============================================================================

var workColumns = []string{"Date", "Work Type", "Hours Worked", "Pay Amount", "Jobs Completed", "Hourly Rate"}

type workRow struct {
	Date       string
	WorkType   string
	Hours      string
	Pay        string
	Jobs       string
	HourlyRate string
}

// WorkData writes every day record, in date order, to w in the requested
// format.
func WorkData(w io.Writer, days map[string]engine.DayRecord, f Format) error {
	records := sortedDays(days)

	rows := make([]workRow, len(records))
	for i, rec := range records {
		rows[i] = workRow{
			Date:       displayDateKey(rec.Date),
			WorkType:   statusLabel(rec.WorkStatus),
			Hours:      rec.HoursWorked.StringFixed(1),
			Pay:        rec.PayAmount.StringFixed(2),
			Jobs:       fmt.Sprintf("%d", rec.JobsCompleted),
			HourlyRate: rec.HourlyRate.StringFixed(2),
		}
	}

	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(workColumns); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.Date, r.WorkType, r.Hours, r.Pay, r.Jobs, r.HourlyRate}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatHTML:
		return workHTMLTemplate.Execute(w, map[string]any{
			"Title":     "Work Record",
			"DateRange": dayDateRange(records),
			"Rows":      rows,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// =============================================================================
// PAYMENT LEDGER EXPORT
// =============================================================================

var paymentColumns = []string{"Week Period", "Total Amount", "Amount Paid", "Balance Due", "Payment Status", "Last Updated", "Payment Notes"}

type paymentRow struct {
	WeekPeriod  string
	Total       string
	Paid        string
	Due         string
	Status      string
	LastUpdated string
	Notes       string
}

// Payments writes every ledger entry, oldest week first, to w in the
// requested format.
func Payments(w io.Writer, ledger map[string]engine.PaymentLedgerEntry, f Format) error {
	entries := sortedLedger(ledger)

	rows := make([]paymentRow, len(entries))
	for i, entry := range entries {
		updated := ""
		if !entry.LastUpdated.IsZero() {
			updated = entry.LastUpdated.Format("Jan 2, 2006 3:04 PM")
		}
		rows[i] = paymentRow{
			WeekPeriod:  weekPeriod(entry),
			Total:       "$" + entry.TotalAmount.StringFixed(2),
			Paid:        "$" + entry.AmountPaid.StringFixed(2),
			Due:         "$" + entry.AmountDue.StringFixed(2),
			Status:      paymentStatusLabel(entry),
			LastUpdated: updated,
			Notes:       entry.Notes,
		}
	}

	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(paymentColumns); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.WeekPeriod, r.Total, r.Paid, r.Due, r.Status, r.LastUpdated, r.Notes}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatHTML:
		return paymentHTMLTemplate.Execute(w, map[string]any{
			"Title":     "Payment Record",
			"DateRange": ledgerDateRange(entries),
			"Rows":      rows,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// =============================================================================
// ROW PREPARATION
// =============================================================================

func sortedDays(days map[string]engine.DayRecord) []engine.DayRecord {
	out := make([]engine.DayRecord, 0, len(days))
	for _, rec := range days {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func sortedLedger(ledger map[string]engine.PaymentLedgerEntry) []engine.PaymentLedgerEntry {
	out := make([]engine.PaymentLedgerEntry, 0, len(ledger))
	for _, entry := range ledger {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

func statusLabel(s engine.WorkStatus) string {
	switch s {
	case engine.StatusFull:
		return "Full Day"
	case engine.StatusHalf:
		return "Half Day"
	default:
		return "Day Off"
	}
}

func paymentStatusLabel(entry engine.PaymentLedgerEntry) string {
	switch engine.ClassifyPayment(entry.AmountPaid, entry.TotalAmount) {
	case engine.PaymentPaid:
		return "Paid in Full"
	case engine.PaymentPartial:
		return "Partially Paid"
	default:
		return "Unpaid"
	}
}

func displayDateKey(date string) string {
	t, err := engine.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(displayDate)
}

func weekPeriod(entry engine.PaymentLedgerEntry) string {
	start, err1 := engine.ParseDate(entry.WeekStart)
	end, err2 := engine.ParseDate(entry.WeekEnd)
	if err1 != nil || err2 != nil {
		return entry.WeekStart + " to " + entry.WeekEnd
	}
	return start.Format(displayShortDate) + " to " + end.Format(displayLongDate)
}

func dayDateRange(records []engine.DayRecord) string {
	if len(records) == 0 {
		return ""
	}
	first, err1 := engine.ParseDate(records[0].Date)
	last, err2 := engine.ParseDate(records[len(records)-1].Date)
	if err1 != nil || err2 != nil {
		return ""
	}
	return formatRange(first, last)
}

func ledgerDateRange(entries []engine.PaymentLedgerEntry) string {
	if len(entries) == 0 {
		return ""
	}
	first, err1 := engine.ParseDate(entries[0].WeekStart)
	last, err2 := engine.ParseDate(entries[len(entries)-1].WeekEnd)
	if err1 != nil || err2 != nil {
		return ""
	}
	return formatRange(first, last)
}

func formatRange(first, last time.Time) string {
	return first.Format(displayShortDate) + " to " + last.Format(displayLongDate)
}

// =============================================================================
// HTML TEMPLATES
// =============================================================================

var workHTMLTemplate = template.Must(template.New("work").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}{{if .DateRange}} — {{.DateRange}}{{end}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 16px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f3f3f3; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .DateRange}}<p>{{.DateRange}}</p>{{end}}
<table>
<tr><th>Date</th><th>Work Type</th><th>Hours Worked</th><th>Pay Amount</th><th>Jobs Completed</th><th>Hourly Rate</th></tr>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.WorkType}}</td><td>{{.Hours}}</td><td>${{.Pay}}</td><td>{{.Jobs}}</td><td>${{.HourlyRate}}/hr</td></tr>
{{end}}</table>
</body>
</html>
`))

var paymentHTMLTemplate = template.Must(template.New("payments").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}{{if .DateRange}} — {{.DateRange}}{{end}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 16px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f3f3f3; }
td.notes { white-space: pre-line; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .DateRange}}<p>{{.DateRange}}</p>{{end}}
<table>
<tr><th>Week Period</th><th>Total Amount</th><th>Amount Paid</th><th>Balance Due</th><th>Payment Status</th><th>Last Updated</th><th>Payment Notes</th></tr>
{{range .Rows}}<tr><td>{{.WeekPeriod}}</td><td>{{.Total}}</td><td>{{.Paid}}</td><td>{{.Due}}</td><td>{{.Status}}</td><td>{{.LastUpdated}}</td><td class="notes">{{.Notes}}</td></tr>
{{end}}</table>
</body>
</html>
`))
