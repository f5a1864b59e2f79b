/*
aggregate.go - Weekly aggregation over day records

PURPOSE:
  Produces the ordered 7-day sequence for a week window and reduces it into
  the weekly summary. Days without a record are synthesized as Off rather
  than omitted, so the sequence always has exactly seven elements.

ROUNDING:
  Every partial sum is re-rounded (hours to 1 decimal, pay to 2) at each
  accumulation step, not just at the end. This matches the persisted data,
  which is itself pre-rounded, and keeps floating drift from hiding inside
  intermediate sums. Jobs are an exact integer sum.
*/
package engine

import "github.com/shopspring/decimal"

// DaysPerWeek is the length of every sequence WeekData returns.
const DaysPerWeek = 7

// WeekData returns one DayRecord per calendar day of the window, in date
// order. The input mapping is read, never mutated; missing dates become
// Off days.
func WeekData(days map[string]DayRecord, w WeekWindow) []DayRecord {
	out := make([]DayRecord, 0, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		key := w.Start.AddDate(0, 0, d).Format(DateLayout)
		rec, ok := days[key]
		if !ok {
			rec = OffDay(key)
		} else {
			rec.Date = key // the mapping key is canonical
		}
		out = append(out, rec)
	}
	return out
}

// Summarize reduces a day sequence into the weekly summary. Partial sums are
// re-rounded at every step; the average rate is pay over hours, rounded to
// currency precision, or zero for a workless week.
func Summarize(days []DayRecord) WeeklySummary {
	s := WeeklySummary{
		TotalHours: decimal.Zero,
		TotalPay:   decimal.Zero,
	}

	for _, day := range days {
		s.TotalHours = RoundHours(s.TotalHours.Add(RoundHours(day.HoursWorked)))
		s.TotalPay = RoundCurrency(s.TotalPay.Add(RoundCurrency(day.PayAmount)))
		s.TotalJobs += day.JobsCompleted
	}

	if s.TotalHours.IsPositive() {
		s.AvgHourlyRate = RoundCurrency(s.TotalPay.Div(s.TotalHours))
	} else {
		s.AvgHourlyRate = decimal.Zero
	}
	return s
}

// SummarizeWeek is the common composition: resolve the window's day sequence
// and reduce it in one step.
func SummarizeWeek(days map[string]DayRecord, w WeekWindow) WeeklySummary {
	return Summarize(WeekData(days, w))
}
