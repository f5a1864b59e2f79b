/*
week.go - Canonical week window resolution

PURPOSE:
  Computes the Monday-through-Sunday window containing any calendar date.
  Weeks follow ISO 8601: Monday is day 1, Sunday day 7, so a Sunday maps to
  the Monday six days earlier, never the day after.

The resolution is a pure function of year/month/day/weekday. WeekOf applied
to its own Start is a fixed point.
*/
package engine

import "time"

// DateLayout is the ISO date format every store key uses.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &DateError{Value: s}
	}
	return t, nil
}

// WeekOf returns the week window containing t: Monday 00:00:00.000 through
// Sunday 23:59:59.999 in t's location.
func WeekOf(t time.Time) WeekWindow {
	// Go's weekday numbers Sunday as 0; ISO wants it as 7.
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}

	monday := t.AddDate(0, 0, -(wd - 1))
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())

	sunday := start.AddDate(0, 0, 6)
	end := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, int(999*time.Millisecond), sunday.Location())

	return WeekWindow{Start: start, End: end}
}

// WeekOfDate resolves the window for an ISO date key.
func WeekOfDate(date string) (WeekWindow, error) {
	t, err := ParseDate(date)
	if err != nil {
		return WeekWindow{}, err
	}
	return WeekOf(t), nil
}
