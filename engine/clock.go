/*
clock.go - Elapsed hours between two clock times

PURPOSE:
  Converts a (start, end) pair of "HH:MM" clock times into decimal hours.
  A span whose end reads earlier than its start is taken to cross midnight:
  22:00 to 02:00 is four hours, not minus twenty.

EDGE CASES:
  - Either time empty: 0 hours (no span recorded)
  - start == end: 0 hours, a same-day zero-length span, never 24
  - end < start: overnight, (1440 - start) + end minutes

Results carry one decimal place, rounded half up.
*/
package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// ElapsedHours returns the hours between two "HH:MM" clock times with
// 1-decimal precision. Empty inputs yield zero; malformed inputs are
// rejected with ErrInvalidClockTime.
func ElapsedHours(start, end string) (decimal.Decimal, error) {
	if start == "" || end == "" {
		return decimal.Zero, nil
	}

	startMin, err := parseClockMinutes(start)
	if err != nil {
		return decimal.Zero, err
	}
	endMin, err := parseClockMinutes(end)
	if err != nil {
		return decimal.Zero, err
	}

	var diff int
	if endMin >= startMin {
		diff = endMin - startMin
	} else {
		// End is on the next day.
		diff = (minutesPerDay - startMin) + endMin
	}

	return RoundHours(decimal.NewFromInt(int64(diff)).Div(sixty)), nil
}

// parseClockMinutes parses "HH:MM" into minutes since midnight.
func parseClockMinutes(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, &ClockTimeError{Value: s}
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, &ClockTimeError{Value: s}
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, &ClockTimeError{Value: s}
	}
	return hour*60 + minute, nil
}
