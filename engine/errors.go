/*
errors.go - Centralized error types for the derivation core

PURPOSE:
  All error types in one place for consistency and discoverability.
  Malformed input is a caller-contract violation at the UI boundary, but the
  core rejects it explicitly rather than deriving nonsense values.

ERROR CATEGORIES:
  1. Parse errors - Unparseable clock times and dates
  2. Validation errors - Negative payments, negative jobs, unknown statuses

Missing data is never an error here: an absent day record is a well-defined
Off day, an absent ledger entry a zeroed one.

USAGE:
  if errors.Is(err, engine.ErrInvalidClockTime) { ... }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidClockTime is returned when a clock time string is not "HH:MM"
	// within a 24-hour clock.
	ErrInvalidClockTime = errors.New("invalid clock time")

	// ErrInvalidDate is returned when a date string is not ISO YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidWorkStatus is returned for a status outside {full, half, off}.
	ErrInvalidWorkStatus = errors.New("invalid work status")

	// ErrNegativeJobs is returned when a jobs-completed count is negative.
	ErrNegativeJobs = errors.New("jobs completed cannot be negative")

	// ErrNegativePayment is returned when a payment amount is negative.
	// Overpayment is allowed (due floors at zero); clawbacks are not.
	ErrNegativePayment = errors.New("payment amount cannot be negative")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ClockTimeError reports which value failed to parse.
type ClockTimeError struct {
	Value string
}

func (e *ClockTimeError) Error() string {
	return fmt.Sprintf("invalid clock time %q: want HH:MM", e.Value)
}

func (e *ClockTimeError) Unwrap() error { return ErrInvalidClockTime }

// DateError reports which date key failed to parse.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", e.Value)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidClockTime) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidWorkStatus) ||
		errors.Is(err, ErrNegativeJobs) ||
		errors.Is(err, ErrNegativePayment)
}
