/*
derive.go - Day record derivation from a work-status selection

PURPOSE:
  Given a status (full / half / off) and optionally an explicit clock-time
  span, produce the fully derived day record: hours worked, pay amount, and
  the implied hourly rate.

DERIVATION RULES:
  - Pay follows status alone. Custom times change the hours and therefore
    the implied rate, never the pay.
  - No custom times: status default hours (8 / 4 / 0).
  - Custom times: hours come from ElapsedHours; the stored span is the
    source of truth and hours are always recomputed from it.
  - Off clears times and zeroes every derived field regardless of prior
    state.

Rates are configuration, not hardwired business rules: see RateConfig and
the recognized keys fullDayRate / halfDayRate.
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// RATE CONFIG
// =============================================================================

// Recognized configuration keys for the status -> pay lookup.
const (
	ConfigKeyFullDayRate = "fullDayRate"
	ConfigKeyHalfDayRate = "halfDayRate"
)

// RateConfig is the status -> base pay and status -> default hours lookup.
type RateConfig struct {
	FullDayRate  decimal.Decimal
	HalfDayRate  decimal.Decimal
	FullDayHours decimal.Decimal
	HalfDayHours decimal.Decimal
}

// DefaultRateConfig returns the stock rates: $150 / 8h full, $75 / 4h half.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		FullDayRate:  decimal.NewFromInt(150),
		HalfDayRate:  decimal.NewFromInt(75),
		FullDayHours: decimal.NewFromInt(8),
		HalfDayHours: decimal.NewFromInt(4),
	}
}

// basePay returns the pay amount a status earns.
func (c RateConfig) basePay(status WorkStatus) decimal.Decimal {
	switch status {
	case StatusFull:
		return c.FullDayRate
	case StatusHalf:
		return c.HalfDayRate
	default:
		return decimal.Zero
	}
}

// defaultHours returns the hours a status implies when no span is recorded.
func (c RateConfig) defaultHours(status WorkStatus) decimal.Decimal {
	switch status {
	case StatusFull:
		return c.FullDayHours
	case StatusHalf:
		return c.HalfDayHours
	default:
		return decimal.Zero
	}
}

// =============================================================================
// DERIVATION
// =============================================================================

// Derive computes the full day record for one date. start and end are "HH:MM"
// clock times, both set or both empty; when set they drive the hours worked.
// Switching status on a day that carries a span keeps the span-derived hours
// and recomputes the rate against the new pay.
func (c RateConfig) Derive(date string, status WorkStatus, jobs int, start, end string) (DayRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return DayRecord{}, err
	}
	if !status.Valid() {
		return DayRecord{}, ErrInvalidWorkStatus
	}
	if jobs < 0 {
		return DayRecord{}, ErrNegativeJobs
	}

	// Off wipes the slate: no hours, no pay, no jobs, no times.
	if status == StatusOff {
		return OffDay(date), nil
	}

	pay := RoundCurrency(c.basePay(status))

	var hours decimal.Decimal
	custom := start != "" && end != ""
	if custom {
		var err error
		hours, err = ElapsedHours(start, end)
		if err != nil {
			return DayRecord{}, err
		}
	} else {
		// A half-set span is treated as no span.
		start, end = "", ""
		hours = RoundHours(c.defaultHours(status))
	}

	var rate decimal.Decimal
	if hours.IsPositive() {
		rate = RoundCurrency(pay.Div(hours))
	} else {
		rate = decimal.Zero
	}

	return DayRecord{
		Date:          date,
		WorkStatus:    status,
		JobsCompleted: jobs,
		HoursWorked:   hours,
		PayAmount:     pay,
		HourlyRate:    rate,
		StartTime:     start,
		EndTime:       end,
	}, nil
}

// Rederive recomputes a record's derived fields from its own inputs. Useful
// after rate configuration changes: the stored status, jobs, and span are
// authoritative, everything else is recomputed.
func (c RateConfig) Rederive(rec DayRecord) (DayRecord, error) {
	return c.Derive(rec.Date, rec.WorkStatus, rec.JobsCompleted, rec.StartTime, rec.EndTime)
}
