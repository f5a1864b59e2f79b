package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspay/paytrack/engine"
)

func mustDerive(t *testing.T, date string, status engine.WorkStatus, jobs int) engine.DayRecord {
	t.Helper()
	rec, err := engine.DefaultRateConfig().Derive(date, status, jobs, "", "")
	require.NoError(t, err)
	return rec
}

func TestWeekData_FillsMissingDaysAsOff(t *testing.T) {
	// GIVEN: A week with records on Monday and Wednesday only
	// THEN: WeekData returns all seven days, the gaps synthesized as Off

	days := map[string]engine.DayRecord{
		"2026-03-09": mustDerive(t, "2026-03-09", engine.StatusFull, 2),
		"2026-03-11": mustDerive(t, "2026-03-11", engine.StatusHalf, 1),
	}
	w, err := engine.WeekOfDate("2026-03-09")
	require.NoError(t, err)

	seq := engine.WeekData(days, w)
	require.Len(t, seq, engine.DaysPerWeek)

	assert.Equal(t, "2026-03-09", seq[0].Date)
	assert.Equal(t, engine.StatusFull, seq[0].WorkStatus)
	assert.Equal(t, engine.StatusOff, seq[1].WorkStatus)
	assert.Equal(t, engine.StatusHalf, seq[2].WorkStatus)
	assert.Equal(t, "2026-03-15", seq[6].Date)
	assert.Equal(t, engine.StatusOff, seq[6].WorkStatus)
}

func TestWeekData_DoesNotMutateInput(t *testing.T) {
	days := map[string]engine.DayRecord{
		"2026-03-09": mustDerive(t, "2026-03-09", engine.StatusFull, 0),
	}
	w, err := engine.WeekOfDate("2026-03-09")
	require.NoError(t, err)

	engine.WeekData(days, w)
	assert.Len(t, days, 1)
}

func TestSummarize_TwoFullDays(t *testing.T) {
	// GIVEN: Two full days and five implied off days
	// THEN: 16.0 hours, $300.00, 18.75 average rate

	days := map[string]engine.DayRecord{
		"2026-03-09": mustDerive(t, "2026-03-09", engine.StatusFull, 2),
		"2026-03-10": mustDerive(t, "2026-03-10", engine.StatusFull, 3),
	}
	w, err := engine.WeekOfDate("2026-03-09")
	require.NoError(t, err)

	s := engine.SummarizeWeek(days, w)
	assert.Equal(t, "16.0", s.TotalHours.StringFixed(1))
	assert.Equal(t, "300.00", s.TotalPay.StringFixed(2))
	assert.Equal(t, 5, s.TotalJobs)
	assert.Equal(t, "18.75", s.AvgHourlyRate.StringFixed(2))
}

func TestSummarize_EmptyWeekIsAllZero(t *testing.T) {
	w, err := engine.WeekOfDate("2026-03-09")
	require.NoError(t, err)

	s := engine.SummarizeWeek(map[string]engine.DayRecord{}, w)
	assert.True(t, s.TotalHours.IsZero())
	assert.True(t, s.TotalPay.IsZero())
	assert.Zero(t, s.TotalJobs)
	assert.True(t, s.AvgHourlyRate.IsZero())
}

func TestSummarize_ReRoundsEveryPartialSum(t *testing.T) {
	// GIVEN: Three records each carrying 1.04 raw hours
	// WHEN: Summed with per-step re-rounding
	// THEN: Each addend first rounds to 1.0, so the total is 3.0 rather
	//       than the 3.1 a round-at-the-end sum of 3.12 would give

	raw := decimal.RequireFromString("1.04")
	rec := func(date string) engine.DayRecord {
		return engine.DayRecord{
			Date:        date,
			WorkStatus:  engine.StatusFull,
			HoursWorked: raw,
			PayAmount:   decimal.NewFromInt(150),
		}
	}
	days := []engine.DayRecord{rec("2026-03-09"), rec("2026-03-10"), rec("2026-03-11")}

	s := engine.Summarize(days)
	assert.Equal(t, "3.0", s.TotalHours.StringFixed(1))
}

func TestSummarize_AverageRateIsReRoundedQuotient(t *testing.T) {
	// A half day alone: 75 / 4 = 18.75 exactly; a 10-hour full day alone:
	// 150 / 10 = 15.00. Mixed, the average is pay over hours of the week,
	// not an average of per-day rates.

	cfg := engine.DefaultRateConfig()
	long, err := cfg.Derive("2026-03-09", engine.StatusFull, 0, "09:00", "19:00")
	require.NoError(t, err)
	half := mustDerive(t, "2026-03-10", engine.StatusHalf, 0)

	s := engine.Summarize([]engine.DayRecord{long, half})
	assert.Equal(t, "14.0", s.TotalHours.StringFixed(1))
	assert.Equal(t, "225.00", s.TotalPay.StringFixed(2))
	assert.Equal(t, "16.07", s.AvgHourlyRate.StringFixed(2))
}
