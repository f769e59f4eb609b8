package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/generic"
)

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

// =============================================================================
// SPAN TESTS
// =============================================================================

func TestSpanInclusive(t *testing.T) {
	cases := []struct {
		name     string
		from, to generic.TimePoint
		want     generic.Span
	}{
		{"years months days", date(2023, time.January, 1), date(2025, time.April, 10), generic.Span{Years: 2, Months: 3, Days: 10}},
		{"closes a full semester", date(2024, time.November, 1), date(2025, time.April, 30), generic.Span{Months: 6}},
		{"same day counts as one day", date(2025, time.May, 1), date(2025, time.May, 1), generic.Span{Days: 1}},
		{"month end clamping", date(2025, time.January, 31), date(2025, time.February, 28), generic.Span{Months: 1, Days: 1}},
		{"full year", date(2024, time.March, 15), date(2025, time.March, 14), generic.Span{Years: 1}},
		{"leap day hire clamps to Feb 28", date(2024, time.February, 29), date(2025, time.February, 27), generic.Span{Years: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := generic.SpanInclusive(tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSpanInclusive_RejectsReversedDates(t *testing.T) {
	_, err := generic.SpanInclusive(date(2025, time.June, 1), date(2025, time.May, 31))

	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrInvalidPeriod))
	assert.True(t, generic.IsClientError(err))

	var periodErr *generic.InvalidPeriodError
	require.ErrorAs(t, err, &periodErr)
	assert.Equal(t, "2025-05-31", periodErr.End.String())
}

func TestSpan_TotalMonths(t *testing.T) {
	assert.Equal(t, 27, generic.Span{Years: 2, Months: 3, Days: 10}.TotalMonths())
}

// =============================================================================
// PERIOD TESTS
// =============================================================================

func TestPeriodFor_Semester(t *testing.T) {
	gratuity := generic.PeriodConfig{Type: generic.PeriodSemester, StartMonth: time.January}
	deposit := generic.PeriodConfig{Type: generic.PeriodSemester, StartMonth: time.May}

	cases := []struct {
		name   string
		config generic.PeriodConfig
		at     generic.TimePoint
		start  string
		end    string
	}{
		{"first gratuity semester", gratuity, date(2025, time.March, 15), "2025-01-01", "2025-06-30"},
		{"second gratuity semester", gratuity, date(2025, time.August, 2), "2025-07-01", "2025-12-31"},
		{"deposit semester from May", deposit, date(2025, time.October, 31), "2025-05-01", "2025-10-31"},
		{"deposit semester from November", deposit, date(2025, time.December, 1), "2025-11-01", "2026-04-30"},
		{"deposit semester crossing the year", deposit, date(2025, time.March, 10), "2024-11-01", "2025-04-30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.config.PeriodFor(tc.at)
			assert.Equal(t, tc.start, p.Start.String())
			assert.Equal(t, tc.end, p.End.String())
			assert.True(t, p.Contains(tc.at))
		})
	}
}

func TestPeriodFor_Anniversary(t *testing.T) {
	hire := date(2021, time.September, 20)
	config := generic.PeriodConfig{Type: generic.PeriodAnniversary, AnchorDate: &hire}

	before := config.PeriodFor(date(2025, time.September, 19))
	assert.Equal(t, "2024-09-20", before.Start.String())
	assert.Equal(t, "2025-09-19", before.End.String())

	on := config.PeriodFor(date(2025, time.September, 20))
	assert.Equal(t, "2025-09-20", on.Start.String())
}

func TestAddMonthsClamped(t *testing.T) {
	assert.Equal(t, "2025-02-28", date(2025, time.January, 31).AddMonthsClamped(1).String())
	assert.Equal(t, "2024-02-29", date(2024, time.January, 31).AddMonthsClamped(1).String())
	assert.Equal(t, "2025-02-28", date(2024, time.February, 29).AddYearsClamped(1).String())
	assert.Equal(t, "2024-11-30", date(2025, time.May, 31).AddMonthsClamped(-6).String())
}

func TestParseDate(t *testing.T) {
	d, err := generic.ParseDate("2025-04-10")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 10), d)

	_, err = generic.ParseDate("10/04/2025")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

// =============================================================================
// MONEY TESTS
// =============================================================================

func TestFloor0AndRatio(t *testing.T) {
	assert.True(t, generic.Floor0(generic.Money(-12.5)).IsZero())
	assert.Equal(t, "12.5", generic.Floor0(generic.Money(12.5)).String())

	assert.True(t, generic.Ratio(generic.Money(10), generic.Money(0)).IsZero())
	assert.Equal(t, "0.25", generic.Ratio(generic.Money(1), generic.Money(4)).String())
	assert.Equal(t, "6", generic.Sum(generic.Money(1), generic.Money(2), generic.Money(3)).String())
}
