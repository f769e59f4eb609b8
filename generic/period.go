package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - The accrual window a benefit is computed for
// =============================================================================

// Period is an inclusive date range [Start, End].
//
// Examples:
//   - Calendar year 2025: Jan 1 - Dec 31
//   - Gratuity semester: Jan 1 - Jun 30 or Jul 1 - Dec 31
//   - Severance-fund deposit semester: May 1 - Oct 31 or Nov 1 - Apr 30
//   - Vacation year: hire anniversary + 1 year
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// PeriodType defines how periods are calculated
type PeriodType string

const (
	PeriodCalendarYear PeriodType = "calendar_year" // Jan 1 - Dec 31
	PeriodSemester     PeriodType = "semester"      // Six months from StartMonth
	PeriodAnniversary  PeriodType = "anniversary"   // Based on hire date
)

// PeriodConfig defines how to calculate periods for a benefit
type PeriodConfig struct {
	Type PeriodType

	// For semester: the month one of the two semesters starts on (1-12)
	StartMonth time.Month

	// For anniversary: the anchor date (e.g., hire date)
	AnchorDate *TimePoint
}

// =============================================================================
// PERIOD CALCULATOR - Determines which period a date falls into
// =============================================================================

// PeriodFor returns the period that contains the given date
func (pc PeriodConfig) PeriodFor(date TimePoint) Period {
	switch pc.Type {
	case PeriodSemester:
		return pc.semesterPeriod(date)

	case PeriodAnniversary:
		if pc.AnchorDate == nil {
			return Period{Start: StartOfYear(date.Year()), End: EndOfYear(date.Year())}
		}
		return pc.anniversaryPeriod(date)

	default:
		return Period{Start: StartOfYear(date.Year()), End: EndOfYear(date.Year())}
	}
}

func (pc PeriodConfig) semesterPeriod(date TimePoint) Period {
	startMonth := pc.StartMonth
	if startMonth < time.January || startMonth > time.December {
		startMonth = time.January
	}

	// Months elapsed since the most recent semester boundary
	offset := (int(date.Month()) - int(startMonth) + 12) % 12 % 6

	start := StartOfMonth(date.Year(), date.Month()).AddMonths(-offset)
	end := start.AddMonths(6).AddDays(-1)
	return Period{Start: start, End: end}
}

func (pc PeriodConfig) anniversaryPeriod(date TimePoint) Period {
	anchor := *pc.AnchorDate

	// Find which anniversary year we're in
	yearsElapsed := date.Year() - anchor.Year()
	anniversary := anchor.AddYearsClamped(yearsElapsed)

	// If date is before this year's anniversary, we're in previous period
	if date.Before(anniversary) {
		yearsElapsed--
		anniversary = anchor.AddYearsClamped(yearsElapsed)
	}

	periodEnd := anchor.AddYearsClamped(yearsElapsed + 1).AddDays(-1)
	return Period{Start: anniversary, End: periodEnd}
}

// =============================================================================
// SPAN - Elapsed service time between two dates
// =============================================================================

// Span is an elapsed time in whole years, whole months and residual days.
type Span struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// TotalMonths folds the years into the month count.
func (s Span) TotalMonths() int { return s.Years*12 + s.Months }

func (s Span) String() string {
	return fmt.Sprintf("%dy %dm %dd", s.Years, s.Months, s.Days)
}

// SpanInclusive measures the service time from `from` to `to`, counting the
// last day as worked. Months are calendar months with day-of-month clamping,
// the remainder is expressed in days.
//
//	from 2023-01-01, to 2025-04-10  ->  2y 3m 10d
//	from 2024-11-01, to 2025-04-30  ->  0y 6m 0d
func SpanInclusive(from, to TimePoint) (Span, error) {
	if to.Before(from) {
		return Span{}, &InvalidPeriodError{Start: from, End: to}
	}

	end := to.AddDays(1)
	months := (end.Year()-from.Year())*12 + int(end.Month()) - int(from.Month())
	pivot := from.AddMonthsClamped(months)
	for months > 0 && pivot.After(end) {
		months--
		pivot = from.AddMonthsClamped(months)
	}

	return Span{
		Years:  months / 12,
		Months: months % 12,
		Days:   DaysBetween(pivot, end),
	}, nil
}
