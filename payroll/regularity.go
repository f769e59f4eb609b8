/*
regularity.go - Six-month averaging of variable income

PURPOSE:
  Gratuity, the severance-fund deposit and the severance settlement all add
  the "regular" part of variable income to the basic remuneration. A series
  (overtime, night differential, other income) is regular when it was paid in
  at least three of the six tracked months; a regular series contributes its
  six-month sum divided by six, an irregular one contributes nothing.

  This is the only implementation of the rule. payslip.go, gratuity.go and
  severance/settlement.go all call RegularAverage.

WINDOW:
  Jan-Jun for the July gratuity, Jul-Dec for December, and the six months
  before termination for a severance settlement. The caller picks the window;
  the history is just six ordered values per series.
*/
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

const (
	// SemesterMonths is the length of every averaging window.
	SemesterMonths = 6

	// RegularityThreshold is the minimum number of paid months for a series
	// to count.
	RegularityThreshold = 3
)

var semesterMonths = decimal.NewFromInt(SemesterMonths)

// SemesterHistory holds six ordered monthly values per variable-income series
// plus the absence days of each month.
type SemesterHistory struct {
	Overtime          [SemesterMonths]decimal.Decimal `json:"overtime"`
	NightDifferential [SemesterMonths]decimal.Decimal `json:"night_differential"`
	OtherIncome       [SemesterMonths]decimal.Decimal `json:"other_income"`
	AbsenceDays       [SemesterMonths]int             `json:"absence_days"`
}

// TotalAbsenceDays sums the absences of the window.
func (h SemesterHistory) TotalAbsenceDays() int {
	total := 0
	for _, d := range h.AbsenceDays {
		if d > 0 {
			total += d
		}
	}
	return total
}

// Record stores one month of variable income at position i (0-5).
func (h *SemesterHistory) Record(i int, income IncomeComponents) {
	if i < 0 || i >= SemesterMonths {
		return
	}
	h.Overtime[i] = income.Overtime.Total
	h.NightDifferential[i] = income.NightDifferential
	h.OtherIncome[i] = income.OtherAffectedIncome
	h.AbsenceDays[i] = income.AbsenceDays
}

// SeriesAverage is the outcome of the regularity rule for one series.
type SeriesAverage struct {
	MonthsPaid int             `json:"months_paid"`
	Sum        decimal.Decimal `json:"sum"`
	Regular    bool            `json:"regular"`
	Average    decimal.Decimal `json:"average"`
}

// Regularity is the averaged variable income of a semester.
type Regularity struct {
	Overtime          SeriesAverage   `json:"overtime"`
	NightDifferential SeriesAverage   `json:"night_differential"`
	OtherIncome       SeriesAverage   `json:"other_income"`
	Total             decimal.Decimal `json:"total"`
}

// RegularAverage applies the 3-of-6 rule to each series independently.
func RegularAverage(history SemesterHistory) Regularity {
	r := Regularity{
		Overtime:          averageSeries(history.Overtime),
		NightDifferential: averageSeries(history.NightDifferential),
		OtherIncome:       averageSeries(history.OtherIncome),
	}
	r.Total = generic.Sum(r.Overtime.Average, r.NightDifferential.Average, r.OtherIncome.Average)
	return r
}

func averageSeries(values [SemesterMonths]decimal.Decimal) SeriesAverage {
	var s SeriesAverage
	s.Sum = decimal.Zero
	for _, v := range values {
		if v.IsPositive() {
			s.MonthsPaid++
			s.Sum = s.Sum.Add(v)
		}
	}

	s.Regular = s.MonthsPaid >= RegularityThreshold
	if s.Regular {
		s.Average = s.Sum.Div(semesterMonths)
	} else {
		s.Average = decimal.Zero
	}
	return s
}
