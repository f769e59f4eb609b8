package severance

import (
	"time"

	"github.com/warp/payroll-engine/generic"
)

// Deposit semesters run May-Oct and Nov-Apr, gratuity semesters Jan-Jun and
// Jul-Dec, and the vacation year runs from one work anniversary to the next.
var (
	fundPeriods     = generic.PeriodConfig{Type: generic.PeriodSemester, StartMonth: time.May}
	gratuityPeriods = generic.PeriodConfig{Type: generic.PeriodSemester, StartMonth: time.January}
)

// FundAnchor is the last deposit date (May 1 or Nov 1) on or before the
// termination, or the hire date if later.
func FundAnchor(hire, termination generic.TimePoint) generic.TimePoint {
	return generic.Later(fundPeriods.PeriodFor(termination).Start, hire)
}

// GratuityAnchor is the start of the termination's semester, or the hire date
// if later.
func GratuityAnchor(hire, termination generic.TimePoint) generic.TimePoint {
	return generic.Later(gratuityPeriods.PeriodFor(termination).Start, hire)
}

// VacationAnchor is the most recent work anniversary on or before the
// termination. A Feb 29 hire has its anniversary on Feb 28 in common years.
func VacationAnchor(hire, termination generic.TimePoint) generic.TimePoint {
	years := generic.PeriodConfig{Type: generic.PeriodAnniversary, AnchorDate: &hire}
	return generic.Later(years.PeriodFor(termination).Start, hire)
}
