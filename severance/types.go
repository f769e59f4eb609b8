/*
Package severance computes the end-of-employment settlement (LBS): the three
truncated benefits owed at termination and the arbitrary-dismissal indemnity.

PURPOSE:
  Independent of the monthly pipeline, but shares its primitives: the
  regularity average from payroll and the calendar arithmetic from generic.

BENEFITS:
  Benefit          Base                          Anchor
  Severance fund   gratuity base + 1/6 gratuity  May 1 / Nov 1 deposit date
  Gratuity         basic + regular average       Jan 1 / Jul 1 semester start
  Vacation         basic + regular average       last work anniversary

  Every anchor is moved forward to the hire date when the employee joined
  after it. Elapsed time runs from the anchor to the termination day
  inclusive.

EXCLUSIONS:
  Part time (< 4 h/day): no severance fund and no vacation.
  Forfeited vacation record: no vacation.

SEE ALSO:
  - anchors.go: Anchor rules
  - settlement.go: ComputeSeverance
  - vacation.go: Unused vacation indemnity for expired periods
*/
package severance

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// Cause is the reason the employment ended.
type Cause string

const (
	CauseResignation        Cause = "RESIGNATION"
	CauseArbitraryDismissal Cause = "ARBITRARY_DISMISSAL"
	CauseSeriousMisconduct  Cause = "SERIOUS_MISCONDUCT"
	CauseContractEnd        Cause = "CONTRACT_END"
)

var causes = []Cause{CauseResignation, CauseArbitraryDismissal, CauseSeriousMisconduct, CauseContractEnd}

// ParseCause resolves a cause case-insensitively; spaces and dashes are read
// as underscores.
func ParseCause(s string) (Cause, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, c := range causes {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", &generic.InputError{Field: "cause", Reason: "is not a known termination cause: " + s}
}

// Case is one termination.
type Case struct {
	HireDate          generic.TimePoint `json:"hire_date"`
	TerminationDate   generic.TimePoint `json:"termination_date"`
	Cause             Cause             `json:"cause"`
	BasicRemuneration decimal.Decimal   `json:"basic_remuneration"`
	LastGratuitySixth decimal.Decimal   `json:"last_gratuity_sixth"`

	// Fewer than four hours a day.
	PartTime bool `json:"part_time"`

	ForfeitedVacationRecord bool `json:"forfeited_vacation_record"`

	// Absence days in the semester being truncated.
	SemesterAbsenceDays int `json:"semester_absence_days"`
}

// Benefit is one truncated benefit and its proration period.
type Benefit struct {
	Anchor         generic.TimePoint `json:"anchor"`
	Until          generic.TimePoint `json:"until"`
	Elapsed        generic.Span      `json:"elapsed"`
	Months         int               `json:"months"`
	Days           int               `json:"days"`
	Base           decimal.Decimal   `json:"base"`
	AbsencePenalty decimal.Decimal   `json:"absence_penalty"`
	Amount         decimal.Decimal   `json:"amount"`
	Excluded       bool              `json:"excluded,omitempty"`
	Reason         string            `json:"reason,omitempty"`
}

// Indemnity is the arbitrary-dismissal indemnity over total tenure.
type Indemnity struct {
	Applies      bool            `json:"applies"`
	Tenure       generic.Span    `json:"tenure"`
	Base         decimal.Decimal `json:"base"`
	PerYear      decimal.Decimal `json:"per_year"`
	YearsAmount  decimal.Decimal `json:"years_amount"`
	MonthsAmount decimal.Decimal `json:"months_amount"`
	DaysAmount   decimal.Decimal `json:"days_amount"`
	Uncapped     decimal.Decimal `json:"uncapped"`
	Cap          decimal.Decimal `json:"cap"`
	Capped       bool            `json:"capped"`
	Amount       decimal.Decimal `json:"amount"`
}

// Result is the complete settlement.
type Result struct {
	Cause  Cause        `json:"cause"`
	Tenure generic.Span `json:"tenure"`

	Regularity           payroll.Regularity `json:"regularity"`
	GratuityVacationBase decimal.Decimal    `json:"gratuity_vacation_base"`
	FundBase             decimal.Decimal    `json:"fund_base"`

	Fund      Benefit   `json:"fund"`
	Gratuity  Benefit   `json:"gratuity"`
	Vacation  Benefit   `json:"vacation"`
	Indemnity Indemnity `json:"indemnity"`

	TruncatedTotal decimal.Decimal `json:"truncated_total"`
	Total          decimal.Decimal `json:"total"`

	// Informational notes on exclusions that applied.
	Notes []string `json:"notes,omitempty"`
}
