package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

var daysPerSemester = decimal.NewFromInt(180)

// =============================================================================
// GRATUITY (July / December)
// =============================================================================

// Gratuity is the semestral bonus paid in July and December plus the
// extraordinary bonus that replaces the employer health contribution on it.
type Gratuity struct {
	Applies            bool            `json:"applies"`
	ComputableBase     decimal.Decimal `json:"computable_base"`
	Months             int             `json:"months"`
	AbsenceDays        int             `json:"absence_days"`
	Gross              decimal.Decimal `json:"gross"`
	AbsencePenalty     decimal.Decimal `json:"absence_penalty"`
	Net                decimal.Decimal `json:"net"`
	BonusRate          decimal.Decimal `json:"bonus_rate"`
	ExtraordinaryBonus decimal.Decimal `json:"extraordinary_bonus"`
}

// Total is the gratuity plus the extraordinary bonus.
func (g Gratuity) Total() decimal.Decimal {
	return g.Net.Add(g.ExtraordinaryBonus)
}

// IsGratuityMonth reports whether the gratuity is paid in month.
func IsGratuityMonth(month int) bool {
	return month == 7 || month == 12
}

// ComputeGratuity prorates base over the full months worked in the semester
// and discounts one hundred-eightieth of the base per absence day.
func ComputeGratuity(cfg Config, base decimal.Decimal, months, absenceDays int, hasHealthPlan bool) Gratuity {
	months = min(max(months, 0), SemesterMonths)
	absenceDays = max(absenceDays, 0)
	base = generic.Floor0(base)

	g := Gratuity{
		Applies:        true,
		ComputableBase: base,
		Months:         months,
		AbsenceDays:    absenceDays,
		Gross:          base.Div(semesterMonths).Mul(decimal.NewFromInt(int64(months))),
		AbsencePenalty: base.Div(daysPerSemester).Mul(decimal.NewFromInt(int64(absenceDays))),
	}
	g.Net = generic.Floor0(g.Gross.Sub(g.AbsencePenalty))

	g.BonusRate = cfg.Gratuity.ExtraordinaryBonusRate
	if hasHealthPlan {
		g.BonusRate = cfg.Gratuity.ExtraordinaryBonusRateHealthPlan
	}
	g.ExtraordinaryBonus = g.Net.Mul(g.BonusRate)
	return g
}

// =============================================================================
// SEVERANCE-FUND DEPOSIT (May / November)
// =============================================================================

// IsFundDepositMonth reports whether the semestral severance-fund deposit is
// due in month.
func IsFundDepositMonth(month int) bool {
	return month == 5 || month == 11
}

// FundDepositInputs describe the semester being deposited.
type FundDepositInputs struct {
	BasicRemuneration decimal.Decimal `json:"basic_remuneration"`
	HasDependents     bool            `json:"has_dependents"`
	LastGratuity      decimal.Decimal `json:"last_gratuity"`
	MonthsWorked      int             `json:"months_worked"`
	History           SemesterHistory `json:"history"`
}

// FundDeposit is the amount the employer deposits for one semester.
type FundDeposit struct {
	Regularity      Regularity      `json:"regularity"`
	FamilyAllowance decimal.Decimal `json:"family_allowance"`
	GratuitySixth   decimal.Decimal `json:"gratuity_sixth"`
	ComputableBase  decimal.Decimal `json:"computable_base"`
	Months          int             `json:"months"`
	Amount          decimal.Decimal `json:"amount"`
}

// ComputeFundDeposit is base / 12 x months, where the base is the basic
// remuneration, family allowance, regular variable income and one sixth of
// the last gratuity.
func ComputeFundDeposit(cfg Config, in FundDepositInputs) (FundDeposit, error) {
	if in.BasicRemuneration.IsNegative() {
		return FundDeposit{}, invalidInput("basic_remuneration", "must not be negative")
	}
	if in.MonthsWorked < 0 || in.MonthsWorked > SemesterMonths {
		return FundDeposit{}, invalidInput("months_worked", "must be between 0 and 6")
	}

	d := FundDeposit{
		Regularity:      RegularAverage(in.History),
		FamilyAllowance: FamilyAllowance(cfg, in.HasDependents),
		GratuitySixth:   generic.Floor0(in.LastGratuity).Div(semesterMonths),
		Months:          in.MonthsWorked,
	}
	d.ComputableBase = generic.Sum(in.BasicRemuneration, d.FamilyAllowance, d.Regularity.Total, d.GratuitySixth)
	d.Amount = d.ComputableBase.Div(monthsPerYear).Mul(decimal.NewFromInt(int64(d.Months)))
	return d, nil
}
