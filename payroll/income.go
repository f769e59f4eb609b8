package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

var (
	daysPerMonth = decimal.NewFromInt(30)
	hoursPerDay  = decimal.NewFromInt(8)
	one          = decimal.NewFromInt(1)
)

// OvertimePay breaks overtime down per surcharge tier.
type OvertimePay struct {
	FirstTier  decimal.Decimal `json:"first_tier"`
	SecondTier decimal.Decimal `json:"second_tier"`
	Holiday    decimal.Decimal `json:"holiday"`
	Total      decimal.Decimal `json:"total"`
}

// IncomeComponents is the remunerative income of one month.
type IncomeComponents struct {
	NominalBase         decimal.Decimal `json:"nominal_base"`
	AbsenceDays         int             `json:"absence_days"`
	AbsenceDeduction    decimal.Decimal `json:"absence_deduction"`
	AdjustedBase        decimal.Decimal `json:"adjusted_base"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	FamilyAllowance     decimal.Decimal `json:"family_allowance"`
	NightDifferential   decimal.Decimal `json:"night_differential"`
	Overtime            OvertimePay     `json:"overtime"`
	OtherAffectedIncome decimal.Decimal `json:"other_affected_income"`
}

// ContributionBase is the income subject to pension and health contributions.
func (ic IncomeComponents) ContributionBase() decimal.Decimal {
	return generic.Sum(
		ic.AdjustedBase,
		ic.FamilyAllowance,
		ic.NightDifferential,
		ic.Overtime.Total,
		ic.OtherAffectedIncome,
	)
}

// HourlyRate is base / 30 / 8, or zero for a non-positive base.
func HourlyRate(base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return base.Div(daysPerMonth).Div(hoursPerDay)
}

// DailyRate is base / 30, or zero for a non-positive base.
func DailyRate(base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return base.Div(daysPerMonth)
}

// AbsenceDeduction removes one thirtieth of the base per absence day.
func AbsenceDeduction(base decimal.Decimal, absenceDays int) decimal.Decimal {
	if absenceDays <= 0 {
		return decimal.Zero
	}
	return DailyRate(base).Mul(decimal.NewFromInt(int64(absenceDays)))
}

// ComputeOvertime pays each tier at rate x (1 + surcharge).
func ComputeOvertime(cfg Config, hourlyRate, firstTier, secondTier, holiday decimal.Decimal) OvertimePay {
	pay := func(hours, surcharge decimal.Decimal) decimal.Decimal {
		if !hours.IsPositive() || !hourlyRate.IsPositive() {
			return decimal.Zero
		}
		return hours.Mul(hourlyRate).Mul(one.Add(surcharge))
	}

	o := OvertimePay{
		FirstTier:  pay(firstTier, cfg.Overtime.FirstTier),
		SecondTier: pay(secondTier, cfg.Overtime.SecondTier),
		Holiday:    pay(holiday, cfg.Overtime.Holiday),
	}
	o.Total = generic.Sum(o.FirstTier, o.SecondTier, o.Holiday)
	return o
}

// NightDifferential is hours x hourly rate x night surcharge.
func NightDifferential(cfg Config, hourlyRate, hours decimal.Decimal) decimal.Decimal {
	if !hours.IsPositive() || !hourlyRate.IsPositive() {
		return decimal.Zero
	}
	return hours.Mul(hourlyRate).Mul(cfg.NightSurchargeRate)
}

// FamilyAllowance is a flat share of the minimum wage, independent of the
// number of dependents and of absences.
func FamilyAllowance(cfg Config, hasDependents bool) decimal.Decimal {
	if !hasDependents {
		return decimal.Zero
	}
	return cfg.FamilyAllowanceAmount()
}

// ComputeIncome builds the remunerative components of one month. Overtime and
// night work are paid on the hourly rate of the absence-adjusted base.
func ComputeIncome(cfg Config, profile EmployeeProfile, month MonthParameters) IncomeComponents {
	base := generic.Floor0(profile.BaseSalary)
	deduction := generic.MinOf(AbsenceDeduction(base, month.AbsenceDays), base)
	adjusted := generic.Floor0(base.Sub(deduction))
	rate := HourlyRate(adjusted)

	return IncomeComponents{
		NominalBase:         base,
		AbsenceDays:         month.AbsenceDays,
		AbsenceDeduction:    deduction,
		AdjustedBase:        adjusted,
		HourlyRate:          rate,
		FamilyAllowance:     FamilyAllowance(cfg, profile.HasDependents),
		NightDifferential:   NightDifferential(cfg, rate, month.NightHours),
		Overtime:            ComputeOvertime(cfg, rate, month.OvertimeFirstTier, month.OvertimeSecondTier, month.OvertimeHoliday),
		OtherAffectedIncome: generic.Floor0(month.OtherAffectedIncome),
	}
}
