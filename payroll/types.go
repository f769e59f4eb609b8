/*
Package payroll computes the monthly payroll of a Peruvian private-sector
employee.

PURPOSE:
  Every entry point is a pure function of a Config and named input values.
  The monthly orchestrator chains the component calculators in a fixed order:

    income -> contribution base / tax base -> annual projection
           -> withholding -> pension discount -> totals -> ratios

  and returns one PayslipResult. Nothing here keeps state between calls; the
  caller owns the year-to-date accumulators and the semester history.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmployeeProfile: who is being paid (salary, dependents, pension, EPS)
  - MonthParameters: what happened this month (absences, hours, one-off income)
  - YearToDate: accumulators carried from January to the previous month
  - DeductibleExpenses: annual expenses eligible for the additional deduction
  - PensionSystem: ONP (public) or one of the AFP (private) administrators

SEE ALSO:
  - config.go: Legal constants
  - payslip.go: The orchestrator
  - regularity.go: SemesterHistory and the 3-of-6 rule
*/
package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PENSION SYSTEM
// =============================================================================

// PensionSystem selects the pension discount applied to the contribution base.
type PensionSystem string

const (
	PensionONP       PensionSystem = "ONP" // public, pay-as-you-go
	PensionIntegra   PensionSystem = "INTEGRA"
	PensionPrima     PensionSystem = "PRIMA"
	PensionHabitat   PensionSystem = "HABITAT"
	PensionProfuturo PensionSystem = "PROFUTURO"
)

// PensionSystems lists every known selector, public first.
var PensionSystems = []PensionSystem{
	PensionONP, PensionIntegra, PensionPrima, PensionHabitat, PensionProfuturo,
}

// ParsePensionSystem resolves a selector case-insensitively. "AFP-" prefixes
// are accepted for the private administrators.
func ParsePensionSystem(s string) (PensionSystem, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.TrimPrefix(normalized, "AFP-")
	normalized = strings.TrimPrefix(normalized, "AFP ")

	for _, p := range PensionSystems {
		if string(p) == normalized {
			return p, nil
		}
	}
	return "", &UnknownPensionSystemError{Selector: s}
}

// IsPublic reports whether the selector is the national system.
func (p PensionSystem) IsPublic() bool { return p == PensionONP }

// IsKnown reports whether the selector is one of PensionSystems.
func (p PensionSystem) IsKnown() bool {
	for _, known := range PensionSystems {
		if p == known {
			return true
		}
	}
	return false
}

// =============================================================================
// INPUTS
// =============================================================================

// EmployeeProfile is immutable for one calculation call.
type EmployeeProfile struct {
	BaseSalary    decimal.Decimal `json:"base_salary"`
	HasDependents bool            `json:"has_dependents"`
	PensionSystem PensionSystem   `json:"pension_system"`
	HasHealthPlan bool            `json:"has_health_plan"`
}

// MonthParameters are the variable facts of one calendar month.
type MonthParameters struct {
	Month       int `json:"month"`
	AbsenceDays int `json:"absence_days"`

	NightHours         decimal.Decimal `json:"night_hours"`
	OvertimeFirstTier  decimal.Decimal `json:"overtime_first_tier"`
	OvertimeSecondTier decimal.Decimal `json:"overtime_second_tier"`
	OvertimeHoliday    decimal.Decimal `json:"overtime_holiday"`

	// Contributory allowances paid this month (commissions, bonuses).
	OtherAffectedIncome decimal.Decimal `json:"other_affected_income"`

	// Not part of the contribution base.
	NonRemunerative decimal.Decimal `json:"non_remunerative"`
	MealVoucher     decimal.Decimal `json:"meal_voucher"`
	ProfitShare     decimal.Decimal `json:"profit_share"`
	Subsidy         decimal.Decimal `json:"subsidy"`

	FixedDeductions decimal.Decimal `json:"fixed_deductions"`

	// Full months worked in the current gratuity semester. Zero means the
	// whole semester.
	SemesterMonthsWorked int `json:"semester_months_worked"`
}

// YearToDate holds the accumulators from January up to the previous month.
type YearToDate struct {
	TaxBase    decimal.Decimal `json:"tax_base"`
	HealthBase decimal.Decimal `json:"health_base"`
	Withheld   decimal.Decimal `json:"withheld"`
}

// Add returns the accumulators advanced by one month.
func (y YearToDate) Add(taxBase, healthBase, withheld decimal.Decimal) YearToDate {
	return YearToDate{
		TaxBase:    y.TaxBase.Add(taxBase),
		HealthBase: y.HealthBase.Add(healthBase),
		Withheld:   y.Withheld.Add(withheld),
	}
}

// DeductibleExpenses are annual amounts per category.
type DeductibleExpenses struct {
	Rent                         decimal.Decimal `json:"rent"`
	MedicalFees                  decimal.Decimal `json:"medical_fees"`
	ProfessionalServices         decimal.Decimal `json:"professional_services"`
	HouseholdHealthContributions decimal.Decimal `json:"household_health_contributions"`
	HotelsAndRestaurants         decimal.Decimal `json:"hotels_and_restaurants"`
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return invalidInput("month", "must be between 1 and 12")
	}
	return nil
}

func validateInputs(profile EmployeeProfile, month MonthParameters) error {
	if err := validateMonth(month.Month); err != nil {
		return err
	}
	if profile.BaseSalary.IsNegative() {
		return invalidInput("base_salary", "must not be negative")
	}
	if month.AbsenceDays < 0 {
		return invalidInput("absence_days", "must not be negative")
	}
	if month.SemesterMonthsWorked < 0 || month.SemesterMonthsWorked > 6 {
		return invalidInput("semester_months_worked", "must be between 0 and 6")
	}
	if !profile.PensionSystem.IsKnown() {
		return &UnknownPensionSystemError{Selector: string(profile.PensionSystem)}
	}
	return nil
}
