/*
config.go - Fiscal-year legal constants

PURPOSE:
  Holds every statutory value the engines read: tax unit (UIT), minimum wage
  (RMV), contribution percentages, the insurable cap, the income-tax bracket
  table and the withholding divisor schedule. A Config is an immutable value
  passed into every entry point; there is no package-level singleton, so
  calculations for different fiscal years can run side by side.

DEFAULTS (2025):
  UIT                       5,350    D.S. 260-2024-EF
  RMV                       1,130    D.S. 006-2024-TR
  Family allowance          10% RMV  Ley 25129
  EsSalud (employer)        9%       Ley 26790
  ONP                       13%      D.L. 19990
  AFP contribution          10%
  AFP insurance premium     1.74%    on min(base, insurable cap)
  Insurable cap             12,234.34
  Exemption                 7 UIT    Art. 46 LIR
  Additional deductions     3 UIT cap
  Brackets                  5/20/35/45 UIT at 8/14/17/20/30%  Art. 53 LIR
  EPS credit                2.25%    (9% x 25%)
  Extraordinary bonus       9% / 6.75% with EPS  Ley 30334
  Integral remuneration     2 UIT monthly minimum  D.S. 003-97-TR Art. 8

LOADING:
  DefaultConfig() returns the values above. factory.LoadFiscalConfig reads a
  versioned YAML document for other years; both paths end in Validate().

SEE ALSO:
  - factory/fiscal.go: YAML documents -> Config
  - tax.go: Consumes the bracket table and withholding schedule
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// CONFIG
// =============================================================================

type Config struct {
	FiscalYear          int             `json:"fiscal_year"`
	TaxUnit             decimal.Decimal `json:"tax_unit"`
	MinimumWage         decimal.Decimal `json:"minimum_wage"`
	FamilyAllowanceRate decimal.Decimal `json:"family_allowance_rate"`
	EmployerHealthRate  decimal.Decimal `json:"employer_health_rate"`
	NightSurchargeRate  decimal.Decimal `json:"night_surcharge_rate"`

	Overtime OvertimeRates `json:"overtime"`
	Pension  PensionRates  `json:"pension"`
	Tax      TaxRules      `json:"tax"`
	Gratuity GratuityRules `json:"gratuity"`

	// Minimum monthly equivalent of an integral annual remuneration, in UIT.
	IntegralMinimumUnits decimal.Decimal `json:"integral_minimum_units"`
}

// OvertimeRates are surcharges over the ordinary hourly rate.
type OvertimeRates struct {
	FirstTier  decimal.Decimal `json:"first_tier"`  // first two hours
	SecondTier decimal.Decimal `json:"second_tier"` // beyond the second hour
	Holiday    decimal.Decimal `json:"holiday"`     // holidays and rest days
}

type PensionRates struct {
	PublicRate              decimal.Decimal `json:"public_rate"`
	PrivateContributionRate decimal.Decimal `json:"private_contribution_rate"`
	PrivateInsuranceRate    decimal.Decimal `json:"private_insurance_rate"`
	InsurableCap            decimal.Decimal `json:"insurable_cap"`
}

type TaxRules struct {
	ExemptionUnits              decimal.Decimal     `json:"exemption_units"`
	AdditionalDeductionCapUnits decimal.Decimal     `json:"additional_deduction_cap_units"`
	ExpenseRates                ExpenseRates        `json:"expense_rates"`
	Brackets                    []Bracket           `json:"brackets"`
	HealthPlanCreditRate        decimal.Decimal     `json:"health_plan_credit_rate"`
	WithholdingSchedule         []WithholdingWindow `json:"withholding_schedule"`
}

// ExpenseRates is the deductible share of each expense category.
type ExpenseRates struct {
	Rent                         decimal.Decimal `json:"rent"`
	MedicalFees                  decimal.Decimal `json:"medical_fees"`
	ProfessionalServices         decimal.Decimal `json:"professional_services"`
	HouseholdHealthContributions decimal.Decimal `json:"household_health_contributions"`
	HotelsAndRestaurants         decimal.Decimal `json:"hotels_and_restaurants"`
}

// Bracket taxes the slice of income between the previous bracket's UpTo and
// its own UpTo. The last bracket is Unbounded.
type Bracket struct {
	UpTo      decimal.Decimal `json:"up_to"`
	Unbounded bool            `json:"unbounded,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
}

// WithholdingWindow maps a range of months to the divisor used to spread the
// annual tax. OnFullEstimate windows divide the whole annual estimate and
// ignore what was already withheld.
type WithholdingWindow struct {
	FromMonth      int  `json:"from_month"`
	ToMonth        int  `json:"to_month"`
	Divisor        int  `json:"divisor"`
	OnFullEstimate bool `json:"on_full_estimate,omitempty"`
}

type GratuityRules struct {
	ExtraordinaryBonusRate           decimal.Decimal `json:"extraordinary_bonus_rate"`
	ExtraordinaryBonusRateHealthPlan decimal.Decimal `json:"extraordinary_bonus_rate_health_plan"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the 2025 statutory values.
func DefaultConfig() Config {
	uit := generic.MoneyFromInt(5350)
	return Config{
		FiscalYear:          2025,
		TaxUnit:             uit,
		MinimumWage:         generic.MoneyFromInt(1130),
		FamilyAllowanceRate: generic.Rate(0.10),
		EmployerHealthRate:  generic.Rate(0.09),
		NightSurchargeRate:  generic.Rate(0.35),
		Overtime: OvertimeRates{
			FirstTier:  generic.Rate(0.25),
			SecondTier: generic.Rate(0.35),
			Holiday:    generic.Rate(1.00),
		},
		Pension: PensionRates{
			PublicRate:              generic.Rate(0.13),
			PrivateContributionRate: generic.Rate(0.10),
			PrivateInsuranceRate:    generic.Rate(0.0174),
			InsurableCap:            generic.Money(12234.34),
		},
		Tax: TaxRules{
			ExemptionUnits:              decimal.NewFromInt(7),
			AdditionalDeductionCapUnits: decimal.NewFromInt(3),
			ExpenseRates: ExpenseRates{
				Rent:                         generic.Rate(0.30),
				MedicalFees:                  generic.Rate(0.30),
				ProfessionalServices:         generic.Rate(0.30),
				HouseholdHealthContributions: generic.Rate(1.00),
				HotelsAndRestaurants:         generic.Rate(0.15),
			},
			Brackets: []Bracket{
				{UpTo: uit.Mul(decimal.NewFromInt(5)), Rate: generic.Rate(0.08)},
				{UpTo: uit.Mul(decimal.NewFromInt(20)), Rate: generic.Rate(0.14)},
				{UpTo: uit.Mul(decimal.NewFromInt(35)), Rate: generic.Rate(0.17)},
				{UpTo: uit.Mul(decimal.NewFromInt(45)), Rate: generic.Rate(0.20)},
				{Unbounded: true, Rate: generic.Rate(0.30)},
			},
			HealthPlanCreditRate: generic.Rate(0.0225),
			WithholdingSchedule:  DefaultWithholdingSchedule(),
		},
		Gratuity: GratuityRules{
			ExtraordinaryBonusRate:           generic.Rate(0.09),
			ExtraordinaryBonusRateHealthPlan: generic.Rate(0.0675),
		},
		IntegralMinimumUnits: decimal.NewFromInt(2),
	}
}

// DefaultWithholdingSchedule is the fixed calendar of recalculation windows.
func DefaultWithholdingSchedule() []WithholdingWindow {
	return []WithholdingWindow{
		{FromMonth: 1, ToMonth: 3, Divisor: 12, OnFullEstimate: true},
		{FromMonth: 4, ToMonth: 4, Divisor: 9},
		{FromMonth: 5, ToMonth: 7, Divisor: 8},
		{FromMonth: 8, ToMonth: 11, Divisor: 5},
		{FromMonth: 12, ToMonth: 12, Divisor: 1},
	}
}

// =============================================================================
// DERIVED AMOUNTS
// =============================================================================

// Exemption is the fixed annual deduction (7 UIT).
func (c Config) Exemption() decimal.Decimal {
	return c.TaxUnit.Mul(c.Tax.ExemptionUnits)
}

// AdditionalDeductionCap caps the aggregate expense deduction (3 UIT).
func (c Config) AdditionalDeductionCap() decimal.Decimal {
	return c.TaxUnit.Mul(c.Tax.AdditionalDeductionCapUnits)
}

// IntegralMinimumMonthly is the lowest monthly equivalent an integral annual
// remuneration may have (2 UIT).
func (c Config) IntegralMinimumMonthly() decimal.Decimal {
	return c.TaxUnit.Mul(c.IntegralMinimumUnits)
}

// FamilyAllowanceAmount is the flat monthly family allowance.
func (c Config) FamilyAllowanceAmount() decimal.Decimal {
	return c.MinimumWage.Mul(c.FamilyAllowanceRate)
}

// WindowFor returns the withholding window covering month.
func (c Config) WindowFor(month int) (WithholdingWindow, bool) {
	for _, w := range c.Tax.WithholdingSchedule {
		if month >= w.FromMonth && month <= w.ToMonth {
			return w, true
		}
	}
	return WithholdingWindow{}, false
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the structural invariants of the configuration: positive
// tax unit, a strictly increasing bracket partition ending in one unbounded
// bracket, and a withholding schedule covering each month exactly once.
func (c Config) Validate() error {
	if !c.TaxUnit.IsPositive() {
		return fmt.Errorf("%w: tax unit must be positive", ErrInvalidConfig)
	}
	if c.MinimumWage.IsNegative() {
		return fmt.Errorf("%w: minimum wage must not be negative", ErrInvalidConfig)
	}
	if c.Pension.InsurableCap.IsNegative() {
		return fmt.Errorf("%w: insurable cap must not be negative", ErrInvalidConfig)
	}
	if err := validateBrackets(c.Tax.Brackets); err != nil {
		return err
	}
	return validateSchedule(c.Tax.WithholdingSchedule)
}

func validateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: no tax brackets", ErrInvalidConfig)
	}

	previous := decimal.Zero
	for i, b := range brackets {
		last := i == len(brackets)-1
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: bracket %d has a negative rate", ErrInvalidConfig, i+1)
		}
		if b.Unbounded != last {
			return fmt.Errorf("%w: only the last bracket may be unbounded (bracket %d)", ErrInvalidConfig, i+1)
		}
		if last {
			break
		}
		if !b.UpTo.GreaterThan(previous) {
			return fmt.Errorf("%w: bracket %d upper bound %s is not above %s",
				ErrInvalidConfig, i+1, b.UpTo, previous)
		}
		previous = b.UpTo
	}
	return nil
}

func validateSchedule(schedule []WithholdingWindow) error {
	var covered [13]bool
	for _, w := range schedule {
		if w.Divisor <= 0 {
			return fmt.Errorf("%w: withholding divisor must be positive (months %d-%d)",
				ErrInvalidConfig, w.FromMonth, w.ToMonth)
		}
		if w.FromMonth < 1 || w.ToMonth > 12 || w.FromMonth > w.ToMonth {
			return fmt.Errorf("%w: withholding window %d-%d is out of range",
				ErrInvalidConfig, w.FromMonth, w.ToMonth)
		}
		for m := w.FromMonth; m <= w.ToMonth; m++ {
			if covered[m] {
				return fmt.Errorf("%w: month %d appears in two withholding windows", ErrInvalidConfig, m)
			}
			covered[m] = true
		}
	}
	for m := 1; m <= 12; m++ {
		if !covered[m] {
			return fmt.Errorf("%w: month %d has no withholding window", ErrInvalidConfig, m)
		}
	}
	return nil
}
