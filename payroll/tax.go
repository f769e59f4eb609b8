/*
tax.go - Fifth-category income tax withholding

PURPOSE:
  Converts one month of income into the tax withheld that month, in two
  stages:

  1. PROJECTION: year-to-date actuals + this month + a "normal month" template
     for each remaining month gives the annual taxable income estimate. A
     parallel projection of the health-affected base feeds the EPS credit.

  2. ASSESSMENT AND SPREAD: exemption (7 UIT) and the additional expense
     deduction (capped at 3 UIT) are subtracted, the bracket table is applied
     cumulatively, the EPS credit is taken, and the annual tax is spread over
     the year with the withholding schedule.

THE NORMAL MONTH:
  nominal salary + family allowance + other affected income + night
  differential scaled to a 30-day month (remunerative part), plus recurring
  non-remunerative income and meal voucher (tax part). Gratuities, the
  extraordinary bonus, profit share and subsidies are one-time and are never
  projected.

WITHHOLDING SCHEDULE (default):
  Month   Basis                       Divisor
  1-3     annual estimate             12
  4       annual - withheld to date    9
  5-7     annual - withheld to date    8
  8-11    annual - withheld to date    5
  12      annual - withheld to date    1

  The last window absorbs the remaining balance, so twelve withholdings of a
  constant projection sum to the annual tax.

SEE ALSO:
  - config.go: Bracket table and schedule
  - payslip.go: Calls ProjectAnnualIncome -> AnnualTax -> MonthlyWithholding
*/
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

var monthsPerYear = decimal.NewFromInt(12)

// =============================================================================
// PROJECTION
// =============================================================================

// Projection is the annual estimate built in a given month.
type Projection struct {
	Month           int `json:"month"`
	RemainingMonths int `json:"remaining_months"`

	ProjectedNightHours  decimal.Decimal `json:"projected_night_hours"`
	ProjectedNightPay    decimal.Decimal `json:"projected_night_pay"`
	RemunerativeTemplate decimal.Decimal `json:"remunerative_template"`
	TaxTemplate          decimal.Decimal `json:"tax_template"`

	ActualTaxBase    decimal.Decimal `json:"actual_tax_base"`
	ActualHealthBase decimal.Decimal `json:"actual_health_base"`
	AnnualTaxBase    decimal.Decimal `json:"annual_tax_base"`
	AnnualHealthBase decimal.Decimal `json:"annual_health_base"`
}

// ProjectAnnualIncome projects the annual tax base and health-affected base
// from the year-to-date accumulators, this month's bases and a normal-month
// template for the months still to come.
func ProjectAnnualIncome(
	cfg Config,
	profile EmployeeProfile,
	month MonthParameters,
	ytd YearToDate,
	taxBase, healthBase decimal.Decimal,
) Projection {
	p := Projection{
		Month:           month.Month,
		RemainingMonths: max(12-month.Month, 0),
	}

	nominal := generic.Floor0(profile.BaseSalary)
	p.ProjectedNightHours = projectNightHours(month.NightHours, month.AbsenceDays)
	p.ProjectedNightPay = NightDifferential(cfg, HourlyRate(nominal), p.ProjectedNightHours)

	p.RemunerativeTemplate = generic.Sum(
		nominal,
		FamilyAllowance(cfg, profile.HasDependents),
		generic.Floor0(month.OtherAffectedIncome),
		p.ProjectedNightPay,
	)
	p.TaxTemplate = generic.Sum(
		p.RemunerativeTemplate,
		generic.Floor0(month.NonRemunerative),
		generic.Floor0(month.MealVoucher),
	)

	remaining := decimal.NewFromInt(int64(p.RemainingMonths))
	p.ActualTaxBase = ytd.TaxBase.Add(taxBase)
	p.ActualHealthBase = ytd.HealthBase.Add(healthBase)
	p.AnnualTaxBase = p.ActualTaxBase.Add(p.TaxTemplate.Mul(remaining))
	p.AnnualHealthBase = p.ActualHealthBase.Add(p.RemunerativeTemplate.Mul(remaining))
	return p
}

// projectNightHours scales the night hours worked this month to a full
// 30-day month.
func projectNightHours(hours decimal.Decimal, absenceDays int) decimal.Decimal {
	worked := 30 - absenceDays
	if !hours.IsPositive() || worked <= 0 {
		return decimal.Zero
	}
	return hours.Mul(daysPerMonth).Div(decimal.NewFromInt(int64(worked)))
}

// =============================================================================
// ANNUAL TAX
// =============================================================================

// BracketSlice is the portion of net taxable income falling in one bracket.
type BracketSlice struct {
	From      decimal.Decimal `json:"from"`
	UpTo      decimal.Decimal `json:"up_to"`
	Unbounded bool            `json:"unbounded,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
	Taxed     decimal.Decimal `json:"taxed"`
	Tax       decimal.Decimal `json:"tax"`
}

// TaxAssessment is the annual tax liability with every intermediate amount.
type TaxAssessment struct {
	ProjectedIncome            decimal.Decimal `json:"projected_income"`
	Exemption                  decimal.Decimal `json:"exemption"`
	AdditionalDeductionClaimed decimal.Decimal `json:"additional_deduction_claimed"`
	AdditionalDeduction        decimal.Decimal `json:"additional_deduction"`
	NetTaxable                 decimal.Decimal `json:"net_taxable"`
	Brackets                   []BracketSlice  `json:"brackets"`
	BracketTax                 decimal.Decimal `json:"bracket_tax"`
	HealthPlanCredit           decimal.Decimal `json:"health_plan_credit"`
	AnnualTax                  decimal.Decimal `json:"annual_tax"`
}

// AdditionalDeduction weighs each expense category by its rate and caps the
// aggregate. It returns the uncapped and the capped amount.
func AdditionalDeduction(cfg Config, expenses DeductibleExpenses) (claimed, allowed decimal.Decimal) {
	rates := cfg.Tax.ExpenseRates
	claimed = generic.Sum(
		generic.Floor0(expenses.Rent).Mul(rates.Rent),
		generic.Floor0(expenses.MedicalFees).Mul(rates.MedicalFees),
		generic.Floor0(expenses.ProfessionalServices).Mul(rates.ProfessionalServices),
		generic.Floor0(expenses.HouseholdHealthContributions).Mul(rates.HouseholdHealthContributions),
		generic.Floor0(expenses.HotelsAndRestaurants).Mul(rates.HotelsAndRestaurants),
	)
	return claimed, generic.MinOf(claimed, cfg.AdditionalDeductionCap())
}

// BracketTax applies the progressive table cumulatively: each bracket taxes
// only the income between the previous bound and its own.
func BracketTax(brackets []Bracket, netTaxable decimal.Decimal) (decimal.Decimal, []BracketSlice) {
	total := decimal.Zero
	slices := make([]BracketSlice, 0, len(brackets))
	lower := decimal.Zero

	for _, b := range brackets {
		if !netTaxable.GreaterThan(lower) {
			break
		}
		taxed := netTaxable.Sub(lower)
		if !b.Unbounded {
			taxed = generic.MinOf(taxed, b.UpTo.Sub(lower))
		}
		tax := taxed.Mul(b.Rate)
		slices = append(slices, BracketSlice{
			From:      lower,
			UpTo:      b.UpTo,
			Unbounded: b.Unbounded,
			Rate:      b.Rate,
			Taxed:     taxed,
			Tax:       tax,
		})
		total = total.Add(tax)
		if b.Unbounded {
			break
		}
		lower = b.UpTo
	}
	return total, slices
}

// AnnualTax assesses the projected annual income. The health-plan credit is a
// share of the projected health-affected base and cannot push the tax below
// zero.
func AnnualTax(
	cfg Config,
	projectedIncome, healthBase decimal.Decimal,
	expenses DeductibleExpenses,
	hasHealthPlan bool,
) TaxAssessment {
	a := TaxAssessment{
		ProjectedIncome: projectedIncome,
		Exemption:       cfg.Exemption(),
	}
	a.AdditionalDeductionClaimed, a.AdditionalDeduction = AdditionalDeduction(cfg, expenses)
	a.NetTaxable = generic.Floor0(projectedIncome.Sub(a.Exemption).Sub(a.AdditionalDeduction))
	a.BracketTax, a.Brackets = BracketTax(cfg.Tax.Brackets, a.NetTaxable)

	a.HealthPlanCredit = decimal.Zero
	if hasHealthPlan {
		a.HealthPlanCredit = generic.Floor0(healthBase).Mul(cfg.Tax.HealthPlanCreditRate)
	}
	a.AnnualTax = generic.Floor0(a.BracketTax.Sub(a.HealthPlanCredit))
	return a
}

// =============================================================================
// MONTHLY WITHHOLDING
// =============================================================================

// Withholding is the tax retained in one month.
type Withholding struct {
	Month          int             `json:"month"`
	AnnualTax      decimal.Decimal `json:"annual_tax"`
	WithheldToDate decimal.Decimal `json:"withheld_to_date"`
	Basis          decimal.Decimal `json:"basis"`
	Divisor        int             `json:"divisor"`
	Amount         decimal.Decimal `json:"amount"`
}

// MonthlyWithholding spreads the annual tax with the configured schedule.
// A negative result means more was withheld than owed; it is floored at zero
// and not refunded here.
func MonthlyWithholding(cfg Config, month int, annualTax, withheld decimal.Decimal) (Withholding, error) {
	if err := validateMonth(month); err != nil {
		return Withholding{}, err
	}
	window, ok := cfg.WindowFor(month)
	if !ok {
		return Withholding{}, invalidInput("month", "has no withholding window")
	}

	w := Withholding{
		Month:          month,
		AnnualTax:      annualTax,
		WithheldToDate: withheld,
		Divisor:        window.Divisor,
	}
	if window.OnFullEstimate {
		w.Basis = annualTax
	} else {
		w.Basis = annualTax.Sub(withheld)
	}
	w.Amount = generic.Floor0(w.Basis.Div(decimal.NewFromInt(int64(window.Divisor))))
	return w, nil
}
