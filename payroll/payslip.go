/*
payslip.go - Monthly payslip orchestrator

PURPOSE:
  Composes the component calculators into one PayslipResult. Single pass, no
  retries, no state:

    1. Income components (absences, overtime, night work, family allowance)
    2. Contribution base = adjusted salary + allowance + night + overtime + other
    3. Tax base = contribution base + non-remunerative + meal voucher
                  + profit share + subsidy
    4. Gratuity and extraordinary bonus (July and December only)
    5. Annual projection -> annual tax -> monthly withholding
    6. Pension discount on the contribution base
    7. Totals and ratios

  The gratuity and extraordinary bonus are added to gross pay but to neither
  base; they are exempt from contributions and handled outside the monthly
  withholding.

ERRORS:
  Only structurally invalid input fails: month outside 1-12, negative salary
  or absences, an unknown pension system. Everything else, including a
  negative withholding, is a valid result.

SEE ALSO:
  - integral.go: Same tail for the integral annual remuneration
  - simulation.go: Twelve chained payslips
*/
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// PayslipInputs groups the inputs of one monthly calculation by role.
type PayslipInputs struct {
	Profile    EmployeeProfile    `json:"profile"`
	Month      MonthParameters    `json:"month"`
	YearToDate YearToDate         `json:"year_to_date"`
	Expenses   DeductibleExpenses `json:"expenses"`

	// Jan-Jun for July, Jul-Dec for December. Ignored in other months.
	History SemesterHistory `json:"history"`
}

// PayslipResult is a read-only snapshot of one month.
type PayslipResult struct {
	Month         int           `json:"month"`
	PensionSystem PensionSystem `json:"pension_system"`
	HasHealthPlan bool          `json:"has_health_plan"`

	Income          IncomeComponents `json:"income"`
	NonRemunerative decimal.Decimal  `json:"non_remunerative"`
	MealVoucher     decimal.Decimal  `json:"meal_voucher"`
	ProfitShare     decimal.Decimal  `json:"profit_share"`
	Subsidy         decimal.Decimal  `json:"subsidy"`
	Regularity      Regularity       `json:"regularity"`
	Gratuity        Gratuity         `json:"gratuity"`

	ContributionBase decimal.Decimal `json:"contribution_base"`
	TaxBase          decimal.Decimal `json:"tax_base"`
	GrossPay         decimal.Decimal `json:"gross_pay"`

	Projection   Projection    `json:"projection"`
	Tax          TaxAssessment `json:"tax"`
	Withholding  Withholding   `json:"withholding"`
	Contribution Contribution  `json:"contribution"`

	MealVoucherDeduction decimal.Decimal `json:"meal_voucher_deduction"`
	FixedDeductions      decimal.Decimal `json:"fixed_deductions"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	NetPay               decimal.Decimal `json:"net_pay"`

	NetToGrossRatio   decimal.Decimal `json:"net_to_gross_ratio"`
	NetToNominalRatio decimal.Decimal `json:"net_to_nominal_ratio"`
}

// ComputeMonthlyPayslip runs the full monthly pipeline.
func ComputeMonthlyPayslip(cfg Config, in PayslipInputs) (PayslipResult, error) {
	if err := validateInputs(in.Profile, in.Month); err != nil {
		return PayslipResult{}, err
	}
	m := in.Month

	r := PayslipResult{
		Month:           m.Month,
		PensionSystem:   in.Profile.PensionSystem,
		HasHealthPlan:   in.Profile.HasHealthPlan,
		Income:          ComputeIncome(cfg, in.Profile, m),
		NonRemunerative: generic.Floor0(m.NonRemunerative),
		MealVoucher:     generic.Floor0(m.MealVoucher),
		ProfitShare:     generic.Floor0(m.ProfitShare),
		Subsidy:         generic.Floor0(m.Subsidy),
		FixedDeductions: generic.Floor0(m.FixedDeductions),
	}

	r.ContributionBase = r.Income.ContributionBase()
	r.TaxBase = generic.Sum(r.ContributionBase, r.NonRemunerative, r.MealVoucher, r.ProfitShare, r.Subsidy)

	if IsGratuityMonth(m.Month) {
		r.Regularity = RegularAverage(in.History)
		months := m.SemesterMonthsWorked
		if months == 0 {
			months = SemesterMonths
		}
		base := generic.Sum(r.Income.AdjustedBase, r.Income.FamilyAllowance, r.Regularity.Total)
		r.Gratuity = ComputeGratuity(cfg, base, months, in.History.TotalAbsenceDays(), in.Profile.HasHealthPlan)
	}
	r.GrossPay = r.TaxBase.Add(r.Gratuity.Total())

	r.Projection = ProjectAnnualIncome(cfg, in.Profile, m, in.YearToDate, r.TaxBase, r.ContributionBase)
	r.MealVoucherDeduction = r.MealVoucher

	if err := settle(cfg, &r, in.YearToDate, in.Expenses); err != nil {
		return PayslipResult{}, err
	}
	r.NetToNominalRatio = generic.Ratio(r.NetPay, r.Income.NominalBase)
	return r, nil
}

// settle runs the shared tail: annual tax, withholding, pension discount and
// totals. The projection and both bases must already be set.
func settle(cfg Config, r *PayslipResult, ytd YearToDate, expenses DeductibleExpenses) error {
	r.Tax = AnnualTax(cfg, r.Projection.AnnualTaxBase, r.Projection.AnnualHealthBase, expenses, r.HasHealthPlan)

	withholding, err := MonthlyWithholding(cfg, r.Month, r.Tax.AnnualTax, ytd.Withheld)
	if err != nil {
		return err
	}
	r.Withholding = withholding

	contribution, err := ComputeContribution(cfg, r.ContributionBase, r.PensionSystem)
	if err != nil {
		return err
	}
	r.Contribution = contribution

	r.TotalDeductions = generic.Sum(
		r.Contribution.Total,
		r.Withholding.Amount,
		r.MealVoucherDeduction,
		r.FixedDeductions,
	)
	r.NetPay = r.GrossPay.Sub(r.TotalDeductions)
	r.NetToGrossRatio = generic.Ratio(r.NetPay, r.GrossPay)
	return nil
}
