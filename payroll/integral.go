package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// IntegralInputs describe one month under an integral annual remuneration
// pact: a single annual amount paid in twelve equal parts that already
// includes gratuities and the severance fund.
type IntegralInputs struct {
	AnnualRemuneration decimal.Decimal `json:"annual_remuneration"`
	PensionSystem      PensionSystem   `json:"pension_system"`
	HasHealthPlan      bool            `json:"has_health_plan"`
	Month              int             `json:"month"`
	WithheldToDate     decimal.Decimal `json:"withheld_to_date"`
	FixedDeductions    decimal.Decimal `json:"fixed_deductions"`
}

// IntegralResult is either an ineligibility signal or a payslip. Payslip is
// nil when Eligible is false.
type IntegralResult struct {
	Eligible       bool            `json:"eligible"`
	Reason         string          `json:"reason,omitempty"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	MinimumMonthly decimal.Decimal `json:"minimum_monthly"`
	Payslip        *PayslipResult  `json:"payslip,omitempty"`
}

// ComputeIntegralAnnualPayslip splits the annual amount in twelve. Below the
// statutory monthly minimum the pact is invalid and nothing else is computed.
// Otherwise the monthly amount is both contribution and tax base, and the tax
// projection is the annual amount itself.
func ComputeIntegralAnnualPayslip(cfg Config, in IntegralInputs, expenses DeductibleExpenses) (IntegralResult, error) {
	if err := validateMonth(in.Month); err != nil {
		return IntegralResult{}, err
	}
	if in.AnnualRemuneration.IsNegative() {
		return IntegralResult{}, invalidInput("annual_remuneration", "must not be negative")
	}
	if !in.PensionSystem.IsKnown() {
		return IntegralResult{}, &UnknownPensionSystemError{Selector: string(in.PensionSystem)}
	}

	res := IntegralResult{
		MonthlyAmount:  in.AnnualRemuneration.Div(monthsPerYear),
		MinimumMonthly: cfg.IntegralMinimumMonthly(),
	}
	if res.MonthlyAmount.LessThan(res.MinimumMonthly) {
		res.Reason = fmt.Sprintf("monthly equivalent %s is below the minimum of %s",
			generic.Cents(res.MonthlyAmount).StringFixed(2), res.MinimumMonthly.StringFixed(2))
		return res, nil
	}
	res.Eligible = true

	monthly := res.MonthlyAmount
	ytd := YearToDate{Withheld: in.WithheldToDate}
	r := PayslipResult{
		Month:            in.Month,
		PensionSystem:    in.PensionSystem,
		HasHealthPlan:    in.HasHealthPlan,
		Income:           IncomeComponents{NominalBase: monthly, AdjustedBase: monthly, HourlyRate: HourlyRate(monthly)},
		ContributionBase: monthly,
		TaxBase:          monthly,
		GrossPay:         monthly,
		FixedDeductions:  generic.Floor0(in.FixedDeductions),
		Projection: Projection{
			Month:                in.Month,
			RemainingMonths:      12 - in.Month,
			RemunerativeTemplate: monthly,
			TaxTemplate:          monthly,
			ActualTaxBase:        monthly.Mul(decimal.NewFromInt(int64(in.Month))),
			ActualHealthBase:     monthly.Mul(decimal.NewFromInt(int64(in.Month))),
			AnnualTaxBase:        in.AnnualRemuneration,
			AnnualHealthBase:     in.AnnualRemuneration,
		},
	}
	if err := settle(cfg, &r, ytd, expenses); err != nil {
		return IntegralResult{}, err
	}
	r.NetToNominalRatio = generic.Ratio(r.NetPay, monthly)
	res.Payslip = &r
	return res, nil
}
