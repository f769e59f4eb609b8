package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// YearInputs describe one employee over a full fiscal year. Months[i] is
// calendar month i+1; its Month field is overwritten.
type YearInputs struct {
	Profile  EmployeeProfile     `json:"profile"`
	Months   [12]MonthParameters `json:"months"`
	Expenses DeductibleExpenses  `json:"expenses"`
}

// YearResult holds the twelve chained payslips and the annual totals.
type YearResult struct {
	Payslips   [12]PayslipResult `json:"payslips"`
	YearToDate YearToDate        `json:"year_to_date"`

	TotalGross         decimal.Decimal `json:"total_gross"`
	TotalGratuity      decimal.Decimal `json:"total_gratuity"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalWithheld      decimal.Decimal `json:"total_withheld"`
	TotalNet           decimal.Decimal `json:"total_net"`
	AnnualTax          decimal.Decimal `json:"annual_tax"`
}

// SimulateYear chains twelve monthly payslips. Each month consumes the
// accumulators of the previous ones, and the July and December gratuities
// take their semester history from the simulated Jan-Jun and Jul-Dec months.
func SimulateYear(cfg Config, in YearInputs) (YearResult, error) {
	var (
		res     YearResult
		ytd     YearToDate
		first   SemesterHistory
		second  SemesterHistory
		history SemesterHistory
	)

	for i := range in.Months {
		m := in.Months[i]
		m.Month = i + 1

		income := ComputeIncome(cfg, in.Profile, m)
		if i < SemesterMonths {
			first.Record(i, income)
			history = first
		} else {
			second.Record(i-SemesterMonths, income)
			history = second
		}
		if m.Month == 7 {
			history = first
		}

		slip, err := ComputeMonthlyPayslip(cfg, PayslipInputs{
			Profile:    in.Profile,
			Month:      m,
			YearToDate: ytd,
			Expenses:   in.Expenses,
			History:    history,
		})
		if err != nil {
			return YearResult{}, fmt.Errorf("month %d: %w", m.Month, err)
		}

		res.Payslips[i] = slip
		ytd = ytd.Add(slip.TaxBase, slip.ContributionBase, slip.Withholding.Amount)

		res.TotalGross = generic.Sum(res.TotalGross, slip.GrossPay)
		res.TotalGratuity = generic.Sum(res.TotalGratuity, slip.Gratuity.Total())
		res.TotalContributions = generic.Sum(res.TotalContributions, slip.Contribution.Total)
		res.TotalNet = generic.Sum(res.TotalNet, slip.NetPay)
	}

	res.YearToDate = ytd
	res.TotalWithheld = ytd.Withheld
	res.AnnualTax = res.Payslips[11].Tax.AnnualTax
	return res, nil
}
