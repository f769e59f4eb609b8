package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// EmployerRates are the employer-side rates that vary per company: the
// occupational risk insurance (SCTR), the training levy (SENATI) and a flat
// monthly life-insurance premium.
type EmployerRates struct {
	OccupationalRiskRate decimal.Decimal `json:"occupational_risk_rate"`
	TrainingLevyRate     decimal.Decimal `json:"training_levy_rate"`
	LifeInsurancePremium decimal.Decimal `json:"life_insurance_premium"`
}

// EmployerCost is what one payslip costs the employer.
type EmployerCost struct {
	ContributionBase   decimal.Decimal `json:"contribution_base"`
	Health             decimal.Decimal `json:"health"`
	OccupationalRisk   decimal.Decimal `json:"occupational_risk"`
	TrainingLevy       decimal.Decimal `json:"training_levy"`
	LifeInsurance      decimal.Decimal `json:"life_insurance"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	TotalLaborCost     decimal.Decimal `json:"total_labor_cost"`
	CostToNominalRatio decimal.Decimal `json:"cost_to_nominal_ratio"`
	CostToGrossRatio   decimal.Decimal `json:"cost_to_gross_ratio"`
}

// ComputeEmployerCost derives the employer contributions from a computed
// payslip. Rates apply to the contribution base; the life-insurance premium
// is a fixed amount.
func ComputeEmployerCost(cfg Config, payslip PayslipResult, rates EmployerRates) EmployerCost {
	base := payslip.ContributionBase
	c := EmployerCost{
		ContributionBase: base,
		Health:           base.Mul(cfg.EmployerHealthRate),
		OccupationalRisk: base.Mul(generic.Floor0(rates.OccupationalRiskRate)),
		TrainingLevy:     base.Mul(generic.Floor0(rates.TrainingLevyRate)),
		LifeInsurance:    generic.Floor0(rates.LifeInsurancePremium),
		GrossPay:         payslip.GrossPay,
	}
	c.TotalContributions = generic.Sum(c.Health, c.OccupationalRisk, c.TrainingLevy, c.LifeInsurance)
	c.TotalLaborCost = c.GrossPay.Add(c.TotalContributions)
	c.CostToNominalRatio = generic.Ratio(c.TotalLaborCost, payslip.Income.NominalBase)
	c.CostToGrossRatio = generic.Ratio(c.TotalLaborCost, c.GrossPay)
	return c
}
