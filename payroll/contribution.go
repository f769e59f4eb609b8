package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// Contribution is the employee pension discount. For the public system only
// Mandatory is set; private systems add an insurance premium computed on the
// base capped at the insurable maximum.
type Contribution struct {
	System        PensionSystem   `json:"system"`
	Base          decimal.Decimal `json:"base"`
	InsuredBase   decimal.Decimal `json:"insured_base"`
	Mandatory     decimal.Decimal `json:"mandatory"`
	Premium       decimal.Decimal `json:"premium"`
	Total         decimal.Decimal `json:"total"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// ComputeContribution applies the pension discount to a contribution base.
// The insurable cap bounds the premium only, never the mandatory part.
func ComputeContribution(cfg Config, base decimal.Decimal, system PensionSystem) (Contribution, error) {
	if !system.IsKnown() {
		return Contribution{}, &UnknownPensionSystemError{Selector: string(system)}
	}

	base = generic.Floor0(base)
	c := Contribution{System: system, Base: base}

	if system.IsPublic() {
		c.Mandatory = base.Mul(cfg.Pension.PublicRate)
	} else {
		c.InsuredBase = generic.MinOf(base, cfg.Pension.InsurableCap)
		c.Mandatory = base.Mul(cfg.Pension.PrivateContributionRate)
		c.Premium = c.InsuredBase.Mul(cfg.Pension.PrivateInsuranceRate)
	}

	c.Total = c.Mandatory.Add(c.Premium)
	c.EffectiveRate = generic.Ratio(c.Total, base)
	return c, nil
}
