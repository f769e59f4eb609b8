/*
Package factory converts fiscal-year YAML documents into payroll.Config.

PURPOSE:
  The legal constants change every year (UIT, minimum wage, insurable cap).
  Keeping them in a versioned YAML document lets payroll staff publish a new
  fiscal year without a code change. The factory reads the document, fills
  anything missing from payroll.DefaultConfig, converts thresholds expressed
  in UIT to absolute amounts and validates the result.

WHY UIT MULTIPLES?
  The income-tax law defines brackets, the exemption and the deduction cap as
  multiples of the tax unit. Writing them that way means a new fiscal year
  usually only changes tax_unit.

YAML SCHEMA (version 1):
  version: 1
  fiscal_year: 2025
  tax_unit: "5350"
  minimum_wage: "1130"
  pension:
    insurable_cap: "12234.34"
  tax:
    exemption_uit: "7"
    brackets:
      - {up_to_uit: "5", rate: "0.08"}
      - {rate: "0.30"}            # no bound: the last, unbounded bracket
    withholding_schedule:
      - {from_month: 1, to_month: 3, divisor: 12, on_full_estimate: true}

  Amounts are strings so they reach decimal.Decimal without a float detour.

USAGE:
  cfg, err := factory.LoadFiscalConfig("config/fiscal-2025.yaml")

  f := factory.NewFiscalFactory()
  doc := f.ToDocument(payroll.DefaultConfig())
  out, _ := yaml.Marshal(doc)

SEE ALSO:
  - payroll/config.go: Config and its defaults
  - config/fiscal-2025.yaml: The shipped document
*/
package factory

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only document version this factory reads.
const SchemaVersion = 1

// Statutory bracket bounds in UIT, used when a document omits the table.
var defaultBracketUnits = []int64{5, 20, 35, 45}

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

// FiscalDocument is the YAML representation of a payroll.Config. The API
// serves the same document as JSON.
type FiscalDocument struct {
	Version             int    `yaml:"version" json:"version"`
	FiscalYear          int    `yaml:"fiscal_year" json:"fiscal_year"`
	TaxUnit             string `yaml:"tax_unit,omitempty" json:"tax_unit,omitempty"`
	MinimumWage         string `yaml:"minimum_wage,omitempty" json:"minimum_wage,omitempty"`
	FamilyAllowanceRate string `yaml:"family_allowance_rate,omitempty" json:"family_allowance_rate,omitempty"`
	EmployerHealthRate  string `yaml:"employer_health_rate,omitempty" json:"employer_health_rate,omitempty"`
	NightSurchargeRate  string `yaml:"night_surcharge_rate,omitempty" json:"night_surcharge_rate,omitempty"`
	IntegralMinimumUIT  string `yaml:"integral_minimum_uit,omitempty" json:"integral_minimum_uit,omitempty"`

	Overtime *OvertimeYAML `yaml:"overtime,omitempty" json:"overtime,omitempty"`
	Pension  *PensionYAML  `yaml:"pension,omitempty" json:"pension,omitempty"`
	Tax      *TaxYAML      `yaml:"tax,omitempty" json:"tax,omitempty"`
	Gratuity *GratuityYAML `yaml:"gratuity,omitempty" json:"gratuity,omitempty"`
}

type OvertimeYAML struct {
	FirstTier  string `yaml:"first_tier,omitempty" json:"first_tier,omitempty"`
	SecondTier string `yaml:"second_tier,omitempty" json:"second_tier,omitempty"`
	Holiday    string `yaml:"holiday,omitempty" json:"holiday,omitempty"`
}

type PensionYAML struct {
	PublicRate              string `yaml:"public_rate,omitempty" json:"public_rate,omitempty"`
	PrivateContributionRate string `yaml:"private_contribution_rate,omitempty" json:"private_contribution_rate,omitempty"`
	PrivateInsuranceRate    string `yaml:"private_insurance_rate,omitempty" json:"private_insurance_rate,omitempty"`
	InsurableCap            string `yaml:"insurable_cap,omitempty" json:"insurable_cap,omitempty"`
}

type TaxYAML struct {
	ExemptionUIT              string            `yaml:"exemption_uit,omitempty" json:"exemption_uit,omitempty"`
	AdditionalDeductionCapUIT string            `yaml:"additional_deduction_cap_uit,omitempty" json:"additional_deduction_cap_uit,omitempty"`
	HealthPlanCreditRate      string            `yaml:"health_plan_credit_rate,omitempty" json:"health_plan_credit_rate,omitempty"`
	ExpenseRates              *ExpenseRatesYAML `yaml:"expense_rates,omitempty" json:"expense_rates,omitempty"`
	Brackets                  []BracketYAML     `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	WithholdingSchedule       []WindowYAML      `yaml:"withholding_schedule,omitempty" json:"withholding_schedule,omitempty"`
}

type ExpenseRatesYAML struct {
	Rent                         string `yaml:"rent,omitempty" json:"rent,omitempty"`
	MedicalFees                  string `yaml:"medical_fees,omitempty" json:"medical_fees,omitempty"`
	ProfessionalServices         string `yaml:"professional_services,omitempty" json:"professional_services,omitempty"`
	HouseholdHealthContributions string `yaml:"household_health_contributions,omitempty" json:"household_health_contributions,omitempty"`
	HotelsAndRestaurants         string `yaml:"hotels_and_restaurants,omitempty" json:"hotels_and_restaurants,omitempty"`
}

// BracketYAML bounds a bracket in UIT. An empty UpToUIT marks the last,
// unbounded bracket.
type BracketYAML struct {
	UpToUIT string `yaml:"up_to_uit,omitempty" json:"up_to_uit,omitempty"`
	Rate    string `yaml:"rate" json:"rate"`
}

type WindowYAML struct {
	FromMonth      int  `yaml:"from_month" json:"from_month"`
	ToMonth        int  `yaml:"to_month" json:"to_month"`
	Divisor        int  `yaml:"divisor" json:"divisor"`
	OnFullEstimate bool `yaml:"on_full_estimate,omitempty" json:"on_full_estimate,omitempty"`
}

type GratuityYAML struct {
	ExtraordinaryBonusRate           string `yaml:"extraordinary_bonus_rate,omitempty" json:"extraordinary_bonus_rate,omitempty"`
	ExtraordinaryBonusRateHealthPlan string `yaml:"extraordinary_bonus_rate_health_plan,omitempty" json:"extraordinary_bonus_rate_health_plan,omitempty"`
}

// =============================================================================
// FISCAL FACTORY
// =============================================================================

// FiscalFactory converts fiscal documents to payroll configurations.
type FiscalFactory struct{}

func NewFiscalFactory() *FiscalFactory {
	return &FiscalFactory{}
}

// LoadFiscalConfig reads and converts the YAML document at path.
func LoadFiscalConfig(path string) (payroll.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return payroll.Config{}, fmt.Errorf("failed to read fiscal config: %w", err)
	}
	cfg, err := NewFiscalFactory().ParseConfig(data)
	if err != nil {
		return payroll.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses a YAML document into a validated Config.
func (f *FiscalFactory) ParseConfig(data []byte) (payroll.Config, error) {
	var doc FiscalDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return payroll.Config{}, fmt.Errorf("failed to parse fiscal YAML: %w", err)
	}
	return f.FromDocument(doc)
}

// FromDocument overlays the document on the default configuration.
func (f *FiscalFactory) FromDocument(doc FiscalDocument) (payroll.Config, error) {
	if doc.Version != SchemaVersion {
		return payroll.Config{}, fmt.Errorf("%w: unsupported fiscal document version %d", payroll.ErrInvalidConfig, doc.Version)
	}

	cfg := payroll.DefaultConfig()
	if doc.FiscalYear != 0 {
		cfg.FiscalYear = doc.FiscalYear
	}

	p := &parser{}
	p.decimal("tax_unit", doc.TaxUnit, &cfg.TaxUnit)
	p.decimal("minimum_wage", doc.MinimumWage, &cfg.MinimumWage)
	p.decimal("family_allowance_rate", doc.FamilyAllowanceRate, &cfg.FamilyAllowanceRate)
	p.decimal("employer_health_rate", doc.EmployerHealthRate, &cfg.EmployerHealthRate)
	p.decimal("night_surcharge_rate", doc.NightSurchargeRate, &cfg.NightSurchargeRate)
	p.decimal("integral_minimum_uit", doc.IntegralMinimumUIT, &cfg.IntegralMinimumUnits)

	if o := doc.Overtime; o != nil {
		p.decimal("overtime.first_tier", o.FirstTier, &cfg.Overtime.FirstTier)
		p.decimal("overtime.second_tier", o.SecondTier, &cfg.Overtime.SecondTier)
		p.decimal("overtime.holiday", o.Holiday, &cfg.Overtime.Holiday)
	}
	if pn := doc.Pension; pn != nil {
		p.decimal("pension.public_rate", pn.PublicRate, &cfg.Pension.PublicRate)
		p.decimal("pension.private_contribution_rate", pn.PrivateContributionRate, &cfg.Pension.PrivateContributionRate)
		p.decimal("pension.private_insurance_rate", pn.PrivateInsuranceRate, &cfg.Pension.PrivateInsuranceRate)
		p.decimal("pension.insurable_cap", pn.InsurableCap, &cfg.Pension.InsurableCap)
	}
	if g := doc.Gratuity; g != nil {
		p.decimal("gratuity.extraordinary_bonus_rate", g.ExtraordinaryBonusRate, &cfg.Gratuity.ExtraordinaryBonusRate)
		p.decimal("gratuity.extraordinary_bonus_rate_health_plan", g.ExtraordinaryBonusRateHealthPlan, &cfg.Gratuity.ExtraordinaryBonusRateHealthPlan)
	}

	// Brackets are rebuilt from UIT multiples so they follow the tax unit.
	cfg.Tax.Brackets = bracketsFromUnits(cfg.TaxUnit, defaultBracketUnits, cfg.Tax.Brackets)
	if t := doc.Tax; t != nil {
		p.tax(t, &cfg)
	}
	if p.err != nil {
		return payroll.Config{}, p.err
	}

	if err := cfg.Validate(); err != nil {
		return payroll.Config{}, err
	}
	return cfg, nil
}

// ToDocument converts a Config back to its YAML representation.
func (f *FiscalFactory) ToDocument(cfg payroll.Config) FiscalDocument {
	doc := FiscalDocument{
		Version:             SchemaVersion,
		FiscalYear:          cfg.FiscalYear,
		TaxUnit:             cfg.TaxUnit.String(),
		MinimumWage:         cfg.MinimumWage.String(),
		FamilyAllowanceRate: cfg.FamilyAllowanceRate.String(),
		EmployerHealthRate:  cfg.EmployerHealthRate.String(),
		NightSurchargeRate:  cfg.NightSurchargeRate.String(),
		IntegralMinimumUIT:  cfg.IntegralMinimumUnits.String(),
		Overtime: &OvertimeYAML{
			FirstTier:  cfg.Overtime.FirstTier.String(),
			SecondTier: cfg.Overtime.SecondTier.String(),
			Holiday:    cfg.Overtime.Holiday.String(),
		},
		Pension: &PensionYAML{
			PublicRate:              cfg.Pension.PublicRate.String(),
			PrivateContributionRate: cfg.Pension.PrivateContributionRate.String(),
			PrivateInsuranceRate:    cfg.Pension.PrivateInsuranceRate.String(),
			InsurableCap:            cfg.Pension.InsurableCap.String(),
		},
		Tax: &TaxYAML{
			ExemptionUIT:              cfg.Tax.ExemptionUnits.String(),
			AdditionalDeductionCapUIT: cfg.Tax.AdditionalDeductionCapUnits.String(),
			HealthPlanCreditRate:      cfg.Tax.HealthPlanCreditRate.String(),
			ExpenseRates: &ExpenseRatesYAML{
				Rent:                         cfg.Tax.ExpenseRates.Rent.String(),
				MedicalFees:                  cfg.Tax.ExpenseRates.MedicalFees.String(),
				ProfessionalServices:         cfg.Tax.ExpenseRates.ProfessionalServices.String(),
				HouseholdHealthContributions: cfg.Tax.ExpenseRates.HouseholdHealthContributions.String(),
				HotelsAndRestaurants:         cfg.Tax.ExpenseRates.HotelsAndRestaurants.String(),
			},
		},
		Gratuity: &GratuityYAML{
			ExtraordinaryBonusRate:           cfg.Gratuity.ExtraordinaryBonusRate.String(),
			ExtraordinaryBonusRateHealthPlan: cfg.Gratuity.ExtraordinaryBonusRateHealthPlan.String(),
		},
	}

	for _, b := range cfg.Tax.Brackets {
		by := BracketYAML{Rate: b.Rate.String()}
		if !b.Unbounded && cfg.TaxUnit.IsPositive() {
			by.UpToUIT = b.UpTo.Div(cfg.TaxUnit).String()
		}
		doc.Tax.Brackets = append(doc.Tax.Brackets, by)
	}
	for _, w := range cfg.Tax.WithholdingSchedule {
		doc.Tax.WithholdingSchedule = append(doc.Tax.WithholdingSchedule, WindowYAML(w))
	}
	return doc
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

// parser keeps the first conversion error so the overlay reads top to bottom.
type parser struct {
	err error
}

func (p *parser) decimal(field, raw string, into *decimal.Decimal) {
	if p.err != nil || raw == "" {
		return
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		p.err = fmt.Errorf("%w: %s: %q is not a number", payroll.ErrInvalidConfig, field, raw)
		return
	}
	*into = d
}

func (p *parser) tax(t *TaxYAML, cfg *payroll.Config) {
	p.decimal("tax.exemption_uit", t.ExemptionUIT, &cfg.Tax.ExemptionUnits)
	p.decimal("tax.additional_deduction_cap_uit", t.AdditionalDeductionCapUIT, &cfg.Tax.AdditionalDeductionCapUnits)
	p.decimal("tax.health_plan_credit_rate", t.HealthPlanCreditRate, &cfg.Tax.HealthPlanCreditRate)

	if e := t.ExpenseRates; e != nil {
		rates := &cfg.Tax.ExpenseRates
		p.decimal("tax.expense_rates.rent", e.Rent, &rates.Rent)
		p.decimal("tax.expense_rates.medical_fees", e.MedicalFees, &rates.MedicalFees)
		p.decimal("tax.expense_rates.professional_services", e.ProfessionalServices, &rates.ProfessionalServices)
		p.decimal("tax.expense_rates.household_health_contributions", e.HouseholdHealthContributions, &rates.HouseholdHealthContributions)
		p.decimal("tax.expense_rates.hotels_and_restaurants", e.HotelsAndRestaurants, &rates.HotelsAndRestaurants)
	}

	if len(t.Brackets) > 0 {
		brackets := make([]payroll.Bracket, 0, len(t.Brackets))
		for i, by := range t.Brackets {
			var b payroll.Bracket
			p.decimal(fmt.Sprintf("tax.brackets[%d].rate", i), by.Rate, &b.Rate)
			if by.UpToUIT == "" {
				b.Unbounded = true
			} else {
				var units decimal.Decimal
				p.decimal(fmt.Sprintf("tax.brackets[%d].up_to_uit", i), by.UpToUIT, &units)
				b.UpTo = cfg.TaxUnit.Mul(units)
			}
			brackets = append(brackets, b)
		}
		cfg.Tax.Brackets = brackets
	}

	if len(t.WithholdingSchedule) > 0 {
		schedule := make([]payroll.WithholdingWindow, 0, len(t.WithholdingSchedule))
		for _, w := range t.WithholdingSchedule {
			schedule = append(schedule, payroll.WithholdingWindow(w))
		}
		cfg.Tax.WithholdingSchedule = schedule
	}
}

// bracketsFromUnits rebuilds the bounded brackets of the default table on a
// new tax unit, keeping the rates.
func bracketsFromUnits(taxUnit decimal.Decimal, units []int64, rates []payroll.Bracket) []payroll.Bracket {
	out := make([]payroll.Bracket, 0, len(rates))
	for i, b := range rates {
		if i < len(units) && !b.Unbounded {
			b.UpTo = taxUnit.Mul(decimal.NewFromInt(units[i]))
		}
		out = append(out, b)
	}
	return out
}
