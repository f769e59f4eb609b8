package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// BRACKET TESTS
// =============================================================================

func TestBracketTax_AtEachBoundary(t *testing.T) {
	brackets := payroll.DefaultConfig().Tax.Brackets

	cases := []struct {
		income string
		want   string
	}{
		{"0", "0.00"},
		{"26750", "2140.00"},   // 5 UIT at 8%
		{"107000", "13375.00"}, // + 15 UIT at 14%
		{"187250", "27017.50"}, // + 15 UIT at 17%
		{"240750", "37717.50"}, // + 10 UIT at 20%
		{"300000", "55492.50"}, // + 59250 at 30%
	}

	for _, tc := range cases {
		got, _ := payroll.BracketTax(brackets, money(tc.income))
		assertMoney(t, tc.want, got, "income %s", tc.income)
	}
}

func TestBracketTax_MonotonicAndContinuous(t *testing.T) {
	// GIVEN: The default bracket table
	// WHEN: Sweeping taxable income from 0 to 400000
	// THEN: Tax never decreases, and crossing a boundary by one cent moves the
	//       tax by at most one cent times the top rate

	brackets := payroll.DefaultConfig().Tax.Brackets
	step := money("250")
	cent := money("0.01")
	maxJump := cent.Mul(money("0.30"))

	previous := decimal.Zero
	for income := decimal.Zero; income.LessThanOrEqual(money("400000")); income = income.Add(step) {
		tax, _ := payroll.BracketTax(brackets, income)
		if tax.LessThan(previous) {
			t.Fatalf("tax decreased at %s: %s < %s", income, tax, previous)
		}
		previous = tax
	}

	for _, b := range brackets {
		if b.Unbounded {
			continue
		}
		below, _ := payroll.BracketTax(brackets, b.UpTo)
		above, _ := payroll.BracketTax(brackets, b.UpTo.Add(cent))
		assert.True(t, above.Sub(below).LessThanOrEqual(maxJump),
			"discontinuity at %s: %s -> %s", b.UpTo, below, above)
	}
}

func TestBracketTax_SlicesCoverIncome(t *testing.T) {
	_, slices := payroll.BracketTax(payroll.DefaultConfig().Tax.Brackets, money("82550"))

	require.Len(t, slices, 2)
	assert.Equal(t, "26750", slices[0].Taxed.String())
	assert.Equal(t, "55800", slices[1].Taxed.String())
	assertMoney(t, "7812.00", slices[1].Tax)
}

// =============================================================================
// ANNUAL TAX TESTS
// =============================================================================

func TestAnnualTax_ExemptionOnly(t *testing.T) {
	cfg := payroll.DefaultConfig()

	a := payroll.AnnualTax(cfg, money("120000"), money("120000"), payroll.DeductibleExpenses{}, false)

	assertMoney(t, "37450.00", a.Exemption)
	assertMoney(t, "82550.00", a.NetTaxable)
	assertMoney(t, "9952.00", a.AnnualTax)
}

func TestAnnualTax_AdditionalDeductionCapped(t *testing.T) {
	// GIVEN: Weighted expenses worth 20000 (cap is 3 UIT = 16050)
	// THEN: Only 16050 is deducted

	cfg := payroll.DefaultConfig()
	expenses := payroll.DeductibleExpenses{
		Rent:                         money("20000"), // 6000
		MedicalFees:                  money("10000"), // 3000
		HotelsAndRestaurants:         money("40000"), // 6000
		HouseholdHealthContributions: money("5000"),  // 5000
	}

	a := payroll.AnnualTax(cfg, money("120000"), decimal.Zero, expenses, false)

	assertMoney(t, "20000.00", a.AdditionalDeductionClaimed)
	assertMoney(t, "16050.00", a.AdditionalDeduction)
	assertMoney(t, "66500.00", a.NetTaxable)
	assertMoney(t, "7705.00", a.AnnualTax)
}

func TestAnnualTax_HealthPlanCredit(t *testing.T) {
	cfg := payroll.DefaultConfig()

	a := payroll.AnnualTax(cfg, money("120000"), money("120000"), payroll.DeductibleExpenses{}, true)
	assertMoney(t, "2700.00", a.HealthPlanCredit)
	assertMoney(t, "7252.00", a.AnnualTax)

	// Credit larger than the tax floors at zero
	small := payroll.AnnualTax(cfg, money("40000"), money("40000"), payroll.DeductibleExpenses{}, true)
	assertMoney(t, "204.00", small.BracketTax)
	assert.True(t, small.AnnualTax.IsZero())
}

func TestAnnualTax_BelowExemption(t *testing.T) {
	a := payroll.AnnualTax(payroll.DefaultConfig(), money("36000"), decimal.Zero, payroll.DeductibleExpenses{}, false)

	assert.True(t, a.NetTaxable.IsZero())
	assert.True(t, a.AnnualTax.IsZero())
	assert.Empty(t, a.Brackets)
}

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestProjectAnnualIncome_TemplateExcludesOneTimeIncome(t *testing.T) {
	// GIVEN: March with 10000 salary, dependents, 200 meal voucher, 5000 profit share
	// WHEN: Projecting the year
	// THEN: Profit share counts once (in this month's tax base), never in the template

	cfg := payroll.DefaultConfig()
	p := profile("10000", payroll.PensionONP)
	p.HasDependents = true
	month := payroll.MonthParameters{
		Month:       3,
		MealVoucher: money("200"),
		ProfitShare: money("5000"),
	}
	ytd := payroll.YearToDate{TaxBase: money("20226"), HealthBase: money("20226")}

	proj := payroll.ProjectAnnualIncome(cfg, p, month, ytd, money("15313"), money("10113"))

	assert.Equal(t, 9, proj.RemainingMonths)
	assertMoney(t, "10113.00", proj.RemunerativeTemplate)
	assertMoney(t, "10313.00", proj.TaxTemplate)
	assertMoney(t, "128356.00", proj.AnnualTaxBase)    // 20226 + 15313 + 10313 x 9
	assertMoney(t, "121356.00", proj.AnnualHealthBase) // 20226 + 10113 + 10113 x 9
}

func TestProjectAnnualIncome_NightHoursScaledToFullMonth(t *testing.T) {
	// GIVEN: 20 night hours over 20 worked days (10 absences), 3000 nominal
	// THEN: Projected night hours are 30, paid at the nominal rate 12.5 x 35%

	cfg := payroll.DefaultConfig()
	month := payroll.MonthParameters{Month: 6, AbsenceDays: 10, NightHours: money("20")}

	proj := payroll.ProjectAnnualIncome(cfg, profile("3000", payroll.PensionONP), month,
		payroll.YearToDate{}, decimal.Zero, decimal.Zero)

	assertMoney(t, "30.00", proj.ProjectedNightHours)
	assertMoney(t, "131.25", proj.ProjectedNightPay)
	assertMoney(t, "3131.25", proj.RemunerativeTemplate)
}

func TestProjectAnnualIncome_DecemberProjectsNothing(t *testing.T) {
	proj := payroll.ProjectAnnualIncome(payroll.DefaultConfig(), profile("3000", payroll.PensionONP),
		payroll.MonthParameters{Month: 12}, payroll.YearToDate{TaxBase: money("33000")}, money("3000"), money("3000"))

	assert.Equal(t, 0, proj.RemainingMonths)
	assertMoney(t, "36000.00", proj.AnnualTaxBase)
}

// =============================================================================
// WITHHOLDING TESTS
// =============================================================================

func TestMonthlyWithholding_Schedule(t *testing.T) {
	cfg := payroll.DefaultConfig()
	annual := money("9952")

	cases := []struct {
		name     string
		month    int
		withheld string
		divisor  int
		want     string
	}{
		{"january divides the full estimate", 1, "0", 12, "829.33"},
		{"march ignores what was withheld", 3, "1658.67", 12, "829.33"},
		{"april", 4, "2488", 9, "829.33"},
		{"may", 5, "3317.33", 8, "829.33"},
		{"august", 8, "5000", 5, "990.40"},
		{"december takes the balance", 12, "9000", 1, "952.00"},
		{"over-withheld floors at zero", 12, "10000", 1, "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := payroll.MonthlyWithholding(cfg, tc.month, annual, money(tc.withheld))
			require.NoError(t, err)
			assert.Equal(t, tc.divisor, w.Divisor)
			assertMoney(t, tc.want, w.Amount)
		})
	}
}

func TestMonthlyWithholding_TwelveMonthsSumToAnnualTax(t *testing.T) {
	// GIVEN: A constant annual tax for the whole year
	// WHEN: Withholding month by month with the default schedule
	// THEN: The twelve amounts add up to the annual tax

	cfg := payroll.DefaultConfig()
	for _, annual := range []string{"9952", "1234.56", "37717.5"} {
		tax := money(annual)
		withheld := decimal.Zero
		for month := 1; month <= 12; month++ {
			w, err := payroll.MonthlyWithholding(cfg, month, tax, withheld)
			require.NoError(t, err)
			withheld = withheld.Add(w.Amount)
		}
		assertMoney(t, generic.Cents(tax).StringFixed(2), withheld, "annual %s", annual)
	}
}

func TestMonthlyWithholding_RejectsMonthOutsideYear(t *testing.T) {
	_, err := payroll.MonthlyWithholding(payroll.DefaultConfig(), 13, money("100"), decimal.Zero)
	assert.ErrorIs(t, err, generic.ErrInvalidInput)
}

func TestMonthlyWithholding_CustomSchedule(t *testing.T) {
	cfg := payroll.DefaultConfig()
	cfg.Tax.WithholdingSchedule = []payroll.WithholdingWindow{
		{FromMonth: 1, ToMonth: 11, Divisor: 12, OnFullEstimate: true},
		{FromMonth: 12, ToMonth: 12, Divisor: 1},
	}
	require.NoError(t, cfg.Validate())

	w, err := payroll.MonthlyWithholding(cfg, 9, money("1200"), money("800"))
	require.NoError(t, err)
	assertMoney(t, "100.00", w.Amount)
}
