package payroll_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	return generic.MustParseDecimal(s)
}

// assertMoney compares amounts to the cent.
func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.Round(2).StringFixed(2), msgAndArgs...)
}

func profile(salary string, system payroll.PensionSystem) payroll.EmployeeProfile {
	return payroll.EmployeeProfile{BaseSalary: money(salary), PensionSystem: system}
}

// =============================================================================
// INCOME TESTS
// =============================================================================

func TestComputeIncome_AbsencesOvertimeAndNightWork(t *testing.T) {
	// GIVEN: 3000 base, 3 absence days, 2h/1h/8h overtime, 10 night hours
	// WHEN: Computing the month's income
	// THEN: Hourly rate comes from the absence-adjusted base (2700/240 = 11.25)

	cfg := payroll.DefaultConfig()
	p := profile("3000", payroll.PensionONP)
	p.HasDependents = true

	income := payroll.ComputeIncome(cfg, p, payroll.MonthParameters{
		Month:              3,
		AbsenceDays:        3,
		NightHours:         money("10"),
		OvertimeFirstTier:  money("2"),
		OvertimeSecondTier: money("1"),
		OvertimeHoliday:    money("8"),
	})

	assertMoney(t, "300.00", income.AbsenceDeduction)
	assertMoney(t, "2700.00", income.AdjustedBase)
	assertMoney(t, "11.25", income.HourlyRate)
	assert.Equal(t, "28.125", income.Overtime.FirstTier.String())
	assert.Equal(t, "15.1875", income.Overtime.SecondTier.String())
	assert.Equal(t, "180", income.Overtime.Holiday.String())
	assert.Equal(t, "223.3125", income.Overtime.Total.String())
	assert.Equal(t, "39.375", income.NightDifferential.String())
	assertMoney(t, "113.00", income.FamilyAllowance)
	assert.Equal(t, "3075.6875", income.ContributionBase().String())
}

func TestComputeIncome_AbsencesBeyondMonthFloorAtZero(t *testing.T) {
	cfg := payroll.DefaultConfig()

	income := payroll.ComputeIncome(cfg, profile("3000", payroll.PensionONP), payroll.MonthParameters{
		Month:             1,
		AbsenceDays:       31,
		OvertimeFirstTier: money("4"),
	})

	assert.True(t, income.AdjustedBase.IsZero())
	assertMoney(t, "3000.00", income.AbsenceDeduction)
	assert.True(t, income.HourlyRate.IsZero())
	assert.True(t, income.Overtime.Total.IsZero())
}

func TestFamilyAllowance_IndependentOfAbsences(t *testing.T) {
	// GIVEN: An employee with dependents absent 20 days
	// THEN: The allowance is still the full 10% of the minimum wage

	cfg := payroll.DefaultConfig()
	p := profile("2000", payroll.PensionONP)
	p.HasDependents = true

	income := payroll.ComputeIncome(cfg, p, payroll.MonthParameters{Month: 2, AbsenceDays: 20})
	assertMoney(t, "113.00", income.FamilyAllowance)

	assert.True(t, payroll.FamilyAllowance(cfg, false).IsZero())
}

func TestHourlyRate_NonPositiveBase(t *testing.T) {
	assert.True(t, payroll.HourlyRate(money("0")).IsZero())
	assert.True(t, payroll.HourlyRate(money("-100")).IsZero())
	assert.Equal(t, "12.5", payroll.HourlyRate(money("3000")).String())
}

func TestNightDifferential_NonPositiveHours(t *testing.T) {
	cfg := payroll.DefaultConfig()
	assert.True(t, payroll.NightDifferential(cfg, money("12.5"), money("0")).IsZero())
	assert.True(t, payroll.NightDifferential(cfg, money("12.5"), money("-3")).IsZero())
}

// =============================================================================
// CONTRIBUTION TESTS
// =============================================================================

func TestComputeContribution_Public(t *testing.T) {
	c, err := payroll.ComputeContribution(payroll.DefaultConfig(), money("3000"), payroll.PensionONP)

	require.NoError(t, err)
	assertMoney(t, "390.00", c.Total)
	assert.True(t, c.Premium.IsZero())
}

func TestComputeContribution_PrivateAboveInsurableCap(t *testing.T) {
	// GIVEN: Private pension with a 20000 base, above the 12234.34 cap
	// WHEN: Computing the discount
	// THEN: The mandatory 10% uses 20000, the 1.74% premium uses the cap

	c, err := payroll.ComputeContribution(payroll.DefaultConfig(), money("20000"), payroll.PensionPrima)
	require.NoError(t, err)

	assertMoney(t, "2000.00", c.Mandatory)
	assert.Equal(t, "12234.34", c.InsuredBase.String())
	assert.Equal(t, "212.877516", c.Premium.String())
	assert.Equal(t, "2212.877516", c.Total.String())

	// Not 1.74% of 20000
	assert.False(t, c.Premium.Equal(money("348")))
}

func TestComputeContribution_PrivateBelowCap(t *testing.T) {
	c, err := payroll.ComputeContribution(payroll.DefaultConfig(), money("5000"), payroll.PensionHabitat)
	require.NoError(t, err)

	assert.Equal(t, "5000", c.InsuredBase.String())
	assertMoney(t, "587.00", c.Total)
}

func TestComputeContribution_UnknownSystemIsAnError(t *testing.T) {
	_, err := payroll.ComputeContribution(payroll.DefaultConfig(), money("3000"), payroll.PensionSystem("SNP"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrUnknownPensionSystem))
	assert.True(t, generic.IsClientError(err))
}

func TestParsePensionSystem(t *testing.T) {
	cases := map[string]payroll.PensionSystem{
		"onp":         payroll.PensionONP,
		" Prima ":     payroll.PensionPrima,
		"AFP-HABITAT": payroll.PensionHabitat,
		"afp integra": payroll.PensionIntegra,
		"PROFUTURO":   payroll.PensionProfuturo,
	}
	for input, want := range cases {
		got, err := payroll.ParsePensionSystem(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := payroll.ParsePensionSystem("pension-x")
	var unknown *payroll.UnknownPensionSystemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "pension-x", unknown.Selector)
}
