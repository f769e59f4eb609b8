package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

func series(values ...string) [payroll.SemesterMonths]decimal.Decimal {
	var out [payroll.SemesterMonths]decimal.Decimal
	for i, v := range values {
		out[i] = money(v)
	}
	return out
}

func TestRegularAverage_TwoMonthsContributeNothing(t *testing.T) {
	r := payroll.RegularAverage(payroll.SemesterHistory{
		Overtime: series("400", "0", "500", "0", "0", "0"),
	})

	assert.Equal(t, 2, r.Overtime.MonthsPaid)
	assert.False(t, r.Overtime.Regular)
	assert.True(t, r.Overtime.Average.IsZero())
	assert.True(t, r.Total.IsZero())
}

func TestRegularAverage_ThreeMonthsContributeSumOverSix(t *testing.T) {
	// GIVEN: Night differential paid in exactly 3 of 6 months (100, 200, 300)
	// THEN: The series contributes 600 / 6 = 100, not 600 / 3

	r := payroll.RegularAverage(payroll.SemesterHistory{
		NightDifferential: series("100", "0", "200", "0", "300", "0"),
	})

	assert.True(t, r.NightDifferential.Regular)
	assert.Equal(t, "100", r.NightDifferential.Average.String())
	assert.Equal(t, "100", r.Total.String())
}

func TestRegularAverage_SeriesAreIndependent(t *testing.T) {
	r := payroll.RegularAverage(payroll.SemesterHistory{
		Overtime:          series("60", "60", "60", "60", "60", "60"), // regular: 60
		NightDifferential: series("90", "90", "0", "0", "0", "0"),     // irregular
		OtherIncome:       series("0", "0", "0", "120", "120", "120"), // regular: 60
	})

	assert.Equal(t, "60", r.Overtime.Average.String())
	assert.True(t, r.NightDifferential.Average.IsZero())
	assert.Equal(t, "60", r.OtherIncome.Average.String())
	assert.Equal(t, "120", r.Total.String())
}

func TestSemesterHistory_RecordAndAbsences(t *testing.T) {
	cfg := payroll.DefaultConfig()
	var h payroll.SemesterHistory

	for i := 0; i < payroll.SemesterMonths; i++ {
		income := payroll.ComputeIncome(cfg, profile("2400", payroll.PensionONP), payroll.MonthParameters{
			Month:             i + 1,
			AbsenceDays:       1,
			OvertimeFirstTier: money("2"),
		})
		h.Record(i, income)
	}
	h.Record(7, payroll.IncomeComponents{}) // out of range, ignored

	require.Equal(t, 6, h.TotalAbsenceDays())
	r := payroll.RegularAverage(h)
	assert.True(t, r.Overtime.Regular)
	assert.Equal(t, 6, r.Overtime.MonthsPaid)
}
