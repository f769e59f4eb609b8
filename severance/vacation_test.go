package severance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/payroll-engine/severance"
)

func TestUnusedVacationIndemnity(t *testing.T) {
	cases := []struct {
		name      string
		periods   int
		partTime  bool
		forfeited bool
		applies   bool
		total     string
	}{
		{"two expired periods", 2, false, false, true, "12000.00"},
		{"nothing expired", 0, false, false, true, "0.00"},
		{"negative periods clamp to zero", -1, false, false, true, "0.00"},
		{"part time", 2, true, false, false, "0.00"},
		{"forfeited record", 2, false, true, false, "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := severance.ComputeUnusedVacationIndemnity(money("3000"), tc.periods, tc.partTime, tc.forfeited)

			assert.Equal(t, tc.applies, v.Applies)
			assert.Equal(t, tc.total, cents(v.Total))
			if !tc.applies {
				assert.NotEmpty(t, v.Reason)
			}
		})
	}
}

func TestUnusedVacationIndemnity_PayAndIndemnityAreEqual(t *testing.T) {
	v := severance.ComputeUnusedVacationIndemnity(money("4250.50"), 1, false, false)

	assert.Equal(t, "4250.50", cents(v.VacationPay))
	assert.True(t, v.VacationPay.Equal(v.Indemnity))
	assert.Equal(t, "8501.00", cents(v.Total))
}
