package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/severance"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func TestPayslipFromStdin(t *testing.T) {
	// GIVEN: A 3000 ONP January request on stdin
	// WHEN: Running payrollctl payslip
	// THEN: The payslip JSON carries a 2610 net pay

	out, err := run(t, `{"profile": {"base_salary": "3000", "pension_system": "onp"}, "month": {"month": 1}}`, "payslip")
	require.NoError(t, err)

	var slip payroll.PayslipResult
	require.NoError(t, json.Unmarshal([]byte(out), &slip))
	assert.Equal(t, payroll.PensionONP, slip.PensionSystem)
	assert.Equal(t, "2610.00", slip.NetPay.StringFixed(2))
}

func TestSeveranceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dismissal.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"hire_date": "2023-01-01",
		"termination_date": "2025-04-10",
		"cause": "arbitrary-dismissal",
		"basic_remuneration": "4000"
	}`), 0o600))

	out, err := run(t, "", "severance", "-f", path)
	require.NoError(t, err)

	var res severance.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, severance.CauseArbitraryDismissal, res.Cause)
	assert.Equal(t, "18555.56", res.Total.Round(2).StringFixed(2))
}

func TestVacation(t *testing.T) {
	out, err := run(t, `{"basic_remuneration": "3000", "expired_periods": 2}`, "vacation")
	require.NoError(t, err)

	var v severance.VacationIndemnity
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Applies)
	assert.Equal(t, "12000.00", v.Total.StringFixed(2))
}

func TestConfigPrintsLoadableYAML(t *testing.T) {
	out, err := run(t, "", "config")
	require.NoError(t, err)

	cfg, err := factory.NewFiscalFactory().ParseConfig([]byte(out))
	require.NoError(t, err)
	assert.True(t, cfg.TaxUnit.Equal(payroll.DefaultConfig().TaxUnit))
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"unknown pension system", `{"profile": {"pension_system": "NONE"}, "month": {"month": 1}}`, []string{"payslip"}},
		{"malformed request", `{"profile":`, []string{"payslip"}},
		{"termination before hire", `{"hire_date": "2025-04-10", "termination_date": "2023-01-01", "cause": "RESIGNATION"}`, []string{"severance"}},
		{"missing config file", `{}`, []string{"vacation", "--config", "/nonexistent/fiscal.yaml"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.stdin, tc.args...)
			assert.Error(t, err)
		})
	}
}
