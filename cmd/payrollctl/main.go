/*
main.go - Command-line payroll calculator

PURPOSE:
  Runs the same calculations as the HTTP API against JSON request files,
  for batch runs and for checking a fiscal configuration before deploying it.

COMMANDS:
  payslip     Monthly payslip              (payroll.PayslipInputs)
  integral    Integral annual remuneration (payroll.IntegralInputs + expenses)
  simulate    Twelve chained payslips      (payroll.YearInputs)
  severance   Termination settlement       (severance.Case + history)
  vacation    Unused vacation indemnity
  config      Print the active fiscal configuration as YAML

FLAGS:
  --config    Fiscal configuration YAML (default: $PAYROLL_CONFIG, built-in if empty)
  -f, --file  Request file, "-" for stdin (default "-")
  --verbose   Debug logging on stderr

EXAMPLES:
  payrollctl payslip -f january.json
  cat dismissal.json | payrollctl severance
  payrollctl config --config ./config/fiscal-2026.yaml

SEE ALSO:
  - api/dto.go: The HTTP equivalents of these request files
*/
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
