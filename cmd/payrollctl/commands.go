package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/severance"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// app carries the state shared by every subcommand once the root has run
// its setup.
type app struct {
	configPath string
	file       string
	verbose    bool

	logger *zap.Logger
	cfg    payroll.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "payrollctl",
		Short:             "Peruvian payroll calculations from JSON request files",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("PAYROLL_CONFIG"), "fiscal configuration YAML (built-in 2025 values if empty)")
	root.PersistentFlags().StringVarP(&a.file, "file", "f", "-", `request file, "-" for stdin`)
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "debug logging on stderr")

	root.AddCommand(
		a.payslipCommand(),
		a.integralCommand(),
		a.simulateCommand(),
		a.fundCommand(),
		a.severanceCommand(),
		a.vacationCommand(),
		a.configCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	zc := zap.NewDevelopmentConfig()
	if !a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return err
	}
	a.logger = logger.Named("payrollctl")

	a.cfg = payroll.DefaultConfig()
	if a.configPath != "" {
		if a.cfg, err = factory.LoadFiscalConfig(a.configPath); err != nil {
			return fmt.Errorf("load %s: %w", a.configPath, err)
		}
	}
	a.logger.Debug("fiscal configuration",
		zap.Int("fiscal_year", a.cfg.FiscalYear),
		zap.String("tax_unit", a.cfg.TaxUnit.String()),
		zap.String("command", cmd.Name()),
	)
	return nil
}

// =============================================================================
// PAYROLL COMMANDS
// =============================================================================

func (a *app) payslipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "payslip",
		Short: "Compute one monthly payslip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in payroll.PayslipInputs
			if err := a.read(cmd, &in); err != nil {
				return err
			}
			system, err := payroll.ParsePensionSystem(string(in.Profile.PensionSystem))
			if err != nil {
				return err
			}
			in.Profile.PensionSystem = system

			slip, err := payroll.ComputeMonthlyPayslip(a.cfg, in)
			if err != nil {
				return err
			}
			return a.write(cmd, slip)
		},
	}
}

func (a *app) integralCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "integral",
		Short: "Compute a payslip under an integral annual remuneration pact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req struct {
				payroll.IntegralInputs
				Expenses payroll.DeductibleExpenses `json:"expenses"`
			}
			if err := a.read(cmd, &req); err != nil {
				return err
			}
			system, err := payroll.ParsePensionSystem(string(req.PensionSystem))
			if err != nil {
				return err
			}
			req.PensionSystem = system

			res, err := payroll.ComputeIntegralAnnualPayslip(a.cfg, req.IntegralInputs, req.Expenses)
			if err != nil {
				return err
			}
			if !res.Eligible {
				a.logger.Warn("integral remuneration not eligible", zap.String("reason", res.Reason))
			}
			return a.write(cmd, res)
		},
	}
}

func (a *app) simulateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Chain twelve monthly payslips for one employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in payroll.YearInputs
			if err := a.read(cmd, &in); err != nil {
				return err
			}
			system, err := payroll.ParsePensionSystem(string(in.Profile.PensionSystem))
			if err != nil {
				return err
			}
			in.Profile.PensionSystem = system

			year, err := payroll.SimulateYear(a.cfg, in)
			if err != nil {
				return err
			}
			return a.write(cmd, year)
		},
	}
}

func (a *app) fundCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fund",
		Short: "Compute a semestral severance-fund deposit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in payroll.FundDepositInputs
			if err := a.read(cmd, &in); err != nil {
				return err
			}
			deposit, err := payroll.ComputeFundDeposit(a.cfg, in)
			if err != nil {
				return err
			}
			return a.write(cmd, deposit)
		},
	}
}

// =============================================================================
// SEVERANCE COMMANDS
// =============================================================================

func (a *app) severanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "severance",
		Short: "Settle a termination",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req struct {
				severance.Case
				History payroll.SemesterHistory `json:"history"`
			}
			if err := a.read(cmd, &req); err != nil {
				return err
			}
			cause, err := severance.ParseCause(string(req.Cause))
			if err != nil {
				return err
			}
			req.Cause = cause

			res, err := severance.ComputeSeverance(req.Case, req.History)
			if err != nil {
				return err
			}
			for _, note := range res.Notes {
				a.logger.Warn("benefit excluded", zap.String("note", note))
			}
			return a.write(cmd, res)
		},
	}
}

func (a *app) vacationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vacation",
		Short: "Compute the indemnity for vacation periods that expired unused",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req struct {
				BasicRemuneration       decimal.Decimal `json:"basic_remuneration"`
				ExpiredPeriods          int             `json:"expired_periods"`
				PartTime                bool            `json:"part_time"`
				ForfeitedVacationRecord bool            `json:"forfeited_vacation_record"`
			}
			if err := a.read(cmd, &req); err != nil {
				return err
			}
			return a.write(cmd, severance.ComputeUnusedVacationIndemnity(
				req.BasicRemuneration,
				req.ExpiredPeriods,
				req.PartTime,
				req.ForfeitedVacationRecord,
			))
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the active fiscal configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(factory.NewFiscalFactory().ToDocument(a.cfg)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// =============================================================================
// I/O
// =============================================================================

func (a *app) read(cmd *cobra.Command, dst any) error {
	var r io.Reader = cmd.InOrStdin()
	if a.file != "-" {
		f, err := os.Open(a.file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func (a *app) write(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
