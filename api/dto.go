/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Request types carry
  validation tags and selectors as plain strings; conversion functions turn
  them into the payroll and severance input structs. Results are returned
  as the domain result types wrapped in a calculation envelope.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO:     Nested request parts
  - *Response: Complex response wrappers

TYPES:
  Envelope:
    Envelope, Message, ErrorResponse

  Payslips:
    ProfileDTO, MonthDTO, PayslipRequest, IntegralRequest,
    EmployerCostRequest, EmployerCostResponse, SimulationRequest

  Severance:
    FundDepositRequest, SeveranceRequest, VacationIndemnityRequest

VALIDATION:
  Shape checks (ranges, required selectors, date format) run through
  go-playground/validator before conversion. Domain checks (negative
  salary, termination before hire, unknown pension system) stay in the
  calculation packages and come back as client errors.

MONEY:
  Amounts are shopspring decimals. They decode from JSON strings or numbers
  and always encode as strings.

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go, severance/types.go: Domain inputs
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/severance"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// Outcome of one calculation.
const (
	OutcomeSuccess    = "SUCCESS"
	OutcomeIneligible = "INELIGIBLE"
	OutcomeFailure    = "FAILURE"
)

// Message levels.
const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Message is an informational or blocking note attached to a calculation.
type Message struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope wraps every calculation response with its metadata.
type Envelope struct {
	CalculationID string    `json:"calculation_id"`
	StartedAt     string    `json:"started_at"`
	CompletedAt   string    `json:"completed_at"`
	DurationMs    int64     `json:"duration_ms"`
	Outcome       string    `json:"outcome"`
	Messages      []Message `json:"messages"`
	Result        any       `json:"result,omitempty"`
}

// ErrorResponse is returned for requests that never reach a calculation.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// PAYSLIP REQUESTS
// =============================================================================

// ProfileDTO is the stable part of an employee.
type ProfileDTO struct {
	BaseSalary    decimal.Decimal `json:"base_salary"`
	HasDependents bool            `json:"has_dependents"`
	PensionSystem string          `json:"pension_system" validate:"required"`
	HasHealthPlan bool            `json:"has_health_plan"`
}

// MonthDTO holds the variable facts of one month. Month may be omitted
// inside a year simulation.
type MonthDTO struct {
	Month       int `json:"month" validate:"omitempty,min=1,max=12"`
	AbsenceDays int `json:"absence_days" validate:"min=0,max=30"`

	NightHours         decimal.Decimal `json:"night_hours"`
	OvertimeFirstTier  decimal.Decimal `json:"overtime_first_tier"`
	OvertimeSecondTier decimal.Decimal `json:"overtime_second_tier"`
	OvertimeHoliday    decimal.Decimal `json:"overtime_holiday"`

	OtherAffectedIncome decimal.Decimal `json:"other_affected_income"`
	NonRemunerative     decimal.Decimal `json:"non_remunerative"`
	MealVoucher         decimal.Decimal `json:"meal_voucher"`
	ProfitShare         decimal.Decimal `json:"profit_share"`
	Subsidy             decimal.Decimal `json:"subsidy"`
	FixedDeductions     decimal.Decimal `json:"fixed_deductions"`

	SemesterMonthsWorked int `json:"semester_months_worked" validate:"min=0,max=6"`
}

// PayslipRequest is the body of POST /api/payslips.
type PayslipRequest struct {
	Profile    ProfileDTO                 `json:"profile"`
	Month      MonthDTO                   `json:"month"`
	YearToDate payroll.YearToDate         `json:"year_to_date"`
	Expenses   payroll.DeductibleExpenses `json:"expenses"`
	History    payroll.SemesterHistory    `json:"history"`
}

// IntegralRequest is the body of POST /api/payslips/integral.
type IntegralRequest struct {
	AnnualRemuneration decimal.Decimal            `json:"annual_remuneration"`
	PensionSystem      string                     `json:"pension_system" validate:"required"`
	HasHealthPlan      bool                       `json:"has_health_plan"`
	Month              int                        `json:"month" validate:"min=1,max=12"`
	WithheldToDate     decimal.Decimal            `json:"withheld_to_date"`
	FixedDeductions    decimal.Decimal            `json:"fixed_deductions"`
	Expenses           payroll.DeductibleExpenses `json:"expenses"`
}

// EmployerCostRequest is the body of POST /api/employer-costs.
type EmployerCostRequest struct {
	Payslip PayslipRequest        `json:"payslip"`
	Rates   payroll.EmployerRates `json:"rates"`
}

// EmployerCostResponse pairs the payslip with what it costs the employer.
type EmployerCostResponse struct {
	Payslip      payroll.PayslipResult `json:"payslip"`
	EmployerCost payroll.EmployerCost  `json:"employer_cost"`
}

// SimulationRequest is the body of POST /api/simulations/year.
type SimulationRequest struct {
	Profile  ProfileDTO                 `json:"profile"`
	Months   [12]MonthDTO               `json:"months" validate:"dive"`
	Expenses payroll.DeductibleExpenses `json:"expenses"`
}

// =============================================================================
// SEVERANCE REQUESTS
// =============================================================================

// FundDepositRequest is the body of POST /api/fund-deposits.
type FundDepositRequest struct {
	BasicRemuneration decimal.Decimal         `json:"basic_remuneration"`
	HasDependents     bool                    `json:"has_dependents"`
	LastGratuity      decimal.Decimal         `json:"last_gratuity"`
	MonthsWorked      int                     `json:"months_worked" validate:"min=0,max=6"`
	History           payroll.SemesterHistory `json:"history"`
}

// SeveranceRequest is the body of POST /api/severances. Dates are YYYY-MM-DD.
type SeveranceRequest struct {
	HireDate                string                  `json:"hire_date" validate:"required,datetime=2006-01-02"`
	TerminationDate         string                  `json:"termination_date" validate:"required,datetime=2006-01-02"`
	Cause                   string                  `json:"cause" validate:"required"`
	BasicRemuneration       decimal.Decimal         `json:"basic_remuneration"`
	LastGratuitySixth       decimal.Decimal         `json:"last_gratuity_sixth"`
	PartTime                bool                    `json:"part_time"`
	ForfeitedVacationRecord bool                    `json:"forfeited_vacation_record"`
	SemesterAbsenceDays     int                     `json:"semester_absence_days" validate:"min=0"`
	History                 payroll.SemesterHistory `json:"history"`
}

// VacationIndemnityRequest is the body of POST /api/vacation-indemnities.
type VacationIndemnityRequest struct {
	BasicRemuneration       decimal.Decimal `json:"basic_remuneration"`
	ExpiredPeriods          int             `json:"expired_periods" validate:"min=0"`
	PartTime                bool            `json:"part_time"`
	ForfeitedVacationRecord bool            `json:"forfeited_vacation_record"`
}

// =============================================================================
// CONVERSION
// =============================================================================

func (p ProfileDTO) toProfile() (payroll.EmployeeProfile, error) {
	system, err := payroll.ParsePensionSystem(p.PensionSystem)
	if err != nil {
		return payroll.EmployeeProfile{}, err
	}
	return payroll.EmployeeProfile{
		BaseSalary:    p.BaseSalary,
		HasDependents: p.HasDependents,
		PensionSystem: system,
		HasHealthPlan: p.HasHealthPlan,
	}, nil
}

func (m MonthDTO) toMonth() payroll.MonthParameters {
	return payroll.MonthParameters{
		Month:                m.Month,
		AbsenceDays:          m.AbsenceDays,
		NightHours:           m.NightHours,
		OvertimeFirstTier:    m.OvertimeFirstTier,
		OvertimeSecondTier:   m.OvertimeSecondTier,
		OvertimeHoliday:      m.OvertimeHoliday,
		OtherAffectedIncome:  m.OtherAffectedIncome,
		NonRemunerative:      m.NonRemunerative,
		MealVoucher:          m.MealVoucher,
		ProfitShare:          m.ProfitShare,
		Subsidy:              m.Subsidy,
		FixedDeductions:      m.FixedDeductions,
		SemesterMonthsWorked: m.SemesterMonthsWorked,
	}
}

func (r PayslipRequest) toInputs() (payroll.PayslipInputs, error) {
	profile, err := r.Profile.toProfile()
	if err != nil {
		return payroll.PayslipInputs{}, err
	}
	return payroll.PayslipInputs{
		Profile:    profile,
		Month:      r.Month.toMonth(),
		YearToDate: r.YearToDate,
		Expenses:   r.Expenses,
		History:    r.History,
	}, nil
}

func (r IntegralRequest) toInputs() (payroll.IntegralInputs, error) {
	system, err := payroll.ParsePensionSystem(r.PensionSystem)
	if err != nil {
		return payroll.IntegralInputs{}, err
	}
	return payroll.IntegralInputs{
		AnnualRemuneration: r.AnnualRemuneration,
		PensionSystem:      system,
		HasHealthPlan:      r.HasHealthPlan,
		Month:              r.Month,
		WithheldToDate:     r.WithheldToDate,
		FixedDeductions:    r.FixedDeductions,
	}, nil
}

func (r SimulationRequest) toInputs() (payroll.YearInputs, error) {
	profile, err := r.Profile.toProfile()
	if err != nil {
		return payroll.YearInputs{}, err
	}
	in := payroll.YearInputs{Profile: profile, Expenses: r.Expenses}
	for i, m := range r.Months {
		in.Months[i] = m.toMonth()
	}
	return in, nil
}

func (r FundDepositRequest) toInputs() payroll.FundDepositInputs {
	return payroll.FundDepositInputs{
		BasicRemuneration: r.BasicRemuneration,
		HasDependents:     r.HasDependents,
		LastGratuity:      r.LastGratuity,
		MonthsWorked:      r.MonthsWorked,
		History:           r.History,
	}
}

func (r SeveranceRequest) toCase() (severance.Case, error) {
	hire, err := generic.ParseDate(r.HireDate)
	if err != nil {
		return severance.Case{}, err
	}
	termination, err := generic.ParseDate(r.TerminationDate)
	if err != nil {
		return severance.Case{}, err
	}
	cause, err := severance.ParseCause(r.Cause)
	if err != nil {
		return severance.Case{}, err
	}
	return severance.Case{
		HireDate:                hire,
		TerminationDate:         termination,
		Cause:                   cause,
		BasicRemuneration:       r.BasicRemuneration,
		LastGratuitySixth:       r.LastGratuitySixth,
		PartTime:                r.PartTime,
		ForfeitedVacationRecord: r.ForfeitedVacationRecord,
		SemesterAbsenceDays:     r.SemesterAbsenceDays,
	}, nil
}
