/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll and severance calculations via REST API. Handles HTTP
  request/response, JSON serialization, request validation, and delegates
  to the calculation packages.

ENDPOINTS:
  Configuration:
    GET    /api/config                  Active fiscal configuration

  Payslips:
    POST   /api/payslips                Monthly payslip
    POST   /api/payslips/integral       Integral annual remuneration payslip
    POST   /api/employer-costs          Payslip plus employer cost
    POST   /api/simulations/year        Twelve chained monthly payslips

  Severance:
    POST   /api/fund-deposits           Semestral severance-fund deposit
    POST   /api/severances              Termination settlement
    POST   /api/vacation-indemnities    Unused vacation indemnity

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Config: Fiscal-year constants, immutable for the life of the process
  - FiscalFactory: Config to document conversion for GET /api/config
  - Logger: zap logger for calculation failures

  Calculations are pure, so handlers share no mutable state and can serve
  concurrent requests without locking.

REQUEST FLOW:
  1. Decode JSON body (goccy/go-json)
  2. Validate shape (go-playground/validator)
  3. Convert to domain inputs
  4. Run the calculation inside an envelope (id, timestamps, outcome)
  5. Serialize response

ERROR HANDLING:
  - 400: Malformed JSON or failed validation (ErrorResponse)
  - 422: Domain rejection, e.g. unknown pension system or termination
         before hire (Envelope with outcome FAILURE)
  - 500: Anything else (Envelope with outcome FAILURE)

  Ineligibility is not an error: it returns 200 with outcome INELIGIBLE.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/severance"
	"go.uber.org/zap"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Config        payroll.Config
	FiscalFactory *factory.FiscalFactory
	Logger        *zap.Logger

	validate *validator.Validate
}

// NewHandler creates a handler serving calculations under cfg. A nil logger
// is replaced by a no-op logger.
func NewHandler(cfg payroll.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Config:        cfg,
		FiscalFactory: factory.NewFiscalFactory(),
		Logger:        logger.Named("api"),
		validate:      newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// =============================================================================
// CONFIGURATION ENDPOINTS
// =============================================================================

// GetConfig returns the active fiscal configuration as a fiscal document.
// GET /api/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.FiscalFactory.ToDocument(h.Config))
}

// =============================================================================
// PAYSLIP ENDPOINTS
// =============================================================================

// ComputePayslip computes one monthly payslip.
// POST /api/payslips
func (h *Handler) ComputePayslip(w http.ResponseWriter, r *http.Request) {
	var req PayslipRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "payslip", func() (any, string, []Message, error) {
		in, err := req.toInputs()
		if err != nil {
			return nil, "", nil, err
		}
		slip, err := payroll.ComputeMonthlyPayslip(h.Config, in)
		if err != nil {
			return nil, "", nil, err
		}
		return slip, OutcomeSuccess, payslipMessages(slip), nil
	})
}

// ComputeIntegralPayslip computes a payslip under an integral annual
// remuneration pact. Amounts below the statutory minimum are INELIGIBLE.
// POST /api/payslips/integral
func (h *Handler) ComputeIntegralPayslip(w http.ResponseWriter, r *http.Request) {
	var req IntegralRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "integral", func() (any, string, []Message, error) {
		in, err := req.toInputs()
		if err != nil {
			return nil, "", nil, err
		}
		res, err := payroll.ComputeIntegralAnnualPayslip(h.Config, in, req.Expenses)
		if err != nil {
			return nil, "", nil, err
		}
		if !res.Eligible {
			return res, OutcomeIneligible, []Message{warning("BELOW_INTEGRAL_MINIMUM", res.Reason)}, nil
		}
		return res, OutcomeSuccess, payslipMessages(*res.Payslip), nil
	})
}

// ComputeEmployerCost computes a payslip and what it costs the employer.
// POST /api/employer-costs
func (h *Handler) ComputeEmployerCost(w http.ResponseWriter, r *http.Request) {
	var req EmployerCostRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "employer_cost", func() (any, string, []Message, error) {
		in, err := req.Payslip.toInputs()
		if err != nil {
			return nil, "", nil, err
		}
		slip, err := payroll.ComputeMonthlyPayslip(h.Config, in)
		if err != nil {
			return nil, "", nil, err
		}
		return EmployerCostResponse{
			Payslip:      slip,
			EmployerCost: payroll.ComputeEmployerCost(h.Config, slip, req.Rates),
		}, OutcomeSuccess, payslipMessages(slip), nil
	})
}

// SimulateYear chains twelve monthly payslips for one employee.
// POST /api/simulations/year
func (h *Handler) SimulateYear(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "simulation", func() (any, string, []Message, error) {
		in, err := req.toInputs()
		if err != nil {
			return nil, "", nil, err
		}
		year, err := payroll.SimulateYear(h.Config, in)
		if err != nil {
			return nil, "", nil, err
		}
		var messages []Message
		for _, slip := range year.Payslips {
			messages = append(messages, payslipMessages(slip)...)
		}
		return year, OutcomeSuccess, messages, nil
	})
}

// =============================================================================
// SEVERANCE ENDPOINTS
// =============================================================================

// ComputeFundDeposit computes the semestral severance-fund deposit.
// POST /api/fund-deposits
func (h *Handler) ComputeFundDeposit(w http.ResponseWriter, r *http.Request) {
	var req FundDepositRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "fund_deposit", func() (any, string, []Message, error) {
		deposit, err := payroll.ComputeFundDeposit(h.Config, req.toInputs())
		if err != nil {
			return nil, "", nil, err
		}
		return deposit, OutcomeSuccess, nil, nil
	})
}

// ComputeSeverance settles a termination.
// POST /api/severances
func (h *Handler) ComputeSeverance(w http.ResponseWriter, r *http.Request) {
	var req SeveranceRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "severance", func() (any, string, []Message, error) {
		c, err := req.toCase()
		if err != nil {
			return nil, "", nil, err
		}
		res, err := severance.ComputeSeverance(c, req.History)
		if err != nil {
			return nil, "", nil, err
		}
		var messages []Message
		for _, note := range res.Notes {
			messages = append(messages, warning("BENEFIT_EXCLUDED", note))
		}
		return res, OutcomeSuccess, messages, nil
	})
}

// ComputeVacationIndemnity pays vacation periods that expired unused.
// POST /api/vacation-indemnities
func (h *Handler) ComputeVacationIndemnity(w http.ResponseWriter, r *http.Request) {
	var req VacationIndemnityRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.calculate(w, "vacation_indemnity", func() (any, string, []Message, error) {
		v := severance.ComputeUnusedVacationIndemnity(
			req.BasicRemuneration,
			req.ExpiredPeriods,
			req.PartTime,
			req.ForfeitedVacationRecord,
		)
		if !v.Applies {
			return v, OutcomeIneligible, []Message{warning("NO_VACATION_ENTITLEMENT", v.Reason)}, nil
		}
		return v, OutcomeSuccess, nil, nil
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads and validates the body into dst. It writes a 400 and returns
// false when the body is unusable.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", errors.New(validationMessage(err)))
		return false
	}
	return true
}

// calculate runs fn inside an envelope and writes it.
func (h *Handler) calculate(w http.ResponseWriter, name string, fn func() (any, string, []Message, error)) {
	id := uuid.New().String()
	started := time.Now().UTC()

	result, outcome, messages, err := fn()

	completed := time.Now().UTC()
	env := Envelope{
		CalculationID: id,
		StartedAt:     started.Format(time.RFC3339Nano),
		CompletedAt:   completed.Format(time.RFC3339Nano),
		DurationMs:    completed.Sub(started).Milliseconds(),
		Outcome:       outcome,
		Messages:      messages,
		Result:        result,
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
		if generic.IsClientError(err) {
			status = http.StatusUnprocessableEntity
		}
		env.Outcome = OutcomeFailure
		env.Result = nil
		env.Messages = append(env.Messages, Message{Level: LevelCritical, Code: errorCode(err), Message: err.Error()})

		h.Logger.Warn("calculation failed",
			zap.String("calculation_id", id),
			zap.String("calculation", name),
			zap.Int("status", status),
			zap.Error(err),
		)
	} else {
		h.Logger.Debug("calculation completed",
			zap.String("calculation_id", id),
			zap.String("calculation", name),
			zap.String("outcome", outcome),
		)
	}

	if env.Messages == nil {
		env.Messages = []Message{}
	}
	writeJSON(w, status, env)
}

func payslipMessages(slip payroll.PayslipResult) []Message {
	var messages []Message
	if slip.NetPay.IsNegative() {
		messages = append(messages, warning("NEGATIVE_NET_PAY",
			fmt.Sprintf("month %d: deductions exceed gross pay by %s", slip.Month, slip.NetPay.Neg().StringFixed(2))))
	}
	return messages
}

func warning(code, message string) Message {
	return Message{Level: LevelWarning, Code: code, Message: message}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, payroll.ErrUnknownPensionSystem):
		return "UNKNOWN_PENSION_SYSTEM"
	case errors.Is(err, generic.ErrInvalidPeriod):
		return "INVALID_PERIOD"
	case errors.Is(err, generic.ErrInvalidDate):
		return "INVALID_DATE"
	case errors.Is(err, generic.ErrInvalidInput):
		return "INVALID_INPUT"
	default:
		return "INTERNAL_ERROR"
	}
}

// validationMessage names the first failing field by its JSON path,
// e.g. "month.absence_days failed on max".
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}
	e := errs[0]
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return fmt.Sprintf("%s failed on %s", field, e.Tag())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
