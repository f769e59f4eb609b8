/*
errors.go - Centralized error types for the generic primitives

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages (payroll, severance) wrap these errors with additional
  context and add their own sentinels next to the code that raises them.

ERROR CATEGORIES:
  1. Temporal errors - Malformed dates and reversed periods
  2. Input errors - Values a caller should have rejected before invoking an engine

WHAT IS NOT AN ERROR:
  Zero hours, zero absences, no dependents, a negative withholding that is
  clamped to zero: these are ordinary business variation and never surface
  as errors.

USAGE:
  span, err := generic.SpanInclusive(hire, termination)
  if errors.Is(err, generic.ErrInvalidPeriod) {
      // termination before hire
  }

SEE ALSO:
  - period.go: Raises InvalidPeriodError
  - payroll/errors.go: Payroll sentinels
  - severance/settlement.go: Wraps ErrInvalidPeriod with case context
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidDate is returned when a date string is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput is returned for structurally invalid calculation input
	// (negative salary, month outside 1-12).
	ErrInvalidInput = errors.New("invalid input")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidPeriodError provides details about a reversed date range.
type InvalidPeriodError struct {
	Start TimePoint
	End   TimePoint
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period: %s is before %s", e.End, e.Start)
}

func (e *InvalidPeriodError) Unwrap() error {
	return ErrInvalidPeriod
}

// InputError names the offending field of a rejected input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidInput)
}
