package payroll

import (
	"errors"
	"fmt"

	"github.com/warp/payroll-engine/generic"
)

var (
	// ErrUnknownPensionSystem is returned when a pension selector names no
	// known public or private system. It is a client error.
	ErrUnknownPensionSystem = fmt.Errorf("%w: unknown pension system", generic.ErrInvalidInput)

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid payroll configuration")
)

// UnknownPensionSystemError carries the rejected selector.
type UnknownPensionSystemError struct {
	Selector string
}

func (e *UnknownPensionSystemError) Error() string {
	return fmt.Sprintf("unknown pension system %q", e.Selector)
}

func (e *UnknownPensionSystemError) Unwrap() error {
	return ErrUnknownPensionSystem
}

func invalidInput(field, reason string) error {
	return &generic.InputError{Field: field, Reason: reason}
}
