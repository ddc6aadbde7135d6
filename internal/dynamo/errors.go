package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepRejected indicates an adaptive step exceeded the error tolerance.
	ErrStepRejected = errors.New("dynamo: adaptive step rejected")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepBudget indicates more steps than allowed were needed between
	// two output samples.
	ErrStepBudget = errors.New("dynamo: step budget exhausted between samples")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidGrid indicates an output grid that is empty or not ascending.
	ErrInvalidGrid = errors.New("dynamo: output grid must be non-empty and strictly ascending")
)

// IntegrationError wraps an error with the sample it happened at.
type IntegrationError struct {
	Sample  int
	Time    float64
	State   State
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("sample %d (t=%.4f): %v", e.Sample, e.Time, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
