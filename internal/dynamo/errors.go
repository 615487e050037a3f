package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration requests.
var (
	// ErrNonPositiveStep indicates h <= 0.
	ErrNonPositiveStep = errors.New("dynamo: step size must be positive")

	// ErrReversedInterval indicates xn < x0.
	ErrReversedInterval = errors.New("dynamo: xn must not be less than x0")

	// ErrNonFiniteInput indicates a NaN or Inf among x0, xn, y0, h.
	ErrNonFiniteInput = errors.New("dynamo: input is NaN or Inf")

	// ErrNonFiniteValue indicates an evaluation produced NaN or Inf.
	ErrNonFiniteValue = errors.New("dynamo: evaluation produced NaN or Inf")

	// ErrUnknownMethod indicates a method name with no registered integrator.
	ErrUnknownMethod = errors.New("dynamo: unknown integration method")
)

// InputError reports a rejected Problem field.
type InputError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}

// EvaluationError records where the right-hand side could not be evaluated.
// Stage is 1 for Euler and 1..4 for the RK4 slope that failed.
type EvaluationError struct {
	X       float64
	Y       float64
	Stage   int
	Wrapped error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed at x=%g y=%g (stage %d): %v", e.X, e.Y, e.Stage, e.Wrapped)
}

func (e *EvaluationError) Unwrap() error {
	return e.Wrapped
}
