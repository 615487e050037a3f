package integrators

import (
	"math"

	"github.com/san-kum/odesolve/internal/dynamo"
)

// advanceFunc computes y at x+h from (x, y). A returned *EvaluationError
// abandons the step.
type advanceFunc func(f dynamo.RHS, x, y, h float64) (float64, *dynamo.EvaluationError)

// march runs the loop shared by every fixed-step method: the first sample
// is (x0, y0), steps continue while x < xn - Epsilon, and an evaluation
// failure ends the run with the samples gathered so far.
func march(method string, f dynamo.RHS, p dynamo.Problem, advance advanceFunc) (*dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	traj := dynamo.NewTrajectory(method, p)
	x, y := p.X0, p.Y0

	for i := 1; x < p.Xn-dynamo.Epsilon; i++ {
		next, evalErr := advance(f, x, y, p.H)
		if evalErr != nil {
			traj.Halt = evalErr
			break
		}
		x = p.X0 + float64(i)*p.H
		y = next
		traj.Append(x, y)
	}

	return traj, nil
}

// slope evaluates f once and converts failures into an EvaluationError.
func slope(f dynamo.RHS, x, y float64, stage int) (float64, *dynamo.EvaluationError) {
	v, err := f(x, y)
	if err != nil {
		return 0, &dynamo.EvaluationError{X: x, Y: y, Stage: stage, Wrapped: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &dynamo.EvaluationError{X: x, Y: y, Stage: stage, Wrapped: dynamo.ErrNonFiniteValue}
	}
	return v, nil
}

// checkNext rejects a step whose combined update overflowed.
func checkNext(x, y, next float64) *dynamo.EvaluationError {
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return &dynamo.EvaluationError{X: x, Y: y, Wrapped: dynamo.ErrNonFiniteValue}
	}
	return nil
}
