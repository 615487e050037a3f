package integrators

import "github.com/san-kum/odesolve/internal/dynamo"

// Euler is the first-order explicit method y' ≈ (y_next - y) / h.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Integrate(f dynamo.RHS, p dynamo.Problem) (*dynamo.Trajectory, error) {
	return march(e.Name(), f, p, e.advance)
}

func (e *Euler) advance(f dynamo.RHS, x, y, h float64) (float64, *dynamo.EvaluationError) {
	dy, err := slope(f, x, y, 1)
	if err != nil {
		return 0, err
	}
	next := y + h*dy
	if err := checkNext(x, y, next); err != nil {
		return 0, err
	}
	return next, nil
}
