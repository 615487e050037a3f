package integrators

import "github.com/san-kum/odesolve/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Integrate(f dynamo.RHS, p dynamo.Problem) (*dynamo.Trajectory, error) {
	return march(r.Name(), f, p, r.advance)
}

// advance evaluates all four stages before touching y, so a failure in
// any of them leaves no partial sample behind.
func (r *RK4) advance(f dynamo.RHS, x, y, h float64) (float64, *dynamo.EvaluationError) {
	halfH := h * 0.5

	s1, err := slope(f, x, y, 1)
	if err != nil {
		return 0, err
	}
	k1 := h * s1

	s2, err := slope(f, x+halfH, y+k1*0.5, 2)
	if err != nil {
		return 0, err
	}
	k2 := h * s2

	s3, err := slope(f, x+halfH, y+k2*0.5, 3)
	if err != nil {
		return 0, err
	}
	k3 := h * s3

	s4, err := slope(f, x+h, y+k3, 4)
	if err != nil {
		return 0, err
	}
	k4 := h * s4

	next := y + (k1+2*k2+2*k3+k4)/6.0
	if err := checkNext(x, y, next); err != nil {
		return 0, err
	}
	return next, nil
}
