package dynamo

import (
	"fmt"
	"math"
)

// Epsilon absorbs floating-point drift when testing x against xn.
const Epsilon = 1e-9

// preallocLimit caps the up-front sample buffer for very fine steps.
const preallocLimit = 1 << 16

// RHS evaluates the right-hand side f(x, y). A non-nil error or a
// non-finite result marks the point as unusable.
type RHS func(x, y float64) (float64, error)

// Func adapts a plain function to an RHS. Non-finite results are caught
// by the integrators, so the adapter never fails on its own.
func Func(f func(x, y float64) float64) RHS {
	return func(x, y float64) (float64, error) {
		return f(x, y), nil
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Problem holds the scalar inputs of one integration request.
type Problem struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Xn float64 `json:"xn" yaml:"xn"`
	Y0 float64 `json:"y0" yaml:"y0"`
	H  float64 `json:"h" yaml:"h"`
}

// Validate rejects inputs that would make a run meaningless or unbounded.
func (p Problem) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"x0", p.X0}, {"xn", p.Xn}, {"y0", p.Y0}, {"h", p.H}} {
		if !isFinite(f.v) {
			return &InputError{Field: f.name, Value: f.v, Wrapped: ErrNonFiniteInput}
		}
	}
	if p.H <= 0 {
		return &InputError{Field: "h", Value: p.H, Wrapped: ErrNonPositiveStep}
	}
	if p.Xn < p.X0 {
		return &InputError{Field: "xn", Value: p.Xn, Wrapped: ErrReversedInterval}
	}
	return nil
}

// Steps returns the number of steps a run completes when nothing fails:
// the smallest n with x0 + n*h >= xn - Epsilon.
func (p Problem) Steps() int {
	n := int(math.Max(0, math.Ceil((p.Xn-Epsilon-p.X0)/p.H)))
	for n > 0 && p.X0+float64(n-1)*p.H >= p.Xn-Epsilon {
		n--
	}
	for p.X0+float64(n)*p.H < p.Xn-Epsilon {
		n++
	}
	return n
}

func (p Problem) String() string {
	return fmt.Sprintf("x0=%g xn=%g y0=%g h=%g", p.X0, p.Xn, p.Y0, p.H)
}

// Trajectory is the ordered sample sequence produced by one run.
type Trajectory struct {
	Method string           `json:"method"`
	Step   float64          `json:"step"`
	Points []Point          `json:"points"`
	Halt   *EvaluationError `json:"-"`
}

func NewTrajectory(method string, p Problem) *Trajectory {
	capacity := p.Steps() + 1
	if capacity > preallocLimit {
		capacity = preallocLimit
	}
	points := make([]Point, 0, capacity)
	return &Trajectory{
		Method: method,
		Step:   p.H,
		Points: append(points, Point{X: p.X0, Y: p.Y0}),
	}
}

// Append adds the sample produced by a completed step.
func (t *Trajectory) Append(x, y float64) {
	t.Points = append(t.Points, Point{X: x, Y: y})
}

func (t *Trajectory) Len() int { return len(t.Points) }

func (t *Trajectory) Last() Point {
	return t.Points[len(t.Points)-1]
}

// Truncated reports whether the run stopped on an evaluation failure.
func (t *Trajectory) Truncated() bool { return t.Halt != nil }

func (t *Trajectory) Xs() []float64 {
	xs := make([]float64, len(t.Points))
	for i, p := range t.Points {
		xs[i] = p.X
	}
	return xs
}

func (t *Trajectory) Ys() []float64 {
	ys := make([]float64, len(t.Points))
	for i, p := range t.Points {
		ys[i] = p.Y
	}
	return ys
}

// Label is the legend text for a trajectory, e.g. "RK4 (h=0.1)".
func (t *Trajectory) Label() string {
	return fmt.Sprintf("%s (h=%g)", DisplayName(t.Method), t.Step)
}

// Integrator advances a problem from x0 to xn with a fixed step.
type Integrator interface {
	Name() string
	Integrate(f RHS, p Problem) (*Trajectory, error)
}

// DisplayName maps registry names to the labels shown next to curves.
func DisplayName(method string) string {
	switch method {
	case "euler":
		return "Euler"
	case "rk4":
		return "RK4"
	default:
		return method
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
