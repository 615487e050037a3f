package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/odesolve/internal/dynamo"
)

func trajectory(method string, ys ...float64) *dynamo.Trajectory {
	t := &dynamo.Trajectory{Method: method, Step: 0.5}
	for i, y := range ys {
		t.Points = append(t.Points, dynamo.Point{X: float64(i) * 0.5, Y: y})
	}
	return t
}

func TestCompare(t *testing.T) {
	a := trajectory("euler", 1, 1.5, 2.25, 3.375)
	b := trajectory("rk4", 1, 1.6, 2.6, 3.4)

	d := Compare(a, b)

	if d.Samples != 4 {
		t.Errorf("expected 4 common samples, got %d", d.Samples)
	}
	if math.Abs(d.Max-0.35) > 1e-12 {
		t.Errorf("expected max 0.35, got %f", d.Max)
	}
	if d.MaxAtX != 1.0 {
		t.Errorf("expected max at x=1, got %f", d.MaxAtX)
	}
	if math.Abs(d.Final-0.025) > 1e-12 {
		t.Errorf("expected final 0.025, got %f", d.Final)
	}
}

func TestCompare_Truncated(t *testing.T) {
	a := trajectory("euler", 0, -0.5, -1.5)
	b := trajectory("rk4", 0, -0.7)

	d := Compare(a, b)
	if d.Samples != 2 {
		t.Errorf("expected 2 common samples, got %d", d.Samples)
	}
	if math.Abs(d.Final-0.2) > 1e-12 {
		t.Errorf("expected final 0.2, got %f", d.Final)
	}

	vals := d.Values()
	if vals["common_samples"] != 2 {
		t.Errorf("unexpected metrics %v", vals)
	}
}

func TestSummarize(t *testing.T) {
	traj := trajectory("rk4", 0, 1)
	traj.Halt = &dynamo.EvaluationError{X: 1, Y: 1, Stage: 2, Wrapped: dynamo.ErrNonFiniteValue}

	s := Summarize(traj)
	if s.Samples != 2 || s.FinalX != 0.5 || s.FinalY != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if !s.Truncated || s.Reason == "" {
		t.Error("expected truncation reason")
	}
	if s.Label != "RK4 (h=0.5)" {
		t.Errorf("unexpected label %q", s.Label)
	}
}
