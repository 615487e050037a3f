package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestPoint_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		valid bool
	}{
		{"origin", Point{0, 0}, true},
		{"normal", Point{1.5, -2.0}, true},
		{"NaN y", Point{1.0, math.NaN()}, false},
		{"+Inf y", Point{1.0, math.Inf(1)}, false},
		{"-Inf x", Point{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestProblem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
		want    error
		field   string
	}{
		{"valid", Problem{X0: 1, Xn: 2.6, Y0: 2, H: 0.1}, nil, ""},
		{"empty interval", Problem{X0: 1, Xn: 1, Y0: 2, H: 0.1}, nil, ""},
		{"zero step", Problem{X0: 0, Xn: 1, Y0: 1, H: 0}, ErrNonPositiveStep, "h"},
		{"negative step", Problem{X0: 0, Xn: 1, Y0: 1, H: -0.1}, ErrNonPositiveStep, "h"},
		{"reversed", Problem{X0: 1, Xn: 0, Y0: 1, H: 0.1}, ErrReversedInterval, "xn"},
		{"NaN y0", Problem{X0: 0, Xn: 1, Y0: math.NaN(), H: 0.1}, ErrNonFiniteInput, "y0"},
		{"Inf xn", Problem{X0: 0, Xn: math.Inf(1), Y0: 1, H: 0.1}, ErrNonFiniteInput, "xn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.problem.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var inErr *InputError
			if !errors.As(err, &inErr) {
				t.Fatalf("expected *InputError, got %T", err)
			}
			if inErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, inErr.Field)
			}
		})
	}
}

func TestProblem_Steps(t *testing.T) {
	tests := []struct {
		problem  Problem
		expected int
	}{
		{Problem{X0: 0, Xn: 1, H: 0.1}, 10},
		{Problem{X0: 1, Xn: 2.6, H: 0.1}, 16},
		{Problem{X0: 1, Xn: 2.6, H: 0.01}, 160},
		{Problem{X0: 0, Xn: 2, H: 0.25}, 8},
		{Problem{X0: 0, Xn: 1, H: 0.3}, 4},
		{Problem{X0: 0, Xn: 0, H: 0.1}, 0},
	}

	for _, tt := range tests {
		if got := tt.problem.Steps(); got != tt.expected {
			t.Errorf("Steps(%v) = %d, want %d", tt.problem, got, tt.expected)
		}
	}
}

func TestTrajectory(t *testing.T) {
	p := Problem{X0: 0, Xn: 1, Y0: 1, H: 0.5}
	traj := NewTrajectory("rk4", p)

	if traj.Len() != 1 {
		t.Fatalf("expected initial sample only, got %d", traj.Len())
	}
	if traj.Last() != (Point{0, 1}) {
		t.Errorf("expected first sample (0, 1), got %v", traj.Last())
	}

	traj.Append(0.5, 2)
	traj.Append(1.0, 4)

	xs, ys := traj.Xs(), traj.Ys()
	if len(xs) != 3 || xs[2] != 1.0 || ys[1] != 2 {
		t.Errorf("unexpected coordinates: xs=%v ys=%v", xs, ys)
	}
	if traj.Truncated() {
		t.Error("trajectory without halt should not be truncated")
	}
	if traj.Label() != "RK4 (h=0.5)" {
		t.Errorf("unexpected label %q", traj.Label())
	}
}

func TestFunc(t *testing.T) {
	f := Func(func(x, y float64) float64 { return x * y })
	v, err := f(2, 3)
	if err != nil || v != 6 {
		t.Errorf("expected 6, got %v (err %v)", v, err)
	}
}

func TestEvaluationError_Unwrap(t *testing.T) {
	err := &EvaluationError{X: 0, Y: 1, Stage: 4, Wrapped: ErrNonFiniteValue}
	if !errors.Is(err, ErrNonFiniteValue) {
		t.Error("EvaluationError should unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("empty message")
	}
}
