package experiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/san-kum/odesolve/internal/dynamo"
)

func lab(x, y float64) (float64, error) {
	return (1 - x*x) / (x * y), nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.Names()
	if len(names) != 2 || names[0] != "euler" || names[1] != "rk4" {
		t.Errorf("unexpected methods %v", names)
	}

	integ, err := r.Get("rk4")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if integ.Name() != "rk4" {
		t.Errorf("expected rk4, got %s", integ.Name())
	}

	if _, err := r.Get("midpoint"); !errors.Is(err, dynamo.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	runner := NewRunner(nil, logr.Discard())
	p := dynamo.Problem{X0: 1, Xn: 2.6, Y0: 2, H: 0.1}

	res, err := runner.Compare(context.Background(), "(1 - x**2) / (x * y)", lab, p)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	if len(res.Trajectories) != 2 {
		t.Fatalf("expected 2 trajectories, got %d", len(res.Trajectories))
	}
	if res.Trajectories[0].Method != "euler" || res.Trajectories[1].Method != "rk4" {
		t.Errorf("trajectories out of request order")
	}
	for _, traj := range res.Trajectories {
		if traj.Len() != 17 {
			t.Errorf("%s: expected 17 samples, got %d", traj.Method, traj.Len())
		}
	}

	if res.Trajectory("rk4") == nil || res.Trajectory("verlet") != nil {
		t.Error("Trajectory lookup by method failed")
	}
	if res.Metrics["max_divergence"] <= 0 {
		t.Errorf("expected positive divergence, got %v", res.Metrics)
	}
}

func TestCompare_SingleMethod(t *testing.T) {
	runner := NewRunner(nil, logr.Discard())
	p := dynamo.Problem{X0: 0, Xn: 1, Y0: 1, H: 0.1}

	res, err := runner.Compare(context.Background(), "y", dynamo.Func(func(x, y float64) float64 { return y }), p, "rk4")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if len(res.Trajectories) != 1 {
		t.Fatalf("expected 1 trajectory, got %d", len(res.Trajectories))
	}
	if len(res.Metrics) != 0 {
		t.Errorf("single method should have no divergence metrics, got %v", res.Metrics)
	}
}

func TestCompare_InvalidInput(t *testing.T) {
	runner := NewRunner(nil, logr.Discard())

	_, err := runner.Compare(context.Background(), "", lab, dynamo.Problem{X0: 0, Xn: 1, Y0: 1, H: 0})
	if !errors.Is(err, dynamo.ErrNonPositiveStep) {
		t.Errorf("expected ErrNonPositiveStep, got %v", err)
	}

	_, err = runner.Compare(context.Background(), "", lab, dynamo.Problem{X0: 1, Xn: 2, Y0: 1, H: 0.1}, "euler", "bogus")
	if !errors.Is(err, dynamo.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestCompare_Canceled(t *testing.T) {
	runner := NewRunner(nil, logr.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Compare(ctx, "", lab, dynamo.Problem{X0: 1, Xn: 2, Y0: 1, H: 0.1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompare_LogsTruncation(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	runner := NewRunner(nil, log)
	f := dynamo.Func(func(x, y float64) float64 { return 1 / x })

	res, err := runner.Compare(context.Background(), "1/x", f, dynamo.Problem{X0: -1, Xn: 1, Y0: 0, H: 0.5}, "euler")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !res.Trajectories[0].Truncated() {
		t.Fatal("expected truncated trajectory")
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "trajectory truncated") {
		t.Errorf("expected one truncation log line, got %v", lines)
	}
}
