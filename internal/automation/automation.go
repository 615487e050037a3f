// Package automation runs scripted batches of comparisons: scenario
// files listing several problems, and step-size sweeps over one problem.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odesolve/internal/config"
	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/experiment"
	"github.com/san-kum/odesolve/internal/expr"
	"github.com/san-kum/odesolve/internal/metrics"
)

// Scenario defines a scripted sequence of problems
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Steps       []config.Config `yaml:"steps"`
}

// LoadScenario loads a scenario from a YAML file. Fields a step leaves
// out fall back to the defaults of config.DefaultConfig.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Steps       []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	sc := &Scenario{Name: raw.Name, Description: raw.Description}
	for i := range raw.Steps {
		step := config.DefaultConfig()
		if err := raw.Steps[i].Decode(step); err != nil {
			return nil, fmt.Errorf("parse scenario step %d: %w", i+1, err)
		}
		sc.Steps = append(sc.Steps, *step)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return sc, nil
}

// RunScenario executes all steps in order and stops at the first step
// whose input or equation is rejected.
func RunScenario(ctx context.Context, log logr.Logger, scenario *Scenario, runner *experiment.Runner) ([]*experiment.Result, error) {
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", step.Name, "expression", step.Expression)

		if err := step.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		rhs, err := expr.Compile(step.Expression)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := runner.Compare(ctx, step.Expression, rhs, step.Problem(), step.Methods...)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// StepSweep reruns one problem with each step size in Steps.
type StepSweep struct {
	Expression string
	Problem    dynamo.Problem
	Steps      []float64
}

// SweepResult holds one row of a sweep: how far Euler ended up from RK4
// at a given step size.
type SweepResult struct {
	H          float64
	Samples    int
	EulerFinal float64
	RK4Final   float64
	Divergence metrics.Divergence
	Truncated  bool
}

// RunSweep executes a step-size sweep
func RunSweep(ctx context.Context, log logr.Logger, sweep *StepSweep, runner *experiment.Runner) ([]SweepResult, error) {
	if len(sweep.Steps) == 0 {
		return nil, errors.New("sweep has no step sizes")
	}

	rhs, err := expr.Compile(sweep.Expression)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, len(sweep.Steps))
	for i, h := range sweep.Steps {
		p := sweep.Problem
		p.H = h

		res, err := runner.Compare(ctx, sweep.Expression, rhs, p, "euler", "rk4")
		if err != nil {
			return results, fmt.Errorf("h=%g: %w", h, err)
		}

		eu, rk := res.Trajectory("euler"), res.Trajectory("rk4")
		results = append(results, SweepResult{
			H:          h,
			Samples:    rk.Len(),
			EulerFinal: eu.Last().Y,
			RK4Final:   rk.Last().Y,
			Divergence: metrics.Compare(eu, rk),
			Truncated:  eu.Truncated() || rk.Truncated(),
		})

		log.V(1).Info("sweep", "index", i+1, "of", len(sweep.Steps), "h", h)
	}

	return results, nil
}
