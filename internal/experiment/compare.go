package experiment

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/metrics"
)

// Result is one comparison run: the same problem integrated by every
// requested method.
type Result struct {
	Expression   string               `json:"expression"`
	Problem      dynamo.Problem       `json:"problem"`
	Trajectories []*dynamo.Trajectory `json:"trajectories"`
	Metrics      map[string]float64   `json:"metrics"`
}

// Trajectory returns the run of the named method, or nil.
func (r *Result) Trajectory(method string) *dynamo.Trajectory {
	for _, t := range r.Trajectories {
		if t.Method == method {
			return t
		}
	}
	return nil
}

type Runner struct {
	registry *Registry
	log      logr.Logger
}

func NewRunner(registry *Registry, log logr.Logger) *Runner {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Runner{registry: registry, log: log}
}

// Compare integrates f over p with each method concurrently. Methods
// default to DefaultMethods. Trajectories come back in request order.
// Only invalid input or an unknown method is an error; evaluation
// failures shorten the affected trajectory.
func (r *Runner) Compare(ctx context.Context, expression string, f dynamo.RHS, p dynamo.Problem, methods ...string) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		methods = DefaultMethods
	}

	integs := make([]dynamo.Integrator, len(methods))
	for i, name := range methods {
		integ, err := r.registry.Get(name)
		if err != nil {
			return nil, err
		}
		integs[i] = integ
	}

	trajs := make([]*dynamo.Trajectory, len(integs))
	g, ctx := errgroup.WithContext(ctx)
	for i, integ := range integs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.log.V(1).Info("integrating", "method", integ.Name(), "problem", p.String())

			traj, err := integ.Integrate(f, p)
			if err != nil {
				return fmt.Errorf("%s: %w", integ.Name(), err)
			}
			if traj.Truncated() {
				r.log.Info("trajectory truncated", "method", integ.Name(),
					"samples", traj.Len(), "x", traj.Halt.X, "y", traj.Halt.Y, "reason", traj.Halt.Wrapped.Error())
			}
			trajs[i] = traj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Expression:   expression,
		Problem:      p,
		Trajectories: trajs,
		Metrics:      map[string]float64{},
	}
	if len(trajs) >= 2 {
		for k, v := range metrics.Compare(trajs[0], trajs[1]).Values() {
			res.Metrics[k] = v
		}
	}
	return res, nil
}
