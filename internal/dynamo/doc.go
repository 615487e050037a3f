// Package dynamo provides the core types for fixed-step integration of
// scalar initial value problems y' = f(x, y).
//
// The package defines the shared vocabulary used by every integrator and
// by the layers that present their output:
//
//   - [RHS]: right-hand side evaluator, returns a value or a failure
//   - [Problem]: the four scalars x0, xn, y0 and h
//   - [Trajectory]: ordered (x, y) samples produced by one run
//   - [Integrator]: fixed-step method contract
//
// # Example
//
//	f := func(x, y float64) (float64, error) { return y, nil }
//	p := dynamo.Problem{X0: 0, Xn: 1, Y0: 1, H: 0.1}
//	traj, err := integrators.NewRK4().Integrate(f, p)
//
// # Failure Policy
//
// An evaluation failure never surfaces as an error. The run stops at the
// last completed step and records the cause in [Trajectory.Halt]. Only an
// invalid [Problem] is reported through the error return.
package dynamo
