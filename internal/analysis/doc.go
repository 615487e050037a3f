// Package analysis samples the right-hand side itself, independent of
// any integrator.
//
//   - [NewDirectionField]: slope of y' = f(x, y) on a grid around the
//     computed trajectories
//   - [DirectionFieldToASCII]: the field as slope glyphs with the
//     trajectories drawn on top
//
// A field makes it visible where Euler leaves the solution curve: its
// markers cut across the slope glyphs that RK4 follows.
package analysis
