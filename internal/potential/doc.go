// Package potential provides the 1-D electrostatic potential abstraction
// shared by the equilibrium and normal-mode solvers.
//
// A [Potential] exposes value, first, and second derivative at a
// dimensionless coordinate ζ. Two families implement it:
//
//   - [Spline]: a smoothing spline reconstructed from sampled field data
//   - [Analytic] and the concrete models ([Harmonic], [Quartic],
//     [DoubleWell]): closed-form potentials with exact derivatives
//
// The [Scale] type maps between physical coordinates and the
// dimensionless domain the solvers operate in.
package potential
