// Package equilibrium finds ion-chain equilibrium positions by solving the
// force-balance system F(ζ) = 0, where each component combines the external
// field gradient with pairwise Coulomb repulsion.
//
// Two solvers are provided: [Solve], a Newton iteration on the full N-ion
// system with an analytically derived Jacobian, and [SolveSymmetric], a
// bracketing bisection for the reflection-symmetric 2-ion case. Both
// operate on dimensionless coordinates; callers rescale with
// [potential.Scale].
package equilibrium
