// Package trap provides core primitives for axial ion-chain calculations.
//
// The package defines the shared types, physical constants, and error
// values used by the solver packages:
//
//   - [Constants]: immutable physical constants (elementary charge, ε0)
//   - [Positions]: an ion position vector with validity helpers
//   - [Spectrum]: eigenvalues, frequencies, and mode vectors
//
// Solvers receive a Constants value explicitly rather than reading
// package-level globals, so independent solves share no mutable state and
// may run concurrently.
package trap
