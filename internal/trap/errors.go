package trap

import "errors"

// Domain errors for solver operations.
var (
	// ErrUnrecognizedUnit indicates an unknown length-unit tag.
	ErrUnrecognizedUnit = errors.New("trap: unrecognized length unit")

	// ErrFitFailure indicates the spline fit constraints were violated.
	ErrFitFailure = errors.New("trap: spline fit failed")

	// ErrDegenerate indicates coincident ion positions (Coulomb terms blow up).
	ErrDegenerate = errors.New("trap: coincident ion positions")

	// ErrBracketNotFound indicates the symmetric bracket scan exceeded its bound.
	ErrBracketNotFound = errors.New("trap: no sign change found in bracket scan")

	// ErrConvergence indicates the equilibrium solve did not reach tolerance.
	ErrConvergence = errors.New("trap: equilibrium solve did not converge")

	// ErrUnstable indicates a negative Hessian eigenvalue (unstable equilibrium).
	ErrUnstable = errors.New("trap: negative eigenvalue, equilibrium is unstable")

	// ErrDimensionMismatch indicates mismatched sample/guess dimensions.
	ErrDimensionMismatch = errors.New("trap: dimension mismatch")
)

// SolveError wraps an error with the iteration context it occurred in.
type SolveError struct {
	Iteration int
	Positions []float64
	Wrapped   error
}

func (e *SolveError) Error() string {
	return e.Wrapped.Error()
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
