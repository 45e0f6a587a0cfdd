package equilibrium

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trapmodes/internal/potential"
	"github.com/san-kum/trapmodes/internal/trap"
)

// Method selects the root-finding iteration for Solve.
type Method string

const (
	// MethodNewton takes full Newton steps.
	MethodNewton Method = "newton"

	// MethodDamped halves the Newton step until the force norm decreases,
	// trading iterations for robustness on poor initial guesses.
	MethodDamped Method = "damped"
)

// Options configures the general N-ion solve.
type Options struct {
	Method        Method
	Tol           float64 // convergence bound on ‖F‖∞
	MaxIter       int
	MinSeparation float64 // coincidence guard on pairwise distances
}

func DefaultOptions() Options {
	return Options{
		Method:        MethodNewton,
		Tol:           1e-10,
		MaxIter:       200,
		MinSeparation: 1e-12,
	}
}

// Solve finds dimensionless equilibrium positions for len(guess) ions from
// the given initial guess. It returns ErrDegenerate if the guess or any
// iterate brings two ions closer than MinSeparation, and ErrConvergence if
// the force norm does not reach Tol within MaxIter iterations. A single ion
// is valid: the system reduces to V'(ζ) = 0.
func Solve(pot potential.Potential, guess []float64, kappa float64, opt Options) ([]float64, error) {
	if len(guess) == 0 {
		return nil, fmt.Errorf("%w: empty initial guess", trap.ErrDimensionMismatch)
	}
	if opt.Tol <= 0 {
		opt.Tol = DefaultOptions().Tol
	}
	if opt.MaxIter <= 0 {
		opt.MaxIter = DefaultOptions().MaxIter
	}
	if opt.MinSeparation <= 0 {
		opt.MinSeparation = DefaultOptions().MinSeparation
	}
	if opt.Method == "" {
		opt.Method = MethodNewton
	}

	zeta := trap.Positions(guess).Clone()
	if !zeta.IsValid() {
		return nil, fmt.Errorf("%w: non-finite initial guess", trap.ErrDimensionMismatch)
	}
	if err := checkSeparation(zeta, opt.MinSeparation, 0); err != nil {
		return nil, err
	}

	n := len(zeta)
	f := Forces(pot, zeta, kappa)
	fnorm := normInf(f)

	for iter := 1; iter <= opt.MaxIter; iter++ {
		if fnorm <= opt.Tol {
			return zeta, nil
		}

		jac := Jacobian(pot, zeta, kappa)
		var lu mat.LU
		lu.Factorize(jac)

		step := mat.NewVecDense(n, nil)
		if err := lu.SolveVecTo(step, false, mat.NewVecDense(n, f)); err != nil {
			return nil, &trap.SolveError{
				Iteration: iter,
				Positions: zeta,
				Wrapped:   fmt.Errorf("%w: singular Jacobian: %v", trap.ErrConvergence, err),
			}
		}

		scale := 1.0
		var next trap.Positions
		var nextF []float64
		var nextNorm float64
		for {
			next = make(trap.Positions, n)
			for i := 0; i < n; i++ {
				next[i] = zeta[i] - scale*step.AtVec(i)
			}
			if err := checkSeparation(next, opt.MinSeparation, iter); err != nil {
				if opt.Method == MethodDamped && scale > 1.0/1024 {
					scale /= 2
					continue
				}
				return nil, err
			}
			nextF = Forces(pot, next, kappa)
			nextNorm = normInf(nextF)
			if opt.Method != MethodDamped || nextNorm < fnorm || scale <= 1.0/1024 {
				break
			}
			scale /= 2
		}

		zeta = next
		f = nextF
		fnorm = nextNorm

		if !zeta.IsValid() {
			return nil, &trap.SolveError{
				Iteration: iter,
				Positions: zeta,
				Wrapped:   fmt.Errorf("%w: iterate diverged", trap.ErrConvergence),
			}
		}
	}

	if fnorm <= opt.Tol {
		return zeta, nil
	}
	return nil, &trap.SolveError{
		Iteration: opt.MaxIter,
		Positions: zeta,
		Wrapped:   fmt.Errorf("%w: ‖F‖∞ = %g after %d iterations (tol %g)", trap.ErrConvergence, fnorm, opt.MaxIter, opt.Tol),
	}
}

func checkSeparation(zeta trap.Positions, min float64, iter int) error {
	if len(zeta) < 2 {
		return nil
	}
	if sep := zeta.MinSeparation(); sep < min {
		return &trap.SolveError{
			Iteration: iter,
			Positions: zeta,
			Wrapped:   fmt.Errorf("%w: pairwise separation %g below %g", trap.ErrDegenerate, sep, min),
		}
	}
	return nil
}
