package equilibrium

import (
	"fmt"
	"math"

	"github.com/san-kum/trapmodes/internal/potential"
	"github.com/san-kum/trapmodes/internal/trap"
)

// SymmetricOptions configures the 2-ion reflection-symmetric solve.
type SymmetricOptions struct {
	Start   float64 // first trial half-separation (dimensionless, > 0)
	Step    float64 // bracket scan step
	MaxScan int     // bound on scan steps before giving up
	Tol     float64 // bisection interval width at convergence
	MaxIter int     // bisection iteration bound
}

func DefaultSymmetricOptions() SymmetricOptions {
	return SymmetricOptions{
		Start:   1e-3,
		Step:    0.02,
		MaxScan: 10000,
		Tol:     1e-12,
		MaxIter: 200,
	}
}

// SolveSymmetric finds the equilibrium of two ions in a potential assumed
// symmetric about ζ = 0, so ζ = [-p, p] and the system reduces to one
// scalar equation g(p) = (F_0 - F_1)/2. The bracket search advances
// linearly from Start by Step (an intentionally simple O(p/Step) scan) and
// fails with ErrBracketNotFound once MaxScan steps pass without a sign
// change; bisection then refines the root.
func SolveSymmetric(pot potential.Potential, kappa float64, opt SymmetricOptions) ([]float64, error) {
	def := DefaultSymmetricOptions()
	if opt.Start <= 0 {
		opt.Start = def.Start
	}
	if opt.Step <= 0 {
		opt.Step = def.Step
	}
	if opt.MaxScan <= 0 {
		opt.MaxScan = def.MaxScan
	}
	if opt.Tol <= 0 {
		opt.Tol = def.Tol
	}
	if opt.MaxIter <= 0 {
		opt.MaxIter = def.MaxIter
	}

	g := func(p float64) float64 {
		f := Forces(pot, []float64{-p, p}, kappa)
		return (f[0] - f[1]) / 2
	}

	lo := opt.Start
	glo := g(lo)
	hi := lo
	ghi := glo
	found := false
	for i := 0; i < opt.MaxScan; i++ {
		hi = lo + opt.Step
		ghi = g(hi)
		if glo*ghi <= 0 {
			found = true
			break
		}
		lo, glo = hi, ghi
	}
	if !found {
		return nil, fmt.Errorf("%w: no sign change in [%g, %g] after %d steps",
			trap.ErrBracketNotFound, opt.Start, hi, opt.MaxScan)
	}

	for i := 0; i < opt.MaxIter && hi-lo > opt.Tol; i++ {
		mid := 0.5 * (lo + hi)
		gmid := g(mid)
		if gmid == 0 {
			lo, hi = mid, mid
			break
		}
		if math.Signbit(gmid) == math.Signbit(glo) {
			lo, glo = mid, gmid
		} else {
			hi = mid
		}
	}

	p := 0.5 * (lo + hi)
	return []float64{-p, p}, nil
}
