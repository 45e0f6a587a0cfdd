// Package modes extracts axial normal-mode spectra from an ion-chain
// equilibrium: it builds the mass-weighted Hessian of the total potential
// energy (external field plus pairwise Coulomb) and converts its
// eigenvalues to ordinary oscillation frequencies.
package modes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trapmodes/internal/potential"
	"github.com/san-kum/trapmodes/internal/trap"
)

// negEps is the relative slack for eigenvalues that are negative only by
// roundoff; anything below -negEps·max|w| is a genuinely unstable mode.
const negEps = 1e-9

// Hessian builds the dimensionless Hessian of the total potential energy
// at the equilibrium ζ0:
//
//	H_nn = (1/κ)·V''(ζ0_n) + 2·( Σ_{j<n} 1/(ζ0_n-ζ0_j)³ - Σ_{j>n} 1/(ζ0_n-ζ0_j)³ )
//	H_nm = -2/|ζ0_n-ζ0_m|³   (n ≠ m)
//
// Pairwise Coulomb energy is exchange symmetric, so H is symmetric by
// construction.
func Hessian(pot potential.Potential, eq []float64, kappa float64) (*mat.SymDense, error) {
	n := len(eq)
	if sep := trap.Positions(eq).MinSeparation(); n > 1 && sep == 0 {
		return nil, fmt.Errorf("%w: coincident equilibrium positions", trap.ErrDegenerate)
	}

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		diag := pot.D2(eq[i]) / kappa
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d := eq[i] - eq[j]
			inv3 := 1 / (d * d * d)
			if j < i {
				diag += 2 * inv3
			} else {
				diag -= 2 * inv3
			}
			if j > i {
				abs := math.Abs(d)
				h.SetSym(i, j, -2/(abs*abs*abs))
			}
		}
		h.SetSym(i, i, diag)
	}
	return h, nil
}

// Axial computes the axial mode spectrum at the equilibrium eq
// (dimensionless), for ions of the given mass (kg) at length scale r0
// (meters). Eigenvalues come back ascending; frequencies are ordinary
// (non-angular) frequencies in Hz, ordered with the eigenvalues. With
// wantVectors the eigenvector matrix is included, mode i in column i.
//
// A negative eigenvalue beyond roundoff means the configuration is not a
// stable equilibrium and yields ErrUnstable.
func Axial(pot potential.Potential, eq []float64, r0, mass float64, c trap.Constants, wantVectors bool) (*trap.Spectrum, error) {
	if len(eq) == 0 {
		return nil, fmt.Errorf("%w: empty equilibrium", trap.ErrDimensionMismatch)
	}
	if c.IsZero() {
		c = trap.DefaultConstants()
	}
	kappa := c.Coupling(r0)

	h, err := Hessian(pot, eq, kappa)
	if err != nil {
		return nil, err
	}

	var es mat.EigenSym
	if ok := es.Factorize(h, wantVectors); !ok {
		return nil, fmt.Errorf("%w: eigen-decomposition failed", trap.ErrUnstable)
	}
	w := es.Values(nil)

	floor := 0.0
	for _, v := range w {
		if a := math.Abs(v); a > floor {
			floor = a
		}
	}
	floor *= negEps

	// ω² = w·κ·e/(m·r0²); f = ω/2π.
	freqScale := kappa * c.E / (mass * r0 * r0)
	freqs := make([]float64, len(w))
	for i, v := range w {
		if v < -floor {
			return nil, fmt.Errorf("%w: eigenvalue %d is %g", trap.ErrUnstable, i, v)
		}
		if v < 0 {
			v = 0
		}
		freqs[i] = math.Sqrt(v*freqScale) / (2 * math.Pi)
	}

	spec := &trap.Spectrum{
		Eigenvalues: w,
		Frequencies: freqs,
	}
	if wantVectors {
		var vecs mat.Dense
		es.VectorsTo(&vecs)
		spec.Vectors = &vecs
	}
	return spec, nil
}
