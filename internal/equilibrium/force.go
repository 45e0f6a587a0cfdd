package equilibrium

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trapmodes/internal/potential"
)

// Forces evaluates the force-balance system at ζ:
//
//	F_n = V'(ζ_n) + κ·( -Σ_{j<n} 1/(ζ_n-ζ_j)² + Σ_{j>n} 1/(ζ_n-ζ_j)² )
//
// κ is the Coulomb coupling e/(4π ε0 r0). Positions must be pairwise
// distinct.
func Forces(pot potential.Potential, zeta []float64, kappa float64) []float64 {
	n := len(zeta)
	f := make([]float64, n)
	for i := 0; i < n; i++ {
		coulomb := 0.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d := zeta[i] - zeta[j]
			inv := 1 / (d * d)
			if j < i {
				coulomb -= inv
			} else {
				coulomb += inv
			}
		}
		f[i] = pot.D1(zeta[i]) + kappa*coulomb
	}
	return f
}

// Jacobian evaluates ∂F_n/∂ζ_m analytically:
//
//	J_nn = V''(ζ_n) + 2κ·( Σ_{j<n} 1/(ζ_n-ζ_j)³ - Σ_{j>n} 1/(ζ_n-ζ_j)³ )
//	J_nm = -2κ / |ζ_n-ζ_m|³   (n ≠ m)
func Jacobian(pot potential.Potential, zeta []float64, kappa float64) *mat.Dense {
	n := len(zeta)
	jac := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		diag := pot.D2(zeta[i])
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d := zeta[i] - zeta[j]
			inv3 := 1 / (d * d * d)
			if j < i {
				diag += 2 * kappa * inv3
			} else {
				diag -= 2 * kappa * inv3
			}
			abs := math.Abs(d)
			jac.Set(i, j, -2*kappa/(abs*abs*abs))
		}
		jac.Set(i, i, diag)
	}
	return jac
}

func normInf(v []float64) float64 {
	max := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}
