package trap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Positions is an ion position vector, dimensionless or physical depending
// on context. Ions are identical and indexed by their order in the initial
// guess; solvers never reorder them.
type Positions []float64

func (p Positions) Clone() Positions {
	c := make(Positions, len(p))
	copy(c, p)
	return c
}

func (p Positions) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MinSeparation returns the smallest pairwise distance, or +Inf for fewer
// than two ions.
func (p Positions) MinSeparation() float64 {
	min := math.Inf(1)
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if d := math.Abs(p[i] - p[j]); d < min {
				min = d
			}
		}
	}
	return min
}

// Scale returns a copy of p with every element multiplied by factor.
func (p Positions) Scale(factor float64) Positions {
	s := make(Positions, len(p))
	for i, v := range p {
		s[i] = v * factor
	}
	return s
}

// Spectrum holds the axial normal-mode decomposition at an equilibrium:
// eigenvalues of the dimensionless Hessian (ascending), the corresponding
// ordinary frequencies in Hz, and optionally the eigenvector matrix with
// mode i in column i.
type Spectrum struct {
	Eigenvalues []float64
	Frequencies []float64
	Vectors     *mat.Dense
}
