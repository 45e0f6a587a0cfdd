package potential

import "math"

// Scale maps physical coordinates to the dimensionless domain used for
// numerical conditioning: ζ = z/Zlim, so |ζ| ≤ 1 over the sample range.
type Scale struct {
	Zlim float64
}

// ScaleFromMax builds a scale from the maximum sample coordinate. This is
// the variant the symmetric solver path uses; for sample ranges symmetric
// about zero it coincides with ScaleFromMaxAbs.
func ScaleFromMax(z []float64) Scale {
	max := math.Inf(-1)
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	return Scale{Zlim: max}
}

// ScaleFromMaxAbs builds a scale from the maximum absolute sample
// coordinate, the variant used by the general solver path.
func ScaleFromMaxAbs(z []float64) Scale {
	max := 0.0
	for _, v := range z {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return Scale{Zlim: max}
}

// Unit is the identity scale used by the analytic path, where coordinates
// are already expressed in units of the characteristic length.
func Unit() Scale {
	return Scale{Zlim: 1}
}

func (s Scale) Dimensionless(z float64) float64 {
	return z / s.Zlim
}

func (s Scale) Physical(zeta float64) float64 {
	return zeta * s.Zlim
}

func (s Scale) DimensionlessAll(z []float64) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = v / s.Zlim
	}
	return out
}

func (s Scale) PhysicalAll(zeta []float64) []float64 {
	out := make([]float64, len(zeta))
	for i, v := range zeta {
		out[i] = v * s.Zlim
	}
	return out
}

// R0 is the characteristic length in meters, given the factor converting
// the sample unit to meters.
func (s Scale) R0(unitFactor float64) float64 {
	return s.Zlim * unitFactor
}
