package potential

import (
	"math"
	"testing"
)

func TestScaleFromMax(t *testing.T) {
	s := ScaleFromMax([]float64{-100, 0, 100})
	if s.Zlim != 100 {
		t.Errorf("Zlim = %g, want 100", s.Zlim)
	}
}

func TestScaleVariantsDiffer(t *testing.T) {
	// Asymmetric sample range: the two scale conventions disagree, which is
	// why each solver path picks its own explicitly.
	z := []float64{-200, 0, 100}
	if got := ScaleFromMax(z).Zlim; got != 100 {
		t.Errorf("ScaleFromMax = %g, want 100", got)
	}
	if got := ScaleFromMaxAbs(z).Zlim; got != 200 {
		t.Errorf("ScaleFromMaxAbs = %g, want 200", got)
	}
}

func TestScaleRoundTrip(t *testing.T) {
	s := ScaleFromMaxAbs([]float64{-50, 25})
	for _, z := range []float64{-50, -12.5, 0, 3, 49.9} {
		zeta := s.Dimensionless(z)
		if math.Abs(zeta) > 1 {
			t.Errorf("|ζ| = %g > 1 for in-range coordinate %g", zeta, z)
		}
		if back := s.Physical(zeta); math.Abs(back-z) > 1e-12*math.Abs(z) {
			t.Errorf("round trip %g -> %g", z, back)
		}
	}
}

func TestScaleR0(t *testing.T) {
	s := ScaleFromMax([]float64{-100, 0, 100})
	// 100 um characteristic scale.
	if got := s.R0(1e-6); math.Abs(got-1e-4) > 1e-18 {
		t.Errorf("R0 = %g, want 1e-4", got)
	}
}

func TestScaleAll(t *testing.T) {
	s := Scale{Zlim: 10}
	zeta := s.DimensionlessAll([]float64{-10, 5, 10})
	want := []float64{-1, 0.5, 1}
	for i := range want {
		if zeta[i] != want[i] {
			t.Errorf("DimensionlessAll[%d] = %g, want %g", i, zeta[i], want[i])
		}
	}
	back := s.PhysicalAll(zeta)
	if back[0] != -10 || back[2] != 10 {
		t.Errorf("PhysicalAll round trip failed: %v", back)
	}
}
