package axial

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/trapmodes/internal/potential"
	"github.com/san-kum/trapmodes/internal/trap"
)

// harmonicSamples builds V = ½a·(z/zlim)² sampled over ±zlim.
func harmonicSamples(a, zlim float64, n int) ([]float64, []float64) {
	z := make([]float64, n)
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = -zlim + 2*zlim*float64(i)/float64(n-1)
		zeta := z[i] / zlim
		v[i] = 0.5 * a * zeta * zeta
	}
	return z, v
}

func TestSolveSampledHarmonic(t *testing.T) {
	z, v := harmonicSamples(1.0, 100, 201) // 100 um half-range

	res, err := SolveSampled(z, v, Request{
		Ions:      2,
		Unit:      "[um]",
		Smoothing: 1e-10,
		Guess:     []float64{-10, 10},
	})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// Closed form: ζ_eq = ±(κ/4a)^(1/3) at r0 = 100 um.
	kappa := trap.DefaultConstants().Coupling(1e-4)
	want := math.Cbrt(kappa/4) * 100 // um

	if math.Abs(res.Positions[1]-want) > 1e-3*want {
		t.Errorf("right ion at %g um, want %g um", res.Positions[1], want)
	}
	if math.Abs(res.Positions[0]+res.Positions[1]) > 1e-6 {
		t.Errorf("positions not symmetric: %v", res.Positions)
	}
	if math.Abs(res.R0-1e-4) > 1e-18 {
		t.Errorf("R0 = %g, want 1e-4", res.R0)
	}

	// Low-MHz axial frequencies for Ca-40 in a 1 V well at 100 um.
	f := res.Spectrum.Frequencies
	if len(f) != 2 {
		t.Fatalf("expected 2 modes, got %d", len(f))
	}
	if f[0] < 1e5 || f[0] > 1e8 {
		t.Errorf("lowest mode %g Hz outside physical range", f[0])
	}
	if ratio := f[1] / f[0]; math.Abs(ratio-math.Sqrt(3)) > 0.01 {
		t.Errorf("mode ratio %g, want sqrt(3)", ratio)
	}
}

func TestSymmetricMatchesGeneral(t *testing.T) {
	z, v := harmonicSamples(1.0, 100, 201)

	req := Request{Ions: 2, Unit: "[um]", Smoothing: 1e-10, Guess: []float64{-10, 10}}
	general, err := SolveSampled(z, v, req)
	if err != nil {
		t.Fatalf("general solve failed: %v", err)
	}

	symmetric, err := SolveSymmetricSampled(z, v, req)
	if err != nil {
		t.Fatalf("symmetric solve failed: %v", err)
	}

	for i := range general.Positions {
		diff := math.Abs(general.Positions[i] - symmetric.Positions[i])
		if diff > 1e-4*math.Abs(general.Positions[i]) {
			t.Errorf("ion %d: general %g vs symmetric %g um",
				i, general.Positions[i], symmetric.Positions[i])
		}
	}
}

func TestSolveAnalyticClosedForm(t *testing.T) {
	pot := &potential.Harmonic{Curvature: 1.0}

	res, err := SolveAnalytic(pot, Request{
		Ions:  2,
		Unit:  "um",
		Guess: []float64{-1, 1},
	})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// Analytic path: r0 is one unit, here 1 um.
	kappa := trap.DefaultConstants().Coupling(1e-6)
	want := math.Cbrt(kappa / 4)
	if math.Abs(res.Positions[1]-want) > 1e-9*want {
		t.Errorf("right ion at %g, want %g", res.Positions[1], want)
	}
}

func TestSolveSampledBadUnit(t *testing.T) {
	z, v := harmonicSamples(1.0, 100, 50)
	_, err := SolveSampled(z, v, Request{Ions: 2, Unit: "ft", Guess: []float64{-10, 10}})
	if !errors.Is(err, trap.ErrUnrecognizedUnit) {
		t.Errorf("expected ErrUnrecognizedUnit, got %v", err)
	}
}

func TestSolveSampledGuessMismatch(t *testing.T) {
	z, v := harmonicSamples(1.0, 100, 50)
	_, err := SolveSampled(z, v, Request{Ions: 3, Unit: "um", Guess: []float64{-10, 10}})
	if !errors.Is(err, trap.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSolveSymmetricSampledIonCount(t *testing.T) {
	z, v := harmonicSamples(1.0, 100, 50)
	_, err := SolveSymmetricSampled(z, v, Request{Ions: 3, Unit: "um"})
	if !errors.Is(err, trap.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSolveSampledFitFailure(t *testing.T) {
	// Too few samples for the default quintic fit.
	z := []float64{-100, 0, 100}
	v := []float64{0.5, 0, 0.5}
	_, err := SolveSampled(z, v, Request{Ions: 2, Unit: "um", Guess: []float64{-10, 10}})
	if !errors.Is(err, trap.ErrFitFailure) {
		t.Errorf("expected ErrFitFailure, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.ListModels()
	if len(names) != 3 {
		t.Errorf("expected 3 models, got %v", names)
	}

	m, err := r.GetModel("harmonic", map[string]float64{"curvature": 2.0})
	if err != nil {
		t.Fatalf("GetModel failed: %v", err)
	}
	if got := m.GetParams()["curvature"]; got != 2.0 {
		t.Errorf("curvature = %g, want 2", got)
	}

	if _, err := r.GetModel("sextic", nil); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := r.GetModel("harmonic", map[string]float64{"stiffness": 1}); err == nil {
		t.Error("expected error for unknown param")
	}
}
