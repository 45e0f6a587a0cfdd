package potential

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/trapmodes/internal/trap"
)

func sampleFunc(f func(float64) float64, lo, hi float64, n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		y[i] = f(x[i])
	}
	return x, y
}

func TestFitRoundTrip(t *testing.T) {
	// Dense samples of a quartic; value and both derivatives must match the
	// analytic forms at interior points.
	f := func(z float64) float64 { return 0.5*z*z + 0.25*z*z*z*z }
	df := func(z float64) float64 { return z + z*z*z }
	ddf := func(z float64) float64 { return 1 + 3*z*z }

	x, y := sampleFunc(f, -1, 1, 201)
	spl, err := Fit(x, y, 5, 1e-10)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	for _, z := range []float64{-0.9, -0.5, -0.123, 0.0, 0.31, 0.77, 0.95} {
		if got, want := spl.Value(z), f(z); math.Abs(got-want) > 1e-5 {
			t.Errorf("Value(%g) = %g, want %g", z, got, want)
		}
		if got, want := spl.D1(z), df(z); math.Abs(got-want) > 1e-3 {
			t.Errorf("D1(%g) = %g, want %g", z, got, want)
		}
		if got, want := spl.D2(z), ddf(z); math.Abs(got-want) > 1e-1 {
			t.Errorf("D2(%g) = %g, want %g", z, got, want)
		}
	}

	if spl.Residual() > 1e-10 {
		t.Errorf("residual %g exceeds smoothing bound", spl.Residual())
	}
}

func TestFitInterpolates(t *testing.T) {
	f := math.Sin
	x, y := sampleFunc(f, 0, 3, 40)
	spl, err := Fit(x, y, 3, 0)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	for i, xi := range x {
		if got := spl.Value(xi); math.Abs(got-y[i]) > 1e-8 {
			t.Errorf("interpolant misses sample %d: %g vs %g", i, got, y[i])
		}
	}
}

func TestFitDescendingSites(t *testing.T) {
	x, y := sampleFunc(func(z float64) float64 { return z * z }, -1, 1, 30)
	// Reverse into descending order; the fit must accept either direction.
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
		y[i], y[j] = y[j], y[i]
	}
	spl, err := Fit(x, y, 3, 0)
	if err != nil {
		t.Fatalf("fit failed on descending sites: %v", err)
	}
	if got := spl.Value(0.5); math.Abs(got-0.25) > 1e-8 {
		t.Errorf("Value(0.5) = %g, want 0.25", got)
	}
}

func TestFitSmoothsNoise(t *testing.T) {
	// Deterministic sawtooth "noise" on a parabola; a loose residual bound
	// must damp it below the raw noise level in the second derivative.
	n := 101
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = -1 + 2*float64(i)/float64(n-1)
		noise := 1e-3
		if i%2 == 0 {
			noise = -1e-3
		}
		y[i] = 0.5*x[i]*x[i] + noise
	}
	spl, err := Fit(x, y, 3, float64(n)*1e-6*2)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if got := spl.D2(0.1); math.Abs(got-1.0) > 0.3 {
		t.Errorf("smoothed D2 = %g, want ~1", got)
	}
}

func TestFitFailure(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 4, 9}

	cases := []struct {
		name   string
		x, y   []float64
		degree int
		smooth float64
	}{
		{"length mismatch", x, y[:3], 3, 0},
		{"degree too low", x, y, 0, 0},
		{"degree too high", x, y, 6, 0},
		{"too few points", x[:3], y[:3], 3, 0},
		{"negative smoothing", x, y, 3, -1},
		{"duplicate site", []float64{0, 1, 1, 2}, y, 3, 0},
		{"non-monotonic", []float64{0, 2, 1, 3}, y, 3, 0},
	}

	for _, tc := range cases {
		if _, err := Fit(tc.x, tc.y, tc.degree, tc.smooth); !errors.Is(err, trap.ErrFitFailure) {
			t.Errorf("%s: expected ErrFitFailure, got %v", tc.name, err)
		}
	}
}

func TestSplineExtrapolates(t *testing.T) {
	x, y := sampleFunc(func(z float64) float64 { return z * z }, -1, 1, 50)
	spl, err := Fit(x, y, 3, 0)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	// Outside the sample range the boundary polynomial extends; it must at
	// least be finite and continuous with the boundary value.
	v := spl.Value(1.05)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("extrapolated value not finite: %g", v)
	}
	if math.Abs(spl.Value(1.0)-1.0) > 1e-8 {
		t.Errorf("boundary value %g, want 1", spl.Value(1.0))
	}
}
