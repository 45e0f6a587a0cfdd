// Package axial wires the solver chain end to end: rescale sampled field
// data, reconstruct the potential, find the equilibrium configuration, and
// extract the axial mode spectrum. It is the programmatic surface the CLI
// and sweep layers sit on.
package axial

import (
	"fmt"

	"github.com/san-kum/trapmodes/internal/equilibrium"
	"github.com/san-kum/trapmodes/internal/modes"
	"github.com/san-kum/trapmodes/internal/potential"
	"github.com/san-kum/trapmodes/internal/trap"
	"github.com/san-kum/trapmodes/internal/units"
)

// Request carries everything a solve needs besides the field data itself.
// The zero value of optional fields falls back to solver defaults.
type Request struct {
	Ions int
	Mass float64 // kg
	Unit string  // length unit of the sample coordinates

	// Spline reconstruction (sampled mode only).
	Degree    int
	Smoothing float64

	// Initial guess in the sample unit (general solver only).
	Guess []float64

	Method        equilibrium.Method
	Tol           float64
	MaxIter       int
	MinSeparation float64

	// Symmetric 2-ion bracket scan parameters.
	Symmetric equilibrium.SymmetricOptions

	WantVectors bool

	// Constants defaults to trap.DefaultConstants when zero.
	Constants trap.Constants
}

// Result is the output of a solve: equilibrium positions in the unit the
// input used, and the mode spectrum at that equilibrium.
type Result struct {
	Positions []float64 // physical, in the request unit
	Spectrum  *trap.Spectrum
	Scale     potential.Scale
	R0        float64 // meters
}

func (r Request) withDefaults() Request {
	if r.Ions == 0 {
		r.Ions = 2
	}
	if r.Mass == 0 {
		r.Mass = trap.MassCa40
	}
	if r.Unit == "" {
		r.Unit = "[um]"
	}
	if r.Degree == 0 {
		r.Degree = 5
	}
	if r.Constants.IsZero() {
		r.Constants = trap.DefaultConstants()
	}
	return r
}

func (r Request) solverOptions() equilibrium.Options {
	opt := equilibrium.DefaultOptions()
	if r.Method != "" {
		opt.Method = r.Method
	}
	if r.Tol > 0 {
		opt.Tol = r.Tol
	}
	if r.MaxIter > 0 {
		opt.MaxIter = r.MaxIter
	}
	if r.MinSeparation > 0 {
		opt.MinSeparation = r.MinSeparation
	}
	return opt
}

// SolveSampled reconstructs the potential from (z, v) samples and runs the
// general N-ion solve followed by mode extraction. Coordinates are rescaled
// by the maximum absolute sample coordinate.
func SolveSampled(z, v []float64, req Request) (*Result, error) {
	req = req.withDefaults()

	factor, err := units.ToMeters(req.Unit)
	if err != nil {
		return nil, err
	}
	if len(req.Guess) != req.Ions {
		return nil, fmt.Errorf("%w: %d guess positions for %d ions",
			trap.ErrDimensionMismatch, len(req.Guess), req.Ions)
	}

	scale := potential.ScaleFromMaxAbs(z)
	r0 := scale.R0(factor)

	spl, err := potential.Fit(scale.DimensionlessAll(z), v, req.Degree, req.Smoothing)
	if err != nil {
		return nil, err
	}

	kappa := req.Constants.Coupling(r0)
	eq, err := equilibrium.Solve(spl, scale.DimensionlessAll(req.Guess), kappa, req.solverOptions())
	if err != nil {
		return nil, err
	}

	spec, err := modes.Axial(spl, eq, r0, req.Mass, req.Constants, req.WantVectors)
	if err != nil {
		return nil, err
	}

	return &Result{
		Positions: scale.PhysicalAll(eq),
		Spectrum:  spec,
		Scale:     scale,
		R0:        r0,
	}, nil
}

// SolveSymmetricSampled is the 2-ion variant exploiting reflection
// symmetry of the sampled potential. It rescales by the maximum sample
// coordinate, the convention this path has always used.
func SolveSymmetricSampled(z, v []float64, req Request) (*Result, error) {
	req = req.withDefaults()
	if req.Ions != 2 {
		return nil, fmt.Errorf("%w: symmetric solve supports exactly 2 ions, got %d",
			trap.ErrDimensionMismatch, req.Ions)
	}

	factor, err := units.ToMeters(req.Unit)
	if err != nil {
		return nil, err
	}

	scale := potential.ScaleFromMax(z)
	r0 := scale.R0(factor)

	spl, err := potential.Fit(scale.DimensionlessAll(z), v, req.Degree, req.Smoothing)
	if err != nil {
		return nil, err
	}

	kappa := req.Constants.Coupling(r0)
	eq, err := equilibrium.SolveSymmetric(spl, kappa, req.Symmetric)
	if err != nil {
		return nil, err
	}

	spec, err := modes.Axial(spl, eq, r0, req.Mass, req.Constants, req.WantVectors)
	if err != nil {
		return nil, err
	}

	return &Result{
		Positions: scale.PhysicalAll(eq),
		Spectrum:  spec,
		Scale:     scale,
		R0:        r0,
	}, nil
}

// SolveAnalytic runs the solve chain on a closed-form potential. The
// coordinate is taken to be expressed in the request unit already, so the
// length scale is one unit (r0 = unit factor).
func SolveAnalytic(pot potential.Potential, req Request) (*Result, error) {
	req = req.withDefaults()

	factor, err := units.ToMeters(req.Unit)
	if err != nil {
		return nil, err
	}
	if len(req.Guess) != req.Ions {
		return nil, fmt.Errorf("%w: %d guess positions for %d ions",
			trap.ErrDimensionMismatch, len(req.Guess), req.Ions)
	}

	scale := potential.Unit()
	r0 := factor

	kappa := req.Constants.Coupling(r0)
	eq, err := equilibrium.Solve(pot, req.Guess, kappa, req.solverOptions())
	if err != nil {
		return nil, err
	}

	spec, err := modes.Axial(pot, eq, r0, req.Mass, req.Constants, req.WantVectors)
	if err != nil {
		return nil, err
	}

	return &Result{
		Positions: eq,
		Spectrum:  spec,
		Scale:     scale,
		R0:        r0,
	}, nil
}
