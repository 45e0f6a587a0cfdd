package trap

import "math"

// CODATA 2018 values.
const (
	// ElementaryCharge is the elementary charge in coulombs.
	ElementaryCharge = 1.602176634e-19

	// VacuumPermittivity is ε0 in F/m.
	VacuumPermittivity = 8.8541878128e-12

	// AtomicMassKg is one unified atomic mass unit in kilograms.
	AtomicMassKg = 1.66053906660e-27
)

// MassCa40 is the mass of a calcium-40 ion in kilograms, the default
// species for trap calculations.
var MassCa40 = MassAMU(40.078)

// MassAMU converts a mass in atomic mass units to kilograms.
func MassAMU(amu float64) float64 {
	return amu * AtomicMassKg
}

// Constants holds the physical constants a solve depends on. The zero
// value is not usable; obtain one from DefaultConstants and treat it as
// immutable.
type Constants struct {
	E        float64 // elementary charge [C]
	Epsilon0 float64 // vacuum permittivity [F/m]
}

func DefaultConstants() Constants {
	return Constants{
		E:        ElementaryCharge,
		Epsilon0: VacuumPermittivity,
	}
}

// Coupling returns κ = e/(4π ε0 r0), the Coulomb coupling for the
// dimensionless force-balance system at length scale r0 (meters).
func (c Constants) Coupling(r0 float64) float64 {
	return c.E / (4 * math.Pi * c.Epsilon0 * r0)
}

// IsZero reports whether c is the zero value (i.e. unset).
func (c Constants) IsZero() bool {
	return c.E == 0 && c.Epsilon0 == 0
}
