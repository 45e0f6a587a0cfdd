package potential

import "fmt"

// Harmonic is the quadratic well V(ζ) = ½·a·ζ², the leading-order model of
// any trapping potential near its minimum.
type Harmonic struct {
	Curvature float64 // a, in volts per unit ζ²
}

func NewHarmonic() *Harmonic {
	return &Harmonic{Curvature: 1.0}
}

func (h *Harmonic) Value(zeta float64) float64 { return 0.5 * h.Curvature * zeta * zeta }
func (h *Harmonic) D1(zeta float64) float64    { return h.Curvature * zeta }
func (h *Harmonic) D2(zeta float64) float64    { return h.Curvature }

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"curvature": h.Curvature}
}

func (h *Harmonic) SetParam(name string, value float64) error {
	switch name {
	case "curvature":
		h.Curvature = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// Quartic is the anharmonic well V(ζ) = ½·a·ζ² + ¼·b·ζ⁴.
type Quartic struct {
	Curvature float64 // a
	Quartic   float64 // b
}

func NewQuartic() *Quartic {
	return &Quartic{Curvature: 1.0, Quartic: 0.5}
}

func (q *Quartic) Value(zeta float64) float64 {
	z2 := zeta * zeta
	return 0.5*q.Curvature*z2 + 0.25*q.Quartic*z2*z2
}

func (q *Quartic) D1(zeta float64) float64 {
	return q.Curvature*zeta + q.Quartic*zeta*zeta*zeta
}

func (q *Quartic) D2(zeta float64) float64 {
	return q.Curvature + 3*q.Quartic*zeta*zeta
}

func (q *Quartic) GetParams() map[string]float64 {
	return map[string]float64{"curvature": q.Curvature, "quartic": q.Quartic}
}

func (q *Quartic) SetParam(name string, value float64) error {
	switch name {
	case "curvature":
		q.Curvature = value
	case "quartic":
		q.Quartic = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// DoubleWell is V(ζ) = -½·a·ζ² + ¼·b·ζ⁴, a double-well potential used to
// model split chains. Its centre is an unstable equilibrium, which makes it
// the standard fixture for negative-eigenvalue handling.
type DoubleWell struct {
	Barrier   float64 // a
	Confining float64 // b
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{Barrier: 1.0, Confining: 2.0}
}

func (d *DoubleWell) Value(zeta float64) float64 {
	z2 := zeta * zeta
	return -0.5*d.Barrier*z2 + 0.25*d.Confining*z2*z2
}

func (d *DoubleWell) D1(zeta float64) float64 {
	return -d.Barrier*zeta + d.Confining*zeta*zeta*zeta
}

func (d *DoubleWell) D2(zeta float64) float64 {
	return -d.Barrier + 3*d.Confining*zeta*zeta
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"barrier": d.Barrier, "confining": d.Confining}
}

func (d *DoubleWell) SetParam(name string, value float64) error {
	switch name {
	case "barrier":
		d.Barrier = value
	case "confining":
		d.Confining = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
