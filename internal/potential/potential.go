package potential

// Potential is a twice-differentiable scalar potential of one dimensionless
// coordinate. Implementations must be safe for concurrent reads once
// constructed.
type Potential interface {
	Value(zeta float64) float64
	D1(zeta float64) float64
	D2(zeta float64) float64
}

// Analytic adapts three closed-form callables to the Potential interface.
// All three must be non-nil.
type Analytic struct {
	V   func(float64) float64
	DV  func(float64) float64
	DDV func(float64) float64
}

func (a Analytic) Value(zeta float64) float64 { return a.V(zeta) }
func (a Analytic) D1(zeta float64) float64    { return a.DV(zeta) }
func (a Analytic) D2(zeta float64) float64    { return a.DDV(zeta) }
