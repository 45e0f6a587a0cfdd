package potential

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trapmodes/internal/trap"
)

// Spline is a smoothing B-spline fit to (ζ, V) samples. It implements
// Potential; evaluation outside the sample range extends the boundary
// polynomial, so extrapolated values carry no accuracy guarantee.
//
// A Spline is immutable after Fit and safe for concurrent use.
type Spline struct {
	degree int
	knots  []float64
	coefs  []float64

	d1knots []float64
	d1coefs []float64
	d2knots []float64
	d2coefs []float64

	residual float64
}

// Fit fits a smoothing spline of the given degree (1..5) to the samples.
// Sites must be strictly monotonic with at least degree+1 points. smooth
// bounds the residual sum of squares: the fit is the smoothest spline (in
// the penalized least-squares sense) whose residual stays within smooth;
// smooth == 0 interpolates the samples.
func Fit(x, y []float64, degree int, smooth float64) (*Spline, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d sites vs %d values", trap.ErrFitFailure, len(x), len(y))
	}
	if degree < 1 || degree > 5 {
		return nil, fmt.Errorf("%w: degree %d outside [1,5]", trap.ErrFitFailure, degree)
	}
	n := len(x)
	if n < degree+1 {
		return nil, fmt.Errorf("%w: %d points, need at least %d for degree %d",
			trap.ErrFitFailure, n, degree+1, degree)
	}
	if smooth < 0 {
		return nil, fmt.Errorf("%w: negative smoothing factor %g", trap.ErrFitFailure, smooth)
	}

	x, y, err := orderedSites(x, y)
	if err != nil {
		return nil, err
	}

	k := degree
	knots := averagedKnots(x, k)

	// Collocation matrix: row i holds the k+1 basis functions active at x[i].
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		span := findSpan(knots, k, n, x[i])
		basis := basisFuncs(knots, span, k, x[i])
		for r := 0; r <= k; r++ {
			b.Set(i, span-k+r, basis[r])
		}
	}

	var btb mat.Dense
	btb.Mul(b.T(), b)
	yVec := mat.NewVecDense(n, y)
	var bty mat.VecDense
	bty.MulVec(b.T(), yVec)

	penalty := differencePenalty(n)

	coefs, residual, err := solvePenalized(&btb, &bty, penalty, b, yVec, smooth)
	if err != nil {
		return nil, err
	}

	s := &Spline{
		degree:   k,
		knots:    knots,
		coefs:    coefs,
		residual: residual,
	}
	s.d1knots, s.d1coefs = derivativeSpline(s.knots, s.coefs, k)
	if k >= 2 {
		s.d2knots, s.d2coefs = derivativeSpline(s.d1knots, s.d1coefs, k-1)
	}
	return s, nil
}

func (s *Spline) Value(zeta float64) float64 {
	return deBoor(s.knots, s.coefs, s.degree, zeta)
}

func (s *Spline) D1(zeta float64) float64 {
	return deBoor(s.d1knots, s.d1coefs, s.degree-1, zeta)
}

func (s *Spline) D2(zeta float64) float64 {
	if s.degree < 2 {
		return 0
	}
	return deBoor(s.d2knots, s.d2coefs, s.degree-2, zeta)
}

// Degree returns the polynomial degree of the fit.
func (s *Spline) Degree() int { return s.degree }

// Residual returns the achieved residual sum of squares.
func (s *Spline) Residual() float64 { return s.residual }

// orderedSites validates strict monotonicity, reversing descending input.
func orderedSites(x, y []float64) ([]float64, []float64, error) {
	n := len(x)
	ascending := x[n-1] > x[0]
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		j := i
		if !ascending {
			j = n - 1 - i
		}
		xs[i] = x[j]
		ys[i] = y[j]
	}
	for i := 1; i < n; i++ {
		if xs[i] <= xs[i-1] {
			return nil, nil, fmt.Errorf("%w: sites not strictly monotonic at index %d", trap.ErrFitFailure, i)
		}
	}
	return xs, ys, nil
}

// averagedKnots builds a clamped knot vector with interior knots at running
// averages of the sites, which satisfies the Schoenberg-Whitney conditions
// for the collocation matrix.
func averagedKnots(x []float64, k int) []float64 {
	n := len(x)
	t := make([]float64, n+k+1)
	for i := 0; i <= k; i++ {
		t[i] = x[0]
		t[n+k-i] = x[n-1]
	}
	for j := 1; j <= n-k-1; j++ {
		sum := 0.0
		for i := j; i < j+k; i++ {
			sum += x[i]
		}
		t[k+j] = sum / float64(k)
	}
	return t
}

// differencePenalty returns DᵀD for the second-order difference operator on
// m coefficients, the roughness penalty of the smoothing fit.
func differencePenalty(m int) *mat.Dense {
	p := mat.NewDense(m, m, nil)
	if m < 3 {
		return p
	}
	d := mat.NewDense(m-2, m, nil)
	for i := 0; i < m-2; i++ {
		d.Set(i, i, 1)
		d.Set(i, i+1, -2)
		d.Set(i, i+2, 1)
	}
	p.Mul(d.T(), d)
	return p
}

// solvePenalized solves (BᵀB + λDᵀD)c = Bᵀy, picking the largest λ whose
// residual stays within smooth. λ=0 recovers interpolation.
func solvePenalized(btb *mat.Dense, bty *mat.VecDense, penalty, b *mat.Dense, y *mat.VecDense, smooth float64) ([]float64, float64, error) {
	m := bty.Len()

	solve := func(lambda float64) ([]float64, float64, error) {
		sym := mat.NewSymDense(m, nil)
		for i := 0; i < m; i++ {
			for j := i; j < m; j++ {
				sym.SetSym(i, j, btb.At(i, j)+lambda*penalty.At(i, j))
			}
		}
		var ch mat.Cholesky
		if ok := ch.Factorize(sym); !ok {
			return nil, 0, fmt.Errorf("%w: normal equations not positive definite", trap.ErrFitFailure)
		}
		c := mat.NewVecDense(m, nil)
		if err := ch.SolveVecTo(c, bty); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", trap.ErrFitFailure, err)
		}
		var fit mat.VecDense
		fit.MulVec(b, c)
		rss := 0.0
		for i := 0; i < y.Len(); i++ {
			r := y.AtVec(i) - fit.AtVec(i)
			rss += r * r
		}
		return c.RawVector().Data, rss, nil
	}

	coefs, rss, err := solve(0)
	if err != nil {
		return nil, 0, err
	}
	if smooth == 0 {
		return coefs, rss, nil
	}

	// Grow λ until the residual bound is crossed, then bisect back to the
	// largest admissible smoothing.
	lo, hi := 0.0, 1e-10
	crossed := false
	for i := 0; i < 100; i++ {
		_, rssHi, err := solve(hi)
		if err != nil {
			break
		}
		if rssHi > smooth {
			crossed = true
			break
		}
		lo = hi
		hi *= 4
	}
	if !crossed {
		c, r, err := solve(lo)
		if err != nil {
			return coefs, rss, nil
		}
		return c, r, nil
	}
	for i := 0; i < 80; i++ {
		mid := 0.5 * (lo + hi)
		_, rssMid, err := solve(mid)
		if err != nil || rssMid > smooth {
			hi = mid
		} else {
			lo = mid
		}
	}
	if lo > 0 {
		if c, r, err := solve(lo); err == nil {
			return c, r, nil
		}
	}
	return coefs, rss, nil
}

// derivativeSpline returns the knots and coefficients of the derivative of
// a degree-k spline.
func derivativeSpline(t, c []float64, k int) ([]float64, []float64) {
	m := len(c)
	dc := make([]float64, m-1)
	for i := 0; i < m-1; i++ {
		den := t[i+k+1] - t[i+1]
		if den != 0 {
			dc[i] = float64(k) * (c[i+1] - c[i]) / den
		}
	}
	dt := make([]float64, len(t)-2)
	copy(dt, t[1:len(t)-1])
	return dt, dc
}

// findSpan locates the knot span containing x, clamped to the valid range
// so out-of-range evaluation extends the boundary polynomial.
func findSpan(t []float64, k, numBasis int, x float64) int {
	if x >= t[numBasis] {
		return numBasis - 1
	}
	if x <= t[k] {
		return k
	}
	lo, hi := k, numBasis-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// basisFuncs evaluates the k+1 B-spline basis functions active on the given
// span (Cox-de Boor recursion).
func basisFuncs(t []float64, span, k int, x float64) []float64 {
	n := make([]float64, k+1)
	left := make([]float64, k+1)
	right := make([]float64, k+1)
	n[0] = 1
	for j := 1; j <= k; j++ {
		left[j] = x - t[span+1-j]
		right[j] = t[span+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}

// deBoor evaluates a B-spline with the given knots and coefficients at x.
func deBoor(t, c []float64, k int, x float64) float64 {
	span := findSpan(t, k, len(c), x)
	basis := basisFuncs(t, span, k, x)
	sum := 0.0
	for r := 0; r <= k; r++ {
		sum += c[span-k+r] * basis[r]
	}
	return sum
}
