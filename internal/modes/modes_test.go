package modes_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trapmodes/internal/equilibrium"
	"github.com/san-kum/trapmodes/internal/modes"
	"github.com/san-kum/trapmodes/internal/potential"
	"github.com/san-kum/trapmodes/internal/trap"
)

var _ = Describe("Axial", func() {
	const r0 = 1e-4 // 100 um characteristic length

	var (
		consts trap.Constants
		kappa  float64
		mass   float64
		pot    *potential.Harmonic
	)

	BeforeEach(func() {
		consts = trap.DefaultConstants()
		kappa = consts.Coupling(r0)
		mass = trap.MassCa40
		pot = &potential.Harmonic{Curvature: 1.0}
	})

	// Closed-form two-ion equilibrium in the harmonic well.
	twoIonEq := func() []float64 {
		u := math.Cbrt(kappa / 4)
		return []float64{-u, u}
	}

	It("reproduces the single-ion frequency as the two-ion in-phase mode", func() {
		single, err := modes.Axial(pot, []float64{0}, r0, mass, consts, false)
		Expect(err).NotTo(HaveOccurred())

		pair, err := modes.Axial(pot, twoIonEq(), r0, mass, consts, false)
		Expect(err).NotTo(HaveOccurred())

		f0 := single.Frequencies[0]
		Expect(pair.Frequencies[0]).To(BeNumerically("~", f0, 0.01*f0))
		Expect(pair.Frequencies[1]).To(BeNumerically("~", math.Sqrt(3)*f0, 0.01*f0))
	})

	It("returns frequencies sorted ascending with their eigenvalues", func() {
		eq, err := equilibrium.Solve(pot, []float64{-0.06, -0.02, 0.02, 0.06}, kappa, equilibrium.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		spec, err := modes.Axial(pot, eq, r0, mass, consts, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.Frequencies).To(HaveLen(4))
		for i := 1; i < len(spec.Eigenvalues); i++ {
			Expect(spec.Eigenvalues[i]).To(BeNumerically(">=", spec.Eigenvalues[i-1]))
			Expect(spec.Frequencies[i]).To(BeNumerically(">=", spec.Frequencies[i-1]))
		}
	})

	It("is invariant under a coordinate sign flip", func() {
		// An asymmetric well and its mirror image: flipping the sign
		// convention of the coordinate must leave the spectrum unchanged.
		tilted := potential.Analytic{
			V:   func(z float64) float64 { return 0.5*z*z + 0.3*z*z*z },
			DV:  func(z float64) float64 { return z + 0.9*z*z },
			DDV: func(z float64) float64 { return 1 + 1.8*z },
		}
		mirror := potential.Analytic{
			V:   func(z float64) float64 { return tilted.V(-z) },
			DV:  func(z float64) float64 { return -tilted.DV(-z) },
			DDV: func(z float64) float64 { return tilted.DDV(-z) },
		}

		eq, err := equilibrium.Solve(tilted, []float64{-0.05, 0.0, 0.05}, kappa, equilibrium.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		flipped := make([]float64, len(eq))
		for i, z := range eq {
			flipped[len(eq)-1-i] = -z
		}

		spec, err := modes.Axial(tilted, eq, r0, mass, consts, false)
		Expect(err).NotTo(HaveOccurred())
		flipSpec, err := modes.Axial(mirror, flipped, r0, mass, consts, false)
		Expect(err).NotTo(HaveOccurred())

		for i := range spec.Frequencies {
			Expect(flipSpec.Frequencies[i]).To(BeNumerically("~", spec.Frequencies[i], 1e-6*spec.Frequencies[i]))
		}
	})

	It("builds an exactly symmetric Hessian", func() {
		eq := []float64{-0.07, -0.01, 0.04}
		h, err := modes.Hessian(pot, eq, kappa)
		Expect(err).NotTo(HaveOccurred())

		n, _ := h.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				Expect(h.At(i, j)).To(Equal(h.At(j, i)))
			}
		}
	})

	It("permutes eigenvectors consistently with the eigenvalue sort", func() {
		spec, err := modes.Axial(pot, twoIonEq(), r0, mass, consts, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.Vectors).NotTo(BeNil())

		// Lowest mode is the in-phase (centre of mass) motion, highest the
		// out-of-phase stretch.
		com := []float64{spec.Vectors.At(0, 0), spec.Vectors.At(1, 0)}
		stretch := []float64{spec.Vectors.At(0, 1), spec.Vectors.At(1, 1)}
		Expect(com[0] * com[1]).To(BeNumerically(">", 0))
		Expect(stretch[0] * stretch[1]).To(BeNumerically("<", 0))
	})

	It("rejects an unstable equilibrium", func() {
		well := potential.NewDoubleWell()
		// The origin sits on top of the barrier: V''(0) < 0.
		_, err := modes.Axial(well, []float64{0}, r0, mass, consts, false)
		Expect(err).To(MatchError(trap.ErrUnstable))
	})

	It("rejects coincident equilibrium positions", func() {
		_, err := modes.Axial(pot, []float64{0.1, 0.1}, r0, mass, consts, false)
		Expect(err).To(MatchError(trap.ErrDegenerate))
	})

	It("produces a physically sized frequency", func() {
		// A 1 V/ζ² well at 100 um for Ca-40 sits in the low-MHz range.
		spec, err := modes.Axial(pot, []float64{0}, r0, mass, consts, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.Frequencies[0]).To(BeNumerically(">", 1e5))
		Expect(spec.Frequencies[0]).To(BeNumerically("<", 1e8))
	})
})
