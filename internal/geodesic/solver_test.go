package geodesic_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/geodyn/internal/geodesic"
	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/ode"
	"github.com/san-kum/geodyn/internal/tensor"
)

var _ = Describe("Solver", func() {
	var manifold *geometry.Manifold

	BeforeEach(func() {
		manifold = geometry.NewManifold()
	})

	Describe("construction", func() {
		It("rejects a non-positive step size", func() {
			_, err := geodesic.New(manifold, 0)
			Expect(err).To(MatchError(ode.ErrStepSize))

			_, err = geodesic.New(manifold, -0.1)
			Expect(err).To(MatchError(ode.ErrStepSize))
		})
	})

	Describe("on a flat background", func() {
		It("produces a straight line at constant velocity", func() {
			solver, err := geodesic.New(manifold, 0.01)
			Expect(err).NotTo(HaveOccurred())

			start := geometry.GeodesicPoint{T: 0, Spatial: [3]float64{1, 2, 3}}
			velocity := tensor.Vec4{1, 0.5, 0, 0}

			path, err := solver.Solve(start, velocity, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(path.Points).NotTo(BeEmpty())

			// Normalized velocity: g u u = -1 + 0.25 = -0.75.
			scale := math.Sqrt(0.75)
			u := tensor.Vec4{1 / scale, 0.5 / scale, 0, 0}

			step := path.TotalParameter / float64(len(path.Points)-1)
			for i, p := range path.Points {
				tau := float64(i) * step
				Expect(p.T).To(BeNumerically("~", start.T+u[0]*tau, 1e-9))
				Expect(p.Spatial[0]).To(BeNumerically("~", start.Spatial[0]+u[1]*tau, 1e-9))
				Expect(p.Spatial[1]).To(BeNumerically("~", start.Spatial[1], 1e-12))
				Expect(p.Spatial[2]).To(BeNumerically("~", start.Spatial[2], 1e-12))
			}
		})

		It("includes both endpoints of the parameter range", func() {
			solver, _ := geodesic.New(manifold, 0.03)

			path, err := solver.Solve(geometry.GeodesicPoint{}, tensor.Vec4{1, 0, 0, 0}, 0.1)
			Expect(err).NotTo(HaveOccurred())

			Expect(path.TotalParameter).To(Equal(0.1))
			// 0.03 + 0.03 + 0.03 + clipped remainder
			Expect(len(path.Points)).To(Equal(5))
		})
	})

	Describe("velocity normalization", func() {
		It("produces identical trajectories for scaled initial velocities", func() {
			s1, _ := geodesic.New(manifold, 0.01)
			s2, _ := geodesic.New(manifold, 0.01)

			start := geometry.GeodesicPoint{T: 0, Spatial: [3]float64{0, 0, 0}}

			p1, err := s1.Solve(start, tensor.Vec4{1, 0.2, 0.1, 0}, 1.0)
			Expect(err).NotTo(HaveOccurred())
			p2, err := s2.Solve(start, tensor.Vec4{3, 0.6, 0.3, 0}, 1.0)
			Expect(err).NotTo(HaveOccurred())

			Expect(len(p2.Points)).To(Equal(len(p1.Points)))
			for i := range p1.Points {
				Expect(p2.Points[i].T).To(BeNumerically("~", p1.Points[i].T, 1e-12))
				for j := 0; j < 3; j++ {
					Expect(p2.Points[i].Spatial[j]).To(BeNumerically("~", p1.Points[i].Spatial[j], 1e-12))
				}
			}
		})
	})

	Describe("on a perturbed metric", func() {
		It("bends the trajectory away from the straight line", func() {
			manifold.UpdateMetric(
				[4]float64{1e54, 1e52, 1e52, 1e52},
				[4]tensor.Vec4{{0, 1e3, 0, 0}, {0, 0, 2e3, 0}, {0, -1e3, 0, 1e3}, {1e3, 0, 0, 0}},
			)

			solver, _ := geodesic.New(manifold, 0.01)
			start := geometry.GeodesicPoint{}

			path, err := solver.Solve(start, tensor.Vec4{1, 0, 0, 0}, 1.0)
			Expect(err).NotTo(HaveOccurred())

			// With a nonzero connection the 4-velocity cannot stay
			// constant, so the temporal coordinate drifts off the
			// straight-line prediction u^0 * tau.
			first := path.Points[1].T - path.Points[0].T
			last := path.Points[len(path.Points)-1].T - path.Points[len(path.Points)-2].T
			Expect(math.Abs(last - first)).To(BeNumerically(">", 1e-9))
		})

		It("propagates a singular metric as an error", func() {
			g := singularManifold()
			solver, _ := geodesic.New(g, 0.01)

			_, err := solver.Solve(geometry.GeodesicPoint{}, tensor.Vec4{1, 0, 0, 0}, 1.0)
			Expect(err).To(MatchError(geometry.ErrSingularMetric))
		})
	})

	Describe("single stepping", func() {
		It("advances position and keeps the velocity on a flat background", func() {
			solver, _ := geodesic.New(manifold, 0.01)

			point := geometry.GeodesicPoint{T: 0, Spatial: [3]float64{1, 0, 0}}
			velocity := tensor.Vec4{1, 0.25, 0, 0}

			next, nextVel, err := solver.Step(point, velocity, 0.1)
			Expect(err).NotTo(HaveOccurred())

			// Step does not renormalize, so the raw velocity carries
			// straight through the flat connection.
			Expect(next.T).To(BeNumerically("~", 0.1, 1e-12))
			Expect(next.Spatial[0]).To(BeNumerically("~", 1.025, 1e-12))
			Expect(nextVel).To(Equal(velocity))
		})

		It("propagates a singular metric as an error", func() {
			solver, _ := geodesic.New(singularManifold(), 0.01)

			_, _, err := solver.Step(geometry.GeodesicPoint{}, tensor.Vec4{1, 0, 0, 0}, 0.1)
			Expect(err).To(MatchError(geometry.ErrSingularMetric))
		})
	})

	Describe("adaptive construction", func() {
		It("validates tolerance and step bounds", func() {
			_, err := geodesic.NewAdaptive(manifold, 0.01, 0, 1e-8, 0.1)
			Expect(err).To(MatchError(ode.ErrTolerance))

			_, err = geodesic.NewAdaptive(manifold, 0.01, 1e-6, 0.1, 1e-8)
			Expect(err).To(MatchError(ode.ErrStepBounds))
		})

		It("matches the straight line on a flat background", func() {
			solver, err := geodesic.NewAdaptive(manifold, 0.01, 1e-6, 1e-8, 0.1)
			Expect(err).NotTo(HaveOccurred())

			path, err := solver.Solve(geometry.GeodesicPoint{}, tensor.Vec4{1, 0, 0, 0}, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(path.Points).NotTo(BeEmpty())

			// The step controller stops after crossing the range, so the
			// last sample lands at or just past it. T tracks tau on a
			// flat background with u = (1, 0, 0, 0).
			final := path.Points[len(path.Points)-1]
			Expect(final.T).To(BeNumerically(">=", 1.0))
			Expect(final.T).To(BeNumerically("<", 1.2))
			Expect(final.Spatial[0]).To(BeNumerically("~", 0, 1e-12))
		})
	})

	Describe("interpolation on solver output", func() {
		It("recovers intermediate samples on a flat background", func() {
			solver, _ := geodesic.New(manifold, 0.01)

			start := geometry.GeodesicPoint{}
			path, err := solver.Solve(start, tensor.Vec4{1, 0, 0, 0}, 1.0)
			Expect(err).NotTo(HaveOccurred())

			mid, err := path.Interpolate(0.5)
			Expect(err).NotTo(HaveOccurred())
			// u normalizes to (1,0,0,0) on Minkowski, so T tracks tau.
			Expect(mid.T).To(BeNumerically("~", 0.5, 1e-9))
		})
	})
})

// singularManifold drives g_00 to zero: with no flow the temporal
// column degenerates and the metric loses its inverse.
func singularManifold() *geometry.Manifold {
	m := geometry.NewManifold()

	// g_00 = -(1 - 2*G*sqrt(rho)/c^2) cancels when sqrt(rho) = c^2/(2G).
	const c2 = 299792458.0 * 299792458.0
	const g = 6.6743e-11
	rho := (c2 / (2 * g)) * (c2 / (2 * g))

	m.UpdateMetric([4]float64{rho, 0, 0, 0}, [4]tensor.Vec4{})
	return m
}
