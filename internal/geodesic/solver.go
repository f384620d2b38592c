// Package geodesic integrates free-fall trajectories through a curved
// manifold by formulating the second-order geodesic equation
//
//	d^2 x^mu / dtau^2 = -Gamma^mu_alpha,beta (dx^alpha/dtau)(dx^beta/dtau)
//
// as an 8-dimensional first-order system (position in the first four
// components, 4-velocity in the last four) over an ODE integrator.
package geodesic

import (
	"math"

	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/integrators"
	"github.com/san-kum/geodyn/internal/ode"
	"github.com/san-kum/geodyn/internal/tensor"
)

const stateDim = 8

// Solver binds a manifold to an integrator. Not safe for concurrent
// use: the integrator may keep scratch buffers and the manifold
// promotes cached curvature state during a solve.
type Solver struct {
	manifold *geometry.Manifold
	integ    ode.Integrator
}

// New creates a geodesic solver over a fixed-step RK4 integrator.
// stepSize must be positive.
func New(manifold *geometry.Manifold, stepSize float64) (*Solver, error) {
	integ, err := integrators.NewRK4(stepSize)
	if err != nil {
		return nil, err
	}
	return &Solver{manifold: manifold, integ: integ}, nil
}

// NewAdaptive creates a geodesic solver over a step-doubling RK4
// integrator with the given error tolerance and step bounds.
func NewAdaptive(manifold *geometry.Manifold, dtInitial, tolerance, minDt, maxDt float64) (*Solver, error) {
	integ, err := integrators.NewAdaptiveRK4(dtInitial, tolerance, minDt, maxDt)
	if err != nil {
		return nil, err
	}
	return &Solver{manifold: manifold, integ: integ}, nil
}

// Solve integrates a geodesic from start with the given initial
// 4-velocity over [0, parameterRange] and returns the ordered path.
//
// The velocity is normalized to g_mu,nu u^mu u^nu = -1 before
// integration, so scaled copies of the same input produce identical
// trajectories regardless of which solve path is used.
func (s *Solver) Solve(start geometry.GeodesicPoint, velocity tensor.Vec4, parameterRange float64) (*geometry.GeodesicPath, error) {
	// Surface a singular metric before committing to the integration;
	// the symbols stay cached for the per-step evaluations below.
	if _, err := s.manifold.ChristoffelSymbols(); err != nil {
		return nil, err
	}

	u := s.normalize(velocity)

	y0 := make(ode.State, stateDim)
	pos := start.Vector()
	for i := 0; i < 4; i++ {
		y0[i] = pos[i]
		y0[i+4] = u[i]
	}

	traj, err := s.integ.Solve(s.rhs, y0, 0, parameterRange)
	if err != nil {
		return nil, err
	}

	path := &geometry.GeodesicPath{
		Points:         make([]geometry.GeodesicPoint, 0, len(traj)),
		TotalParameter: parameterRange,
		ProperTime:     parameterRange,
	}
	for _, sample := range traj {
		path.Points = append(path.Points, geometry.GeodesicPoint{
			T:       sample.Y[0],
			Spatial: [3]float64{sample.Y[1], sample.Y[2], sample.Y[3]},
		})
	}
	return path, nil
}

// Step advances a single point and 4-velocity by one integrator step
// without renormalizing, so a caller can march a particle while the
// metric evolves between steps.
func (s *Solver) Step(point geometry.GeodesicPoint, velocity tensor.Vec4, h float64) (geometry.GeodesicPoint, tensor.Vec4, error) {
	if _, err := s.manifold.ChristoffelSymbols(); err != nil {
		return point, velocity, err
	}

	y := make(ode.State, stateDim)
	pos := point.Vector()
	for i := 0; i < 4; i++ {
		y[i] = pos[i]
		y[i+4] = velocity[i]
	}

	traj, err := s.integ.Solve(s.rhs, y, 0, h)
	if err != nil {
		return point, velocity, err
	}

	last, ok := traj.Final()
	if !ok {
		return point, velocity, nil
	}
	final := last.Y
	var nextPos, nextVel tensor.Vec4
	for i := 0; i < 4; i++ {
		nextPos[i] = final[i]
		nextVel[i] = final[i+4]
	}
	return geometry.PointFromVector(nextPos), nextVel, nil
}

// rhs evaluates (dx/dtau, du/dtau) reading the manifold's current
// Christoffel symbols at each call.
func (s *Solver) rhs(_ float64, y ode.State) ode.State {
	gamma, err := s.manifold.ChristoffelSymbols()
	if err != nil {
		// Solve validated the metric up front and nothing mutates the
		// manifold during integration, so the cached symbols stay valid.
		return make(ode.State, stateDim)
	}
	g := gamma.Data()

	dy := make(ode.State, stateDim)
	for i := 0; i < 4; i++ {
		dy[i] = y[i+4]
	}

	for mu := 0; mu < 4; mu++ {
		sum := 0.0
		for alpha := 0; alpha < 4; alpha++ {
			for beta := 0; beta < 4; beta++ {
				sum += g[mu*16+alpha*4+beta] * y[alpha+4] * y[beta+4]
			}
		}
		dy[mu+4] = -sum
	}

	return dy
}

// normalize rescales u so the metric contraction g_mu,nu u^mu u^nu has
// unit magnitude. A degenerate contraction leaves u unchanged.
func (s *Solver) normalize(u tensor.Vec4) tensor.Vec4 {
	g := s.manifold.Metric().Data()

	norm := 0.0
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			norm += g[mu*4+nu] * u[mu] * u[nu]
		}
	}

	scale := math.Sqrt(math.Abs(norm))
	if scale == 0 {
		return u
	}
	for i := range u {
		u[i] /= scale
	}
	return u
}
