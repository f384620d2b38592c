package geometry

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/geodyn/internal/tensor"
)

// curvatureStage identifies how far the derived-value chain has been
// computed for the current metric. Stages only ever advance; UpdateMetric
// resets the chain to stageStale.
type curvatureStage int

const (
	stageStale curvatureStage = iota
	stageChristoffel
	stageRiemann
	stageRicci
	stageScalar
)

// Manifold is a 4D spacetime with a Lorentzian metric (signature -+++).
// It owns the metric tensor and a staged cache of the curvature tensors
// derived from it. Not safe for concurrent use.
type Manifold struct {
	log *slog.Logger

	metric      *tensor.Dense // 4x4, symmetric
	christoffel *tensor.Dense // 4x4x4
	riemann     *tensor.Dense // 4x4x4x4
	ricci       *tensor.Dense // 4x4
	ricciScalar float64

	stage     curvatureStage
	threshold float64
}

// NewManifold returns a manifold with the flat Minkowski background
// diag(-1, 1, 1, 1).
func NewManifold() *Manifold {
	m := &Manifold{
		log:         slog.Default(),
		metric:      tensor.NewDense(4, 4),
		christoffel: tensor.NewDense(4, 4, 4),
		riemann:     tensor.NewDense(4, 4, 4, 4),
		ricci:       tensor.NewDense(4, 4),
		stage:       stageStale,
		threshold:   SingularityThreshold,
	}

	g := m.metric.Data()
	g[0] = -1
	g[5] = 1
	g[10] = 1
	g[15] = 1

	return m
}

// Metric returns a copy of the current metric tensor.
func (m *Manifold) Metric() *tensor.Dense { return m.metric.Clone() }

// SetSingularityThreshold overrides the scalar-curvature magnitude above
// which DetectSingularities reports. Non-positive values are ignored.
func (m *Manifold) SetSingularityThreshold(v float64) {
	if v > 0 {
		m.threshold = v
	}
}

// UpdateMetric applies a linearized weak-field perturbation around the
// Minkowski background. density carries one mass-like input per
// coordinate direction; flow carries one 4-vector flux per direction.
// The resulting matrix is symmetric by construction. All cached
// curvature tensors are invalidated.
func (m *Manifold) UpdateMetric(density [4]float64, flow [4]tensor.Vec4) {
	g := m.metric.Data()
	c2 := speedOfLight * speedOfLight

	var potential [4]float64
	totalMass := 0.0
	for i := 0; i < 4; i++ {
		r := math.Sqrt(density[i] + densityFloor)
		potential[i] = -gravConstant * density[i] / r
		totalMass += density[i]
	}

	// g_00 = -(1 + 2*phi/c^2)
	g[0] = -(1.0 + 2.0*potential[0]/c2)

	// Spatial diagonal: potential term plus a flux-magnitude correction
	// normalized by the total input mass.
	for i := 1; i < 4; i++ {
		flux := math.Sqrt(flow[i].Dot(flow[i]))
		g[i*4+i] = 1.0 - 2.0*potential[i]/c2 + flux/(totalMass+densityFloor)
	}

	// Frame-dragging off-diagonals, mirrored to keep g symmetric.
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			cross := flow[i].Dot(flow[j]) / c2
			g[i*4+j] = cross
			g[j*4+i] = cross
		}
	}

	m.stage = stageStale
}

// advanceTo promotes the derived-value chain until it reaches target.
// Each promotion recomputes exactly one stage from the one below it.
func (m *Manifold) advanceTo(target curvatureStage) error {
	for m.stage < target {
		switch m.stage {
		case stageStale:
			if err := m.promoteChristoffel(); err != nil {
				return err
			}
		case stageChristoffel:
			m.promoteRiemann()
		case stageRiemann:
			m.promoteRicci()
		case stageRicci:
			if err := m.promoteScalar(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ChristoffelSymbols returns a copy of the connection coefficients
// Gamma^k_ij for the current metric, computing them if stale.
func (m *Manifold) ChristoffelSymbols() (*tensor.Dense, error) {
	if err := m.advanceTo(stageChristoffel); err != nil {
		return nil, err
	}
	return m.christoffel.Clone(), nil
}

// RiemannTensor returns a copy of R^rho_sigma,mu,nu.
func (m *Manifold) RiemannTensor() (*tensor.Dense, error) {
	if err := m.advanceTo(stageRiemann); err != nil {
		return nil, err
	}
	return m.riemann.Clone(), nil
}

// RicciTensor returns a copy of R_mu,nu.
func (m *Manifold) RicciTensor() (*tensor.Dense, error) {
	if err := m.advanceTo(stageRicci); err != nil {
		return nil, err
	}
	return m.ricci.Clone(), nil
}

// RicciScalar returns the full curvature contraction R = g^mu,nu R_mu,nu.
func (m *Manifold) RicciScalar() (float64, error) {
	if err := m.advanceTo(stageScalar); err != nil {
		return 0, err
	}
	return m.ricciScalar, nil
}

// DetectSingularities reports curvature singularities of the current
// metric. When the scalar curvature magnitude crosses the threshold it
// returns exactly one record at the coordinate origin, with the
// equivalent mass and Schwarzschild-like radius logged as diagnostics.
func (m *Manifold) DetectSingularities() ([]tensor.Vec4, error) {
	r, err := m.RicciScalar()
	if err != nil {
		return nil, err
	}

	if math.Abs(r) <= m.threshold {
		return nil, nil
	}

	c2 := speedOfLight * speedOfLight
	massEq := math.Abs(r) * c2 / (2.0 * gravConstant)
	radius := 2.0 * gravConstant * massEq / c2

	m.log.Warn("curvature singularity detected",
		"ricci_scalar", r,
		"equivalent_mass", massEq,
		"schwarzschild_radius", radius,
	)

	return []tensor.Vec4{{0, 0, 0, 0}}, nil
}

// metricDerivative estimates the partial derivative of the metric along
// coordinate mu. Only the temporal drift of g_00 is modeled, scaled by
// its deviation from the flat background so an unperturbed metric has
// an exactly zero connection; spatial derivatives of the linearized
// metric are zero.
func (m *Manifold) metricDerivative(mu int) []float64 {
	d := make([]float64, 16)
	if mu == 0 {
		d[0] = metricTimeDrift * (m.metric.Data()[0] + 1.0)
	}
	return d
}

// promoteChristoffel computes
//
//	Gamma^k_ij = 1/2 g^kl (d_j g_il + d_i g_jl - d_l g_ij)
//
// and advances the stage. Fails if the metric is not invertible.
func (m *Manifold) promoteChristoffel() error {
	gInv, err := tensor.Invert4(m.metric.Data())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularMetric, err)
	}

	var dg [4][]float64
	for mu := 0; mu < 4; mu++ {
		dg[mu] = m.metricDerivative(mu)
	}

	gamma := m.christoffel.Data()
	for k := 0; k < 4; k++ {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				sum := 0.0
				for l := 0; l < 4; l++ {
					term := dg[j][i*4+l] + dg[i][j*4+l] - dg[l][i*4+j]
					sum += gInv[k*4+l] * term
				}
				gamma[k*16+i*4+j] = 0.5 * sum
			}
		}
	}

	m.stage = stageChristoffel
	return nil
}

// promoteRiemann assembles
//
//	R^rho_sigma,mu,nu = d_mu Gamma^rho_nu,sigma - d_nu Gamma^rho_mu,sigma
//	                  + Gamma^rho_mu,lambda Gamma^lambda_nu,sigma
//	                  - Gamma^rho_nu,lambda Gamma^lambda_mu,sigma
//
// The connection is treated as quasi-static: the finite-difference
// commutator samples the cached Gamma at both stencil offsets, so that
// term is identically zero and only the quadratic products contribute.
func (m *Manifold) promoteRiemann() {
	gamma := m.christoffel.Data()

	var dgamma [4][]float64
	for mu := 0; mu < 4; mu++ {
		dgamma[mu] = make([]float64, 64)
		for rho := 0; rho < 4; rho++ {
			for sigma := 0; sigma < 4; sigma++ {
				for nu := 0; nu < 4; nu++ {
					const h = 1e-6
					gammaPlus := gamma[rho*16+sigma*4+nu]
					gammaMinus := gamma[rho*16+sigma*4+nu]
					dgamma[mu][rho*16+sigma*4+nu] = (gammaPlus - gammaMinus) / (2.0 * h)
				}
			}
		}
	}

	riem := m.riemann.Data()
	for rho := 0; rho < 4; rho++ {
		for sigma := 0; sigma < 4; sigma++ {
			for mu := 0; mu < 4; mu++ {
				for nu := 0; nu < 4; nu++ {
					term1 := dgamma[mu][rho*16+nu*4+sigma]
					term2 := -dgamma[nu][rho*16+mu*4+sigma]

					term3 := 0.0
					term4 := 0.0
					for lambda := 0; lambda < 4; lambda++ {
						term3 += gamma[rho*16+mu*4+lambda] * gamma[lambda*16+nu*4+sigma]
						term4 += gamma[rho*16+nu*4+lambda] * gamma[lambda*16+mu*4+sigma]
					}

					riem[rho*64+sigma*16+mu*4+nu] = term1 + term2 + term3 - term4
				}
			}
		}
	}

	m.stage = stageRiemann
}

// promoteRicci contracts the Riemann tensor over its first and third
// indices: R_mu,nu = R^lambda_mu,lambda,nu.
func (m *Manifold) promoteRicci() {
	riem := m.riemann.Data()
	ric := m.ricci.Data()

	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			sum := 0.0
			for lambda := 0; lambda < 4; lambda++ {
				sum += riem[lambda*64+mu*16+lambda*4+nu]
			}
			ric[mu*4+nu] = sum
		}
	}

	m.stage = stageRicci
}

// promoteScalar contracts the Ricci tensor with a freshly computed
// inverse metric.
func (m *Manifold) promoteScalar() error {
	gInv, err := tensor.Invert4(m.metric.Data())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularMetric, err)
	}

	ric := m.ricci.Data()
	scalar := 0.0
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			scalar += gInv[mu*4+nu] * ric[mu*4+nu]
		}
	}

	m.ricciScalar = scalar
	m.stage = stageScalar
	return nil
}
