package analysis

import (
	"math"

	"github.com/san-kum/geodyn/internal/geodesic"
	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/tensor"
)

// PathDivergence integrates two geodesics whose starting points differ
// by perturbation along the first spatial axis and returns the spatial
// separation at each shared sample. Growing separation signals tidal
// focusing or defocusing along the trajectory; on a flat background the
// separation stays at its initial value.
func PathDivergence(
	m *geometry.Manifold,
	start geometry.GeodesicPoint,
	velocity tensor.Vec4,
	perturbation float64,
	stepSize, parameterRange float64,
) ([]float64, error) {
	solver, err := geodesic.New(m, stepSize)
	if err != nil {
		return nil, err
	}

	ref, err := solver.Solve(start, velocity, parameterRange)
	if err != nil {
		return nil, err
	}

	shifted := start
	shifted.Spatial[0] += perturbation

	alt, err := solver.Solve(shifted, velocity, parameterRange)
	if err != nil {
		return nil, err
	}

	n := len(ref.Points)
	if len(alt.Points) < n {
		n = len(alt.Points)
	}

	sep := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			d := alt.Points[i].Spatial[j] - ref.Points[i].Spatial[j]
			sum += d * d
		}
		sep[i] = math.Sqrt(sum)
	}

	return sep, nil
}
