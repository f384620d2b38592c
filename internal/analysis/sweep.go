package analysis

import (
	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/tensor"
)

// SweepPoint records the scalar curvature observed at one scale factor
// of the input ramp.
type SweepPoint struct {
	Scale       float64
	RicciScalar float64
}

// CurvatureSweep ramps the density and flow inputs from scaleMin to
// scaleMax over the given number of steps, updating the manifold's
// metric at each step and recording the resulting Ricci scalar. The
// manifold is left holding the final metric of the ramp.
func CurvatureSweep(
	m *geometry.Manifold,
	density [4]float64,
	flow [4]tensor.Vec4,
	scaleMin, scaleMax float64,
	steps int,
) ([]SweepPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	scaleStep := (scaleMax - scaleMin) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		scale := scaleMin + float64(i)*scaleStep

		var d [4]float64
		var f [4]tensor.Vec4
		for j := 0; j < 4; j++ {
			d[j] = density[j] * scale
			for k := 0; k < 4; k++ {
				f[j][k] = flow[j][k] * scale
			}
		}

		m.UpdateMetric(d, f)
		r, err := m.RicciScalar()
		if err != nil {
			return points, err
		}

		points = append(points, SweepPoint{Scale: scale, RicciScalar: r})
	}

	return points, nil
}
