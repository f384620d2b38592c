package geometry

import "github.com/san-kum/geodyn/internal/tensor"

// GeodesicPoint is one sample along a geodesic: the temporal coordinate
// and the three spatial coordinates.
type GeodesicPoint struct {
	T       float64
	Spatial [3]float64
}

// Vector embeds the point into a spacetime 4-vector.
func (p GeodesicPoint) Vector() tensor.Vec4 {
	return tensor.Vec4{p.T, p.Spatial[0], p.Spatial[1], p.Spatial[2]}
}

// PointFromVector is the inverse of Vector.
func PointFromVector(v tensor.Vec4) GeodesicPoint {
	return GeodesicPoint{T: v[0], Spatial: [3]float64{v[1], v[2], v[3]}}
}

// GeodesicPath is an ordered, immutable sequence of points produced by
// one geodesic solve. Ownership transfers fully to the caller.
type GeodesicPath struct {
	Points         []GeodesicPoint
	TotalParameter float64
	ProperTime     float64
}

// Interpolate returns the piecewise-linear blend of the two samples
// enclosing lambda, assuming uniform spacing TotalParameter/(n-1).
// Values past the recorded range clamp to the last point; negative
// values clamp to the first. Fails with ErrEmptyPath when no points
// have been recorded.
func (p *GeodesicPath) Interpolate(lambda float64) (GeodesicPoint, error) {
	n := len(p.Points)
	if n == 0 {
		return GeodesicPoint{}, ErrEmptyPath
	}
	if n == 1 {
		return p.Points[0], nil
	}

	step := p.TotalParameter / float64(n-1)
	if step <= 0 || lambda <= 0 {
		return p.Points[0], nil
	}

	idx := int(lambda / step)
	if idx >= n-1 {
		return p.Points[n-1], nil
	}

	alpha := (lambda - float64(idx)*step) / step
	a, b := p.Points[idx], p.Points[idx+1]

	out := GeodesicPoint{T: (1-alpha)*a.T + alpha*b.T}
	for i := 0; i < 3; i++ {
		out.Spatial[i] = (1-alpha)*a.Spatial[i] + alpha*b.Spatial[i]
	}
	return out, nil
}
