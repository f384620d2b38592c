package geometry

import "errors"

var (
	// ErrEmptyPath indicates interpolation on a path with no recorded points.
	ErrEmptyPath = errors.New("geometry: empty geodesic path")

	// ErrSingularMetric indicates the metric could not be inverted; the
	// wrapped cause is tensor.ErrSingularMatrix.
	ErrSingularMetric = errors.New("geometry: metric tensor is singular")
)
