// Package geometry models a 4-dimensional pseudo-Riemannian manifold:
// a symmetric metric tensor and the curvature pipeline derived from it
// (Christoffel symbols, Riemann and Ricci tensors, scalar curvature),
// plus singularity detection and geodesic path types.
//
// Derived tensors are held in an explicitly staged cache. The stages
// form a strict dependency chain
//
//	stale -> christoffel -> riemann -> ricci -> scalar
//
// and every accessor promotes the cache exactly as far as it needs.
// UpdateMetric is the only mutator and resets the chain atomically.
//
// # Thread Safety
//
// A Manifold is owned by a single goroutine. Curvature accessors
// promote cached state as a side effect, so concurrent use requires
// external serialization (one Manifold per worker, or a caller-held
// mutex).
package geometry
