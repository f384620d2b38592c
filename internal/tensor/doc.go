// Package tensor provides dense fixed-rank numeric arrays and the flat-slice
// tensor algebra used by the geometry pipeline.
//
// A [Dense] value owns its storage; Clone before sharing across call sites
// that mutate. The free functions ([ContractIndices], [Trace], [RaiseIndex],
// [LowerIndex], [Invert4], [Det4]) operate on row-major flat slices with
// caller-supplied rank and dimension, so they are usable independent of the
// manifold types built on top of them.
//
// Invert4 is the single matrix inverter in the repository: both the curvature
// pipeline and any ad-hoc algebra go through the same pivoting policy and
// singularity threshold.
package tensor
