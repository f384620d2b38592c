package tensor

import "errors"

var (
	// ErrSingularMatrix indicates a pivot smaller than the singularity
	// threshold during Gauss-Jordan elimination.
	ErrSingularMatrix = errors.New("tensor: singular matrix")

	// ErrShapeMismatch indicates operands with incompatible dimensions.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrBadLength indicates a flat slice whose length does not match the
	// expected rank/dimension.
	ErrBadLength = errors.New("tensor: flat data length does not match dimensions")
)
