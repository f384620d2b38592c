package tensor

import "math"

// PivotEpsilon is the magnitude below which a Gauss-Jordan pivot is
// treated as singular.
const PivotEpsilon = 1e-10

// Product returns the outer product of two flat tensors.
func Product(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)*len(b))
	for _, av := range a {
		for _, bv := range b {
			out = append(out, av*bv)
		}
	}
	return out
}

// ContractIndices computes C[i,j] = sum_k A[i,k] * B[k,j] for flat tensors
// of the given rank, contracting over contractionDim entries.
func ContractIndices(a, b []float64, rank, contractionDim int) []float64 {
	c := make([]float64, len(a))
	for i := 0; i < rank; i++ {
		for j := 0; j < rank; j++ {
			sum := 0.0
			for k := 0; k < contractionDim; k++ {
				sum += a[i*contractionDim+k] * b[k*rank+j]
			}
			c[i*rank+j] = sum
		}
	}
	return c
}

// Trace sums the diagonal of a flat square matrix of the given dimension.
func Trace(a []float64, dim int) float64 {
	sum := 0.0
	for i := 0; i < dim; i++ {
		sum += a[i*dim+i]
	}
	return sum
}

// RaiseIndex lifts one index with the inverse metric: T^mu_nu = g^{mu lambda} T_{lambda nu}.
func RaiseIndex(lower, gInverse []float64, dim int) []float64 {
	out := make([]float64, len(lower))
	for mu := 0; mu < dim; mu++ {
		for nu := 0; nu < dim; nu++ {
			sum := 0.0
			for lambda := 0; lambda < dim; lambda++ {
				sum += gInverse[mu*dim+lambda] * lower[lambda*dim+nu]
			}
			out[mu*dim+nu] = sum
		}
	}
	return out
}

// LowerIndex drops one index with the metric: T_mu^nu = g_{mu lambda} T^{lambda nu}.
func LowerIndex(upper, gMetric []float64, dim int) []float64 {
	out := make([]float64, len(upper))
	for mu := 0; mu < dim; mu++ {
		for nu := 0; nu < dim; nu++ {
			sum := 0.0
			for lambda := 0; lambda < dim; lambda++ {
				sum += gMetric[mu*dim+lambda] * upper[lambda*dim+nu]
			}
			out[mu*dim+nu] = sum
		}
	}
	return out
}

// Invert4 inverts a flat 4x4 matrix by Gauss-Jordan elimination with
// partial pivoting. The pivot row is the one with the largest absolute
// value in the current column among the remaining rows; a pivot below
// PivotEpsilon returns ErrSingularMatrix.
func Invert4(m []float64) ([]float64, error) {
	if len(m) != 16 {
		return nil, ErrBadLength
	}

	work := make([]float64, 16)
	copy(work, m)
	inv := make([]float64, 16)
	for i := 0; i < 4; i++ {
		inv[i*4+i] = 1.0
	}

	for i := 0; i < 4; i++ {
		pivot := i
		for j := i + 1; j < 4; j++ {
			if math.Abs(work[j*4+i]) > math.Abs(work[pivot*4+i]) {
				pivot = j
			}
		}

		if pivot != i {
			for k := 0; k < 4; k++ {
				work[i*4+k], work[pivot*4+k] = work[pivot*4+k], work[i*4+k]
				inv[i*4+k], inv[pivot*4+k] = inv[pivot*4+k], inv[i*4+k]
			}
		}

		pivotVal := work[i*4+i]
		if math.Abs(pivotVal) < PivotEpsilon {
			return nil, ErrSingularMatrix
		}

		for k := 0; k < 4; k++ {
			work[i*4+k] /= pivotVal
			inv[i*4+k] /= pivotVal
		}

		for j := 0; j < 4; j++ {
			if j == i {
				continue
			}
			factor := work[j*4+i]
			for k := 0; k < 4; k++ {
				work[j*4+k] -= factor * work[i*4+k]
				inv[j*4+k] -= factor * inv[i*4+k]
			}
		}
	}

	return inv, nil
}

// Det4 computes the determinant of a flat 4x4 matrix by cofactor
// expansion along the first row.
func Det4(m []float64) (float64, error) {
	if len(m) != 16 {
		return 0, ErrBadLength
	}

	det := 0.0
	for j := 0; j < 4; j++ {
		minor := minor3(m, 0, j)
		sign := 1.0
		if j%2 == 1 {
			sign = -1.0
		}
		det += sign * m[j] * minor
	}
	return det, nil
}

// minor3 is the determinant of the 3x3 submatrix obtained by deleting
// rowSkip and colSkip.
func minor3(m []float64, rowSkip, colSkip int) float64 {
	var sub [9]float64
	n := 0
	for i := 0; i < 4; i++ {
		if i == rowSkip {
			continue
		}
		for j := 0; j < 4; j++ {
			if j == colSkip {
				continue
			}
			sub[n] = m[i*4+j]
			n++
		}
	}

	return sub[0]*(sub[4]*sub[8]-sub[5]*sub[7]) -
		sub[1]*(sub[3]*sub[8]-sub[5]*sub[6]) +
		sub[2]*(sub[3]*sub[7]-sub[4]*sub[6])
}
