package tensor

// Vec4 is a spacetime 4-vector (index 0 temporal, 1-3 spatial).
type Vec4 [4]float64

// Dot returns the plain Euclidean dot product. Metric-aware contraction
// lives in the algebra functions.
func (v Vec4) Dot(w Vec4) float64 {
	sum := 0.0
	for i := 0; i < 4; i++ {
		sum += v[i] * w[i]
	}
	return sum
}

// Dense is a fixed-rank numeric array over row-major flat storage.
// A Dense value owns its data; no operation aliases the storage of another.
type Dense struct {
	dims []int
	data []float64
}

// NewDense allocates a zero-filled tensor with the given dimensions.
func NewDense(dims ...int) *Dense {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return &Dense{
		dims: append([]int(nil), dims...),
		data: make([]float64, n),
	}
}

// NewDenseOf wraps a copy of flat row-major data in a tensor.
func NewDenseOf(data []float64, dims ...int) (*Dense, error) {
	n := 1
	for _, d := range dims {
		n *= d
	}
	if len(data) != n {
		return nil, ErrBadLength
	}
	t := NewDense(dims...)
	copy(t.data, data)
	return t, nil
}

func (t *Dense) Rank() int { return len(t.dims) }
func (t *Dense) Len() int  { return len(t.data) }

// Dims returns a copy of the dimension sizes.
func (t *Dense) Dims() []int { return append([]int(nil), t.dims...) }

// Data exposes the flat row-major storage. Hot loops in the geometry
// pipeline index it directly.
func (t *Dense) Data() []float64 { return t.data }

func (t *Dense) offset(idx []int) int {
	off := 0
	for i, ix := range idx {
		off = off*t.dims[i] + ix
	}
	return off
}

// At returns the element at the given multi-index.
func (t *Dense) At(idx ...int) float64 { return t.data[t.offset(idx)] }

// Set stores v at the given multi-index.
func (t *Dense) Set(v float64, idx ...int) { t.data[t.offset(idx)] = v }

// Clone returns an independent copy.
func (t *Dense) Clone() *Dense {
	c := NewDense(t.dims...)
	copy(c.data, t.data)
	return c
}

// Zero resets every element.
func (t *Dense) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

// Add accumulates other element-wise into t.
func (t *Dense) Add(other *Dense) error {
	if !sameDims(t.dims, other.dims) {
		return ErrShapeMismatch
	}
	for i := range t.data {
		t.data[i] += other.data[i]
	}
	return nil
}

// Scale multiplies every element by f.
func (t *Dense) Scale(f float64) {
	for i := range t.data {
		t.data[i] *= f
	}
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
