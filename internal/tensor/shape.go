package tensor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxDims is the highest effective rank a tensor may have.
const MaxDims = 4

// Shape represents the extents of a tensor, one per axis.
//
// Axis 0 is the fastest-varying axis in memory (column-major layout), so
// Shape{2, 3} holds 3 columns of 2 contiguous elements each.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return errors.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// NDims returns the effective rank: one plus the highest axis with an extent
// greater than 1, and at least 1. Trailing axes of extent 1 do not count.
//
// Examples:
//
//	Shape{4}.NDims()       // 1
//	Shape{4, 1, 1}.NDims() // 1
//	Shape{1, 3}.NDims()    // 2
func (s Shape) NDims() int {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] > 1 {
			return i + 1
		}
	}
	return 1
}

// Dim4 returns the shape padded with trailing 1s to MaxDims axes.
// It fails with ErrUnsupportedRank if the effective rank exceeds MaxDims.
func (s Shape) Dim4() (Dim4, error) {
	d := Dim4{1, 1, 1, 1}
	if rank := s.NDims(); rank > MaxDims {
		return d, errors.Wrapf(ErrUnsupportedRank, "shape %v has rank %d, at most %d is supported", s, rank, MaxDims)
	}
	for i := 0; i < len(s) && i < MaxDims; i++ {
		d[i] = s[i]
	}
	return d, nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates column-major strides for the shape.
// stride[0] = 1 and stride[i] = stride[i-1] * shape[i-1].
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[0] = 1
	for i := 1; i < len(s); i++ {
		strides[i] = strides[i-1] * s[i-1]
	}
	return strides
}

// String returns the shape as "[d0 x d1 x ...]".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(parts, " x ") + "]"
}

// Dim4 is a shape fixed to MaxDims axes, used by rank-specialized kernels.
type Dim4 [MaxDims]int

// Strides returns the column-major strides of d.
func (d Dim4) Strides() Dim4 {
	var s Dim4
	s[0] = 1
	for i := 1; i < MaxDims; i++ {
		s[i] = s[i-1] * d[i-1]
	}
	return s
}

// NumElements returns the product of all extents.
func (d Dim4) NumElements() int {
	return d[0] * d[1] * d[2] * d[3]
}

// CheckAxis validates that axis lies within [0, NDims()) of s.
// Negative axes are rejected rather than wrapped.
func (s Shape) CheckAxis(axis int) error {
	if rank := s.NDims(); axis < 0 || axis >= rank {
		return errors.Wrapf(ErrInvalidAxis, "axis %d out of range for shape %v of rank %d", axis, s, rank)
	}
	return nil
}
