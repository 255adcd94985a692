package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Tensor is a generic tensor with element type T and backend B.
//
// Type Parameters:
//   - T: Data type (must satisfy DType constraint)
//   - B: Computation backend (must implement Backend interface)
//
// Example:
//
//	backend := cpu.New()
//	t, _ := tensor.FromSliceT([]int32{1, 2, 3, 4}, Shape{4}, backend)
//	sums, _ := tensor.Scan[int32](t, 0, OpSum, true) // [1 3 6 10]
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a Tensor from a RawTensor and backend.
// It panics if the raw tensor's dtype does not match T.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	if want := DataTypeOf[T](); raw.DType() != want {
		exceptions.Panicf("tensor.New: raw tensor has dtype %s, want %s", raw.DType(), want)
	}
	return &Tensor[T, B]{
		raw:     raw,
		backend: b,
	}
}

// FromSliceT creates a tensor from a Go slice, copied column-major into the tensor's memory.
func FromSliceT[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	raw, err := FromSlice(shape, data)
	if err != nil {
		return nil, err
	}
	return New[T, B](raw, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// Device returns the tensor's compute device.
func (t *Tensor[T, B]) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
// Used by backend implementations for low-level operations.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Eval waits until the tensor contents are available.
func (t *Tensor[T, B]) Eval() error {
	return t.raw.Eval()
}

// Data returns a typed slice view of the tensor's data, in column-major order.
// It panics if the tensor could not be realized.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T, B]) Data() []T {
	return As[T](t.raw)
}

// At returns the element at the given coordinates, axis 0 first.
// Missing trailing coordinates are taken as 0.
func (t *Tensor[T, B]) At(indices ...int) T {
	shape := t.Shape()
	if len(indices) > len(shape) {
		exceptions.Panicf("At: got %d indices for shape %v", len(indices), shape)
	}
	strides := t.raw.Strides()
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			exceptions.Panicf("At: index %d out of range for axis %d of shape %v", idx, i, shape)
		}
		offset += idx * strides[i]
	}
	return t.Data()[offset]
}

// String returns a short description of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.DType(), t.Shape(), t.Device())
}

// Scan runs the backend scan over t and returns a tensor of the promoted
// output type O. It fails if O is not the type the operator produces for T.
//
// Example:
//
//	counts, err := tensor.Scan[uint32](t, 0, OpCountNonZero, true)
func Scan[O, T DType, B Backend](t *Tensor[T, B], axis int, op Op, inclusive bool) (*Tensor[O, B], error) {
	out, err := t.backend.Scan(t.raw, axis, op, inclusive)
	if err != nil {
		return nil, err
	}
	return wrapOutput[O](out, t.backend)
}

// ScanByKey is the segmented form of Scan: accumulation restarts wherever key
// changes value along axis.
func ScanByKey[O, K, T DType, B Backend](key *Tensor[K, B], t *Tensor[T, B], axis int, op Op, inclusive bool) (*Tensor[O, B], error) {
	out, err := t.backend.ScanByKey(key.raw, t.raw, axis, op, inclusive)
	if err != nil {
		return nil, err
	}
	return wrapOutput[O](out, t.backend)
}

func wrapOutput[O DType, B Backend](out *RawTensor, b B) (*Tensor[O, B], error) {
	if want := DataTypeOf[O](); out.DType() != want {
		return nil, errors.Errorf("scan produces %s, requested %s", out.DType(), want)
	}
	return &Tensor[O, B]{raw: out, backend: b}, nil
}
