// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/scan/internal/ops"
	"github.com/born-ml/scan/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
	Float16    DataType = tensor.Float16
	Int8       DataType = tensor.Int8
	Int16      DataType = tensor.Int16
	Int32      DataType = tensor.Int32
	Int64      DataType = tensor.Int64
	Uint8      DataType = tensor.Uint8
	Uint16     DataType = tensor.Uint16
	Uint32     DataType = tensor.Uint32
	Uint64     DataType = tensor.Uint64
	Bool       DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the only device scans run on.
const CPU Device = tensor.CPU

// Shape represents the extents of a tensor, axis 0 first.
// Example: Shape{2, 3} is 2 rows by 3 columns, stored column by column.
type Shape = tensor.Shape

// Dim4 is a shape padded with ones to exactly MaxDims axes.
type Dim4 = tensor.Dim4

// MaxDims is the highest supported rank.
const MaxDims = tensor.MaxDims

// Op identifies a scan operator.
type Op = tensor.Op

// Scan operators.
const (
	OpSum          Op = tensor.OpSum
	OpProduct      Op = tensor.OpProduct
	OpMin          Op = tensor.OpMin
	OpMax          Op = tensor.OpMax
	OpCountNonZero Op = tensor.OpCountNonZero
)

// Ops lists every scan operator in declaration order.
var Ops = tensor.Ops

// Errors returned (wrapped) by scans. Test for them with errors.Is.
var (
	ErrInvalidAxis     = tensor.ErrInvalidAxis
	ErrUnsupportedRank = tensor.ErrUnsupportedRank
	ErrUnsupportedType = ops.ErrUnsupportedType
	ErrShapeMismatch   = tensor.ErrShapeMismatch
)

// Tensor is a generic type-safe tensor.
//
// T is the element type, B the backend that runs scans over it.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
//	y, _ := tensor.Scan[float32](x, 0, tensor.OpProduct, true) // [1 2 6]
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// FromSlice creates a tensor from a Go slice laid out column-major.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSliceT[T, B](data, shape, b)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float32](tensor.Shape{2, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Iota creates a tensor holding 0, 1, 2, ... in column-major order.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Iota[int32](tensor.Shape{2, 3}, backend) // columns [0 1], [2 3], [4 5]
func Iota[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Iota[T, B](shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new zeroed raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// RawFromSlice creates a raw tensor holding a copy of data.
func RawFromSlice[T DType](shape Shape, data []T) (*RawTensor, error) {
	return tensor.FromSlice(shape, data)
}

// NewPendingRaw creates a raw tensor whose contents are produced by realize
// on first access.
//
// Example:
//
//	raw, _ := tensor.NewPendingRaw(tensor.Shape{3}, tensor.Int32, tensor.CPU, func() error {
//	    return loadFromDisk()
//	})
func NewPendingRaw(shape Shape, dtype DataType, device Device, realize func() error) (*RawTensor, error) {
	return tensor.NewPendingRaw(shape, dtype, device, realize)
}

// Scan functions

// Scan computes the running reduction of t along axis with op.
//
// O must be the output type op promotes T to (see OutputType); for example
// int8 sums produce int32 and every count-nonzero produces uint32.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]int32{1, 2, 3, 4}, tensor.Shape{4}, backend)
//	incl, _ := tensor.Scan[int32](x, 0, tensor.OpSum, true)  // [1 3 6 10]
//	excl, _ := tensor.Scan[int32](x, 0, tensor.OpSum, false) // [0 1 3 6]
func Scan[O, T DType, B Backend](t *Tensor[T, B], axis int, op Op, inclusive bool) (*Tensor[O, B], error) {
	return tensor.Scan[O](t, axis, op, inclusive)
}

// ScanByKey is Scan restarted wherever key changes value along axis.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]int32{1, 2, 3, 4, 5}, tensor.Shape{5}, backend)
//	k, _ := tensor.FromSlice([]int32{0, 0, 1, 1, 1}, tensor.Shape{5}, backend)
//	y, _ := tensor.ScanByKey[int32](k, x, 0, tensor.OpSum, true) // [1 3 3 7 12]
func ScanByKey[O, K, T DType, B Backend](key *Tensor[K, B], t *Tensor[T, B], axis int, op Op, inclusive bool) (*Tensor[O, B], error) {
	return tensor.ScanByKey[O](key, t, axis, op, inclusive)
}

// Accum is the inclusive running sum of t along axis.
func Accum[O, T DType, B Backend](t *Tensor[T, B], axis int) (*Tensor[O, B], error) {
	return tensor.Scan[O](t, axis, OpSum, true)
}

// Utility functions

// OutputType returns the element type op produces for inputs of type in.
func OutputType(op Op, in DataType) (DataType, error) {
	return ops.OutputType(op, in)
}

// ParseOp resolves an operator name such as "sum" or "count_nonzero".
func ParseOp(name string) (Op, bool) {
	return tensor.ParseOp(name)
}

// ParseDataType resolves a data type name such as "float32".
func ParseDataType(name string) (DataType, bool) {
	return tensor.ParseDataType(name)
}
