// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/scan/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat32(), AsInt32(), etc.
//   - Lazy evaluation via Eval() and IsRealized()
//   - Reference counting for efficient memory management
//
// Most users should use the high-level Tensor[T, B] type instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()  // Type-safe access
//	clone := raw.Clone()     // Shares buffer via reference counting
type RawTensor = tensor.RawTensor

// As returns the realized data of r as a []T. It panics if T does not match
// r's dtype or if realizing r fails.
func As[T DType](r *RawTensor) []T {
	return tensor.As[T](r)
}

// Buffer returns the typed data of r without realizing it. Producers use it
// to fill a tensor created with NewPendingRaw from inside its realize
// function. It panics if T does not match r's dtype.
func Buffer[T DType](r *RawTensor) []T {
	return tensor.Buffer[T](r)
}
