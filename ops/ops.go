// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops exposes the scan operator catalog: which (operator, dtype)
// pairs are supported, the dtype each one produces and its identity.
//
// Example:
//
//	out, err := ops.OutputType(tensor.OpSum, tensor.Int8) // Int32
//	_, err = ops.Lookup(tensor.OpMin, tensor.Complex64)  // ErrUnsupportedType
package ops

import (
	"github.com/born-ml/scan/internal/ops"
	"github.com/born-ml/scan/tensor"
)

// Entry describes one supported (operator, input dtype) combination.
type Entry = ops.Entry

// ErrUnsupportedType is returned (wrapped) for pairs with no catalog entry.
var ErrUnsupportedType = ops.ErrUnsupportedType

// Lookup returns the catalog entry for op applied to inputs of type in.
func Lookup(op tensor.Op, in tensor.DataType) (Entry, error) {
	return ops.Lookup(op, in)
}

// OutputType returns the dtype op produces for inputs of type in.
func OutputType(op tensor.Op, in tensor.DataType) (tensor.DataType, error) {
	return ops.OutputType(op, in)
}

// Supported lists every catalog entry, ordered by operator then input dtype.
func Supported() []Entry {
	return ops.Supported()
}
