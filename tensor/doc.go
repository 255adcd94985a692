// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe dimensional scans over dense arrays.
//
// # Overview
//
// A scan (running reduction) replaces every element of a line along one axis
// with the combination of all elements before it (exclusive) or up to and
// including it (inclusive). This package provides:
//   - Generic type-safe tensors (Tensor[T, B]) of rank 1 to 4
//   - Five scan operators: sum, product, min, max and count-nonzero
//   - Segmented scans (ScanByKey) restarting wherever a key changes
//   - Lazy results: a scan returns immediately and its output is
//     materialized on first access
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/scan/backend/cpu"
//	    "github.com/born-ml/scan/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    defer backend.Close()
//
//	    x, _ := tensor.FromSlice([]int32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
//
//	    // Running sum down each column: [1 2 4 6 9 12]
//	    y, _ := tensor.Scan[int32](x, 0, tensor.OpSum, true)
//	    fmt.Println(y.Data())
//	}
//
// # Layout
//
// Data is stored column-major: axis 0 varies fastest. A Shape{2, 3} tensor
// built from [1 2 3 4 5 6] has columns [1 2], [3 4] and [5 6]. Trailing
// axes of extent 1 do not count towards the rank, so Shape{5, 1, 1} is a
// rank-1 tensor and only axis 0 may be scanned.
//
// # Supported Data Types
//
// The DType constraint admits float16, float32, float64, complex64,
// complex128, all signed and unsigned integers from 8 to 64 bits, and bool.
// Narrow inputs are promoted: int8 and int16 accumulate in int32, uint8,
// uint16 and bool in uint32. Count-nonzero always produces uint32. Complex
// inputs have no min or max. See the ops package for the full table.
//
// # Errors
//
// Scan and ScanByKey validate before any work is queued and return errors
// wrapping ErrInvalidAxis, ErrUnsupportedRank, ErrUnsupportedType or
// ErrShapeMismatch; test for them with errors.Is.
package tensor
