// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/scan/internal/tensor"

// Backend defines the interface that compute backends implement.
// Backends validate a scan request, queue the work and return the output
// tensor, which is realized once the queued work completes.
//
// Implementations:
//   - backend/cpu: Pure Go with goroutine fan-out and SIMD lanes
//
// Example:
//
//	import (
//	    "github.com/born-ml/scan/tensor"
//	    "github.com/born-ml/scan/backend/cpu"
//	)
//
//	backend := cpu.New()
//	raw, _ := tensor.RawFromSlice(tensor.Shape{3}, []float64{1, 2, 3})
//	out, _ := backend.Scan(raw, 0, tensor.OpSum, true)
//	fmt.Println(out.AsFloat64()) // [1 3 6]
type Backend = tensor.Backend
