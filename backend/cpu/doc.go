// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for dimensional scans.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - One scan kernel per rank (1 to 4), chosen at dispatch
//   - Independent lines fanned out over goroutines
//   - SIMD lanes (go-highway) for float32/float64 sums and products
//   - An in-order work queue, synchronous by default
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
//	    x, _ := tensor.FromSlice([]float64{3, 1, 2}, tensor.Shape{3}, backend)
//	    y, _ := tensor.Scan[float64](x, 0, tensor.OpMin, true)
//	    fmt.Println(y.Data()) // [3 1 1]
//	}
//
// # Configuration
//
// Without options New reads its configuration from the environment:
//   - BORN_SCAN_WORKERS: goroutines used per scan (0 or 1 disables fan-out)
//   - BORN_SCAN_MIN_CHUNK: minimum lines per goroutine
//   - BORN_SCAN_ASYNC: run scans on a background worker
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Scans submitted to the same
// queue run in submission order.
package cpu
