// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/scan/internal/backend/cpu"
	"github.com/born-ml/scan/internal/parallel"
	"github.com/born-ml/scan/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go scans, fanning independent lines out over
// goroutines and using SIMD lanes for float sums and products.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// Config controls goroutine fan-out and queueing.
type Config = parallel.Config

// Queue runs submitted scans in order, inline or on a background worker.
type Queue = parallel.Queue

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/scan/backend/cpu"
//	    "github.com/born-ml/scan/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithSIMD(false))
//	    defer backend.Close()
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithParallel sets the fan-out and queue configuration.
func WithParallel(cfg Config) Option {
	return internalcpu.WithParallel(cfg)
}

// WithQueue makes the backend share q instead of owning a queue.
func WithQueue(q *Queue) Option {
	return internalcpu.WithQueue(q)
}

// WithSIMD enables or disables the SIMD lane path.
func WithSIMD(enabled bool) Option {
	return internalcpu.WithSIMD(enabled)
}

// DefaultConfig returns the default parallel configuration.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// ConfigFromEnv returns DefaultConfig overridden by the BORN_SCAN_*
// environment variables.
func ConfigFromEnv() Config {
	return parallel.ConfigFromEnv()
}

// NewQueue creates a queue that can be shared between backends.
func NewQueue(cfg Config) *Queue {
	return parallel.NewQueue(cfg)
}
