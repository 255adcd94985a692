// Package cpu implements the CPU backend: dimensional scans computed in pure
// Go, with independent lines fanned out over goroutines and SIMD lanes
// used where the layout allows.
package cpu

import (
	"github.com/born-ml/scan/internal/parallel"
	"github.com/born-ml/scan/internal/tensor"
	"k8s.io/klog/v2"
)

// CPUBackend implements tensor scans on CPU.
type CPUBackend struct {
	device tensor.Device
	cfg    parallel.Config
	queue  *parallel.Queue
	simd   bool

	ownsQueue bool
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets the parallel execution config used to fan out lines and,
// unless WithQueue is given, to build the backend's work queue.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.cfg = cfg
	}
}

// WithQueue makes the backend submit its work units to q instead of a queue
// of its own. The caller keeps ownership of q.
func WithQueue(q *parallel.Queue) Option {
	return func(cpu *CPUBackend) {
		cpu.queue = q
	}
}

// WithSIMD enables or disables the SIMD lane path (enabled by default).
func WithSIMD(enabled bool) Option {
	return func(cpu *CPUBackend) {
		cpu.simd = enabled
	}
}

// New creates a new CPU backend. Without options it reads its parallel
// config from the environment (see parallel.ConfigFromEnv).
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device: tensor.CPU,
		cfg:    parallel.ConfigFromEnv(),
		simd:   true,
	}
	for _, opt := range opts {
		opt(cpu)
	}
	if cpu.queue == nil {
		cpu.queue = parallel.NewQueue(cpu.cfg)
		cpu.ownsQueue = true
	}
	klog.V(1).Infof("cpu: backend ready (workers=%d, parallel=%v, async=%v, simd=%v)",
		cpu.cfg.NumWorkers, cpu.cfg.Enabled, cpu.queue.IsAsync(), cpu.simd)
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Queue returns the work queue scans are submitted to.
func (cpu *CPUBackend) Queue() *parallel.Queue {
	return cpu.queue
}

// Close drains pending work and stops the backend's own queue.
// A queue passed with WithQueue is left running.
func (cpu *CPUBackend) Close() {
	if cpu.ownsQueue {
		cpu.queue.Close()
	}
}
