package cpu

import (
	"context"
	"testing"

	"github.com/born-ml/scan/internal/parallel"
	"github.com/born-ml/scan/internal/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a sequential test backend.
func newTestBackend(t *testing.T, opts ...Option) *CPUBackend {
	t.Helper()
	backend := New(append([]Option{WithParallel(parallel.Config{})}, opts...)...)
	t.Cleanup(backend.Close)
	return backend
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	defer backend.Close()
	require.NotNil(t, backend)
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.NotNil(t, backend.Queue())
}

func TestCPUBackend_FromEnv(t *testing.T) {
	t.Setenv(parallel.EnvAsync, "true")
	backend := New()
	defer backend.Close()
	assert.True(t, backend.Queue().IsAsync())
}

func TestCPUBackend_SharedQueueOutlivesBackend(t *testing.T) {
	q := parallel.NewQueue(parallel.Config{Async: true})
	defer q.Close()

	backend := New(WithQueue(q))
	x := must.M1(tensor.FromSlice(tensor.Shape{3}, []int32{1, 2, 3}))
	out := must.M1(backend.Scan(x, 0, tensor.OpSum, true))
	backend.Close()

	assert.Equal(t, []int32{1, 3, 6}, out.AsInt32())
	assert.NoError(t, q.Sync(context.Background()))
}

func TestCPUBackend_Async(t *testing.T) {
	cfg := parallel.DefaultConfig()
	cfg.Async = true
	backend := newTestBackend(t, WithParallel(cfg))
	require.True(t, backend.Queue().IsAsync())

	x := must.M1(tensor.FromSlice(tensor.Shape{4}, []int32{1, 2, 3, 4}))
	outs := make([]*tensor.RawTensor, 0, 20)
	for i := 0; i < 20; i++ {
		outs = append(outs, must.M1(backend.Scan(x, 0, tensor.OpSum, i%2 == 0)))
	}
	for i, out := range outs {
		require.NoError(t, out.Eval())
		if i%2 == 0 {
			assert.Equal(t, []int32{1, 3, 6, 10}, out.AsInt32())
		} else {
			assert.Equal(t, []int32{0, 1, 3, 6}, out.AsInt32())
		}
	}
}

func TestCPUBackend_ChainedAsyncScans(t *testing.T) {
	cfg := parallel.Config{Async: true, QueueDepth: 2}
	backend := newTestBackend(t, WithParallel(cfg))

	x := must.M1(tensor.FromSlice(tensor.Shape{4}, []int64{1, 1, 1, 1}))
	// The second scan reads the pending output of the first.
	first := must.M1(backend.Scan(x, 0, tensor.OpSum, true))
	second := must.M1(backend.Scan(first, 0, tensor.OpSum, true))
	assert.Equal(t, []int64{1, 3, 6, 10}, second.AsInt64())
	assert.Equal(t, []int64{1, 2, 3, 4}, first.AsInt64())
}

func TestCPUBackend_FailedUnitSurfacesThroughOutput(t *testing.T) {
	backend := newTestBackend(t)
	q := backend.Queue()
	q.Close()

	x := must.M1(tensor.FromSlice(tensor.Shape{2}, []float32{1, 2}))
	out, err := backend.Scan(x, 0, tensor.OpSum, true)
	require.NoError(t, err)
	assert.ErrorIs(t, out.Eval(), parallel.ErrQueueClosed)
	assert.Panics(t, func() { out.AsFloat32() })
}

func TestCPUBackend_PendingInputFailure(t *testing.T) {
	backend := newTestBackend(t)
	x := must.M1(tensor.NewPendingRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU, func() error {
		return assert.AnError
	}))
	_, err := backend.Scan(x, 0, tensor.OpSum, true)
	assert.ErrorIs(t, err, assert.AnError)
}
