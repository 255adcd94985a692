package tensor

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingRaw_RealizesOnce(t *testing.T) {
	var (
		calls int
		raw   *RawTensor
	)
	raw, err := NewPendingRaw(Shape{3}, Int32, CPU, func() error {
		calls++
		copy(Buffer[int32](raw), []int32{7, 8, 9})
		return nil
	})
	require.NoError(t, err)
	assert.False(t, raw.IsRealized())

	assert.Equal(t, []int32{7, 8, 9}, raw.AsInt32())
	assert.True(t, raw.IsRealized())
	require.NoError(t, raw.Eval())
	assert.Equal(t, 1, calls)
}

func TestPendingRaw_ConcurrentEval(t *testing.T) {
	var calls int
	raw, err := NewPendingRaw(Shape{4}, Float64, CPU, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, raw.Eval())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

func TestPendingRaw_ErrorIsSticky(t *testing.T) {
	failure := errors.New("producer failed")
	raw, err := NewPendingRaw(Shape{2}, Float32, CPU, func() error { return failure })
	require.NoError(t, err)

	err = raw.Eval()
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, raw.Eval(), failure)
	assert.True(t, raw.IsRealized())

	// Typed access on a failed tensor panics with the realization error.
	assert.Panics(t, func() { raw.AsFloat32() })
}

func TestPendingRaw_CloneSharesRealization(t *testing.T) {
	var calls int
	raw, err := NewPendingRaw(Shape{2}, Uint32, CPU, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	clone := raw.Clone()
	require.NoError(t, clone.Eval())
	assert.True(t, raw.IsRealized())
	require.NoError(t, raw.Eval())
	assert.Equal(t, 1, calls)
}

func TestEval_MaterializedIsNoop(t *testing.T) {
	raw, err := FromSlice(Shape{1}, []bool{true})
	require.NoError(t, err)
	assert.NoError(t, raw.Eval())
	assert.True(t, raw.IsRealized())
}
