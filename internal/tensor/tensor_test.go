package tensor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestTensor_Accessors(t *testing.T) {
	b := NewMockBackend(nil, nil)
	x, err := FromSliceT([]int16{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)
	require.NoError(t, err)

	assert.Equal(t, Int16, x.DType())
	assert.Equal(t, CPU, x.Device())
	assert.Equal(t, 6, x.NumElements())
	assert.True(t, x.Shape().Equal(Shape{2, 3}))
	assert.Same(t, b, x.Backend())
	assert.NoError(t, x.Eval())

	// Column-major: element (row 1, column 2) is the sixth value.
	assert.Equal(t, int16(6), x.At(1, 2))
	assert.Equal(t, int16(2), x.At(1))
	assert.Equal(t, int16(3), x.At(0, 1))
	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0, 0, 0) })
	assert.Equal(t, "Tensor[int16][2 x 3] on CPU", x.String())
}

func TestNew_DTypeMismatchPanics(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float32, CPU)
	require.NoError(t, err)
	assert.Panics(t, func() { New[float64](raw, NewMockBackend(nil, nil)) })
}

func TestCreation(t *testing.T) {
	b := NewMockBackend(nil, nil)

	z := Zeros[float32](Shape{2, 2}, b)
	assert.Equal(t, []float32{0, 0, 0, 0}, z.Data())

	f := Full[uint8](Shape{3}, 7, b)
	assert.Equal(t, []uint8{7, 7, 7}, f.Data())

	i := Iota[int64](Shape{2, 3}, b)
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5}, i.Data())
	assert.Equal(t, int64(5), i.At(1, 2))

	h := Iota[float16.Float16](Shape{3}, b)
	assert.Equal(t, float32(2), h.Data()[2].Float32())

	c := Iota[complex64](Shape{2}, b)
	assert.Equal(t, []complex64{0, 1}, c.Data())

	bits := Iota[bool](Shape{4}, b)
	assert.Equal(t, []bool{false, true, false, true}, bits.Data())
}

func TestScan_ForwardsToBackend(t *testing.T) {
	out, err := FromSlice(Shape{3}, []int32{1, 3, 6})
	require.NoError(t, err)
	b := NewMockBackend(out, nil)

	x, err := FromSliceT([]int8{1, 2, 3}, Shape{3}, b)
	require.NoError(t, err)

	y, err := Scan[int32](x, 0, OpSum, true)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 6}, y.Data())

	require.Len(t, b.Calls, 1)
	call := b.Calls[0]
	assert.Nil(t, call.Key)
	assert.Same(t, x.Raw(), call.X)
	assert.Equal(t, OpSum, call.Op)
	assert.True(t, call.Inclusive)
}

func TestScan_OutputTypeMustMatch(t *testing.T) {
	out, err := FromSlice(Shape{3}, []int32{1, 3, 6})
	require.NoError(t, err)
	b := NewMockBackend(out, nil)
	x, err := FromSliceT([]int8{1, 2, 3}, Shape{3}, b)
	require.NoError(t, err)

	_, err = Scan[int8](x, 0, OpSum, true)
	assert.Error(t, err)
}

func TestScan_PropagatesBackendError(t *testing.T) {
	failure := errors.Wrap(ErrInvalidAxis, "axis 3")
	b := NewMockBackend(nil, failure)
	x, err := FromSliceT([]float32{1, 2}, Shape{2}, b)
	require.NoError(t, err)

	_, err = Scan[float32](x, 3, OpMax, false)
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestScanByKey_ForwardsKey(t *testing.T) {
	out, err := FromSlice(Shape{4}, []float64{1, 3, 3, 7})
	require.NoError(t, err)
	b := NewMockBackend(out, nil)
	key, err := FromSliceT([]uint8{0, 0, 1, 1}, Shape{4}, b)
	require.NoError(t, err)
	x, err := FromSliceT([]float64{1, 2, 3, 4}, Shape{4}, b)
	require.NoError(t, err)

	y, err := ScanByKey[float64](key, x, 0, OpSum, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 3, 7}, y.Data())
	require.Len(t, b.Calls, 1)
	assert.Same(t, key.Raw(), b.Calls[0].Key)
	assert.False(t, b.Calls[0].Inclusive)
}
