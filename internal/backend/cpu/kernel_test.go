package cpu

import (
	"testing"

	"github.com/born-ml/scan/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestSelectKernel(t *testing.T) {
	for rank := 1; rank <= tensor.MaxDims; rank++ {
		k := selectKernel(rank, rank%2 == 0)
		assert.Equal(t, rank, k.rank)
		assert.Equal(t, rank%2 == 0, k.inclusive)
	}
	assert.Panics(t, func() { selectKernel(0, true) })
	assert.Panics(t, func() { selectKernel(5, false) })
}

func TestKernelOffset(t *testing.T) {
	dims := tensor.Dim4{2, 3, 4, 1}
	p := &plan{dims: dims, strides: dims.Strides(), axis: 1}
	k := selectKernel(3, true)

	// Lines along axis 1 are enumerated over axes 0 and 2.
	var offsets []int
	for l := 0; l < 8; l++ {
		offsets = append(offsets, k.offset(l, p, false))
	}
	assert.Equal(t, []int{0, 1, 6, 7, 12, 13, 18, 19}, offsets)

	// Blocks also skip axis 0.
	var blocks []int
	for b := 0; b < 4; b++ {
		blocks = append(blocks, k.offset(b, p, true))
	}
	assert.Equal(t, []int{0, 6, 12, 18}, blocks)
}
