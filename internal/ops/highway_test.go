package ops

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/scan/internal/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanes_OnlyFloatSumAndProduct(t *testing.T) {
	check := func(op tensor.Op, in *tensor.RawTensor, want bool) {
		entry := must.M1(Lookup(op, in.DType()))
		out := must.M1(tensor.NewRaw(in.Shape(), entry.Output, tensor.CPU))
		_, ok := entry.Lanes(in, out)
		assert.Equal(t, want, ok, "%s on %s", op, in.DType())
	}
	f32 := must.M1(tensor.FromSlice(tensor.Shape{4}, []float32{1, 2, 3, 4}))
	f64 := must.M1(tensor.FromSlice(tensor.Shape{4}, []float64{1, 2, 3, 4}))
	i32 := must.M1(tensor.FromSlice(tensor.Shape{4}, []int32{1, 2, 3, 4}))

	check(tensor.OpSum, f32, true)
	check(tensor.OpProduct, f64, true)
	check(tensor.OpMin, f32, false)
	check(tensor.OpCountNonZero, f64, false)
	check(tensor.OpSum, i32, false)
}

// TestLanes_MatchScalar sweeps width adjacent lines with the lane
// accumulator and compares every bit against one scalar sweep per line.
func TestLanes_MatchScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, width := range []int{1, 3, 4, 8, 17, 33} {
		for _, n := range []int{1, 2, 9} {
			data := make([]float32, width*n)
			for i := range data {
				data[i] = float32(rng.NormFloat64())
			}
			data[0] = float32(math.Copysign(0, -1))
			for _, op := range []tensor.Op{tensor.OpSum, tensor.OpProduct} {
				for _, inclusive := range []bool{true, false} {
					in := must.M1(tensor.FromSlice(tensor.Shape{width, n}, data))
					entry := must.M1(Lookup(op, tensor.Float32))

					vecOut := must.M1(tensor.NewRaw(in.Shape(), entry.Output, tensor.CPU))
					lanes, ok := entry.Lanes(in, vecOut)
					require.True(t, ok)
					lanes(0, width, n, width, inclusive)

					scalarOut := must.M1(tensor.NewRaw(in.Shape(), entry.Output, tensor.CPU))
					acc := must.M1(entry.Bind(in, scalarOut))
					for k := 0; k < width; k++ {
						acc(k, width, n, inclusive, nil)
					}

					got, want := vecOut.AsFloat32(), scalarOut.AsFloat32()
					for i := range want {
						require.Equal(t, math.Float32bits(want[i]), math.Float32bits(got[i]),
							"%s inclusive=%v width=%d n=%d at %d", op, inclusive, width, n, i)
					}
				}
			}
		}
	}
}
