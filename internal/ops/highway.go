package ops

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/born-ml/scan/internal/tensor"
)

// lanesFor returns the SIMD lane builder for op on T -> O, or nil when the
// pair has none. Only closed float sums and products qualify: lane-wise add
// and multiply round exactly like the scalar recurrence, so both paths
// produce identical bits.
func lanesFor[T, O ordered](op tensor.Op) func(src []T, dst []O) laneSweep {
	var (
		t T
		o O
	)
	switch any(t).(type) {
	case float32:
		if _, same := any(o).(float32); !same {
			return nil
		}
		return func(src []T, dst []O) laneSweep {
			return vectorSweep(any(src).([]float32), any(dst).([]float32), op)
		}
	case float64:
		if _, same := any(o).(float64); !same {
			return nil
		}
		return func(src []T, dst []O) laneSweep {
			return vectorSweep(any(src).([]float64), any(dst).([]float64), op)
		}
	}
	return nil
}

// vectorSweep scans blocks of hwy.MaxLanes adjacent lines together, one
// vector per step along the scan axis.
func vectorSweep[F hwy.Floats](src, dst []F, op tensor.Op) laneSweep {
	var (
		ident   F
		combine func(a, b hwy.Vec[F]) hwy.Vec[F]
	)
	switch op {
	case tensor.OpSum:
		ident, combine = 0, hwy.Add[F]
	case tensor.OpProduct:
		ident, combine = 1, hwy.Mul[F]
	default:
		return nil
	}
	lanes := hwy.MaxLanes[F]()
	return func(off, stride, n, width int, inclusive bool) int {
		k := 0
		for ; k+lanes <= width; k += lanes {
			idx := off + k
			acc := hwy.Set(ident)
			for j := 0; j < n; j++ {
				x := hwy.Load(src[idx:])
				if inclusive {
					if j == 0 {
						acc = x
					} else {
						acc = combine(acc, x)
					}
					hwy.Store(acc, dst[idx:])
				} else {
					hwy.Store(acc, dst[idx:])
					acc = combine(acc, x)
				}
				idx += stride
			}
		}
		return k
	}
}
