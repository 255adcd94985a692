package ops

import "github.com/born-ml/scan/internal/tensor"

// operator is the typed form of a catalog entry: input elements of type T
// accumulate into values of the promoted type O.
type operator[T, O tensor.DType] struct {
	// ident is the value e with combine(e, x) == lift(x).
	ident O

	// lift converts the first element of an inclusive line.
	lift func(x T) O

	// combine folds one more input element into the running value.
	combine func(acc O, x T) O

	// vector builds a lane accumulator over the given buffers; nil if the
	// operator has no SIMD form for T.
	vector func(src []T, dst []O) laneSweep
}

// laneSweep processes as many whole SIMD blocks of the width lines as it
// can and returns how many lines it covered.
type laneSweep func(off, stride, n, width int, inclusive bool) int

func (o operator[T, O]) identity() any {
	return o.ident
}

func (o operator[T, O]) bind(in, out *tensor.RawTensor) Accumulator {
	src := tensor.Buffer[T](in)
	dst := tensor.Buffer[O](out)
	return func(off, stride, n int, inclusive bool, restart func(i int) bool) {
		o.sweep(src, dst, off, stride, n, inclusive, restart)
	}
}

func (o operator[T, O]) lanes(in, out *tensor.RawTensor) (LaneAccumulator, bool) {
	if o.vector == nil {
		return nil, false
	}
	src := tensor.Buffer[T](in)
	dst := tensor.Buffer[O](out)
	vec := o.vector(src, dst)
	if vec == nil {
		return nil, false
	}
	return func(off, stride, n, width int, inclusive bool) {
		done := vec(off, stride, n, width, inclusive)
		for k := done; k < width; k++ {
			o.sweep(src, dst, off+k, stride, n, inclusive, nil)
		}
	}, true
}

// sweep is the scan recurrence over one line:
//
//	inclusive: out[0] = lift(in[0]),  out[i] = combine(out[i-1], in[i])
//	exclusive: out[0] = identity,     out[i] = combine(out[i-1], in[i-1])
//
// A restart at position i behaves as if a new line began there.
func (o operator[T, O]) sweep(src []T, dst []O, off, stride, n int, inclusive bool, restart func(i int) bool) {
	idx := off
	if inclusive {
		var acc O
		for i := 0; i < n; i++ {
			x := src[idx]
			if i == 0 || (restart != nil && restart(i)) {
				acc = o.lift(x)
			} else {
				acc = o.combine(acc, x)
			}
			dst[idx] = acc
			idx += stride
		}
		return
	}

	acc := o.ident
	for i := 0; i < n; i++ {
		if i > 0 && restart != nil && restart(i) {
			acc = o.ident
		}
		x := src[idx]
		dst[idx] = acc
		acc = o.combine(acc, x)
		idx += stride
	}
}
