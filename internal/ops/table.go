package ops

import (
	"math"

	"github.com/born-ml/scan/internal/tensor"
	"github.com/x448/float16"
)

// promotion is one row of the dispatch table: scans of input dtype in
// produce out for sum, product, min and max. Count-nonzero always
// produces uint32.
type promotion struct {
	in, out tensor.DataType
	family  func() map[tensor.Op]kernel
}

// promotions is the closed (input -> output) table. Narrow integers and
// bool widen to 32 bits; floating and complex types are closed.
// Adding an element type means adding one row here.
var promotions = []promotion{
	{tensor.Float32, tensor.Float32, orderedFamily[float32, float32]},
	{tensor.Float64, tensor.Float64, orderedFamily[float64, float64]},
	{tensor.Float16, tensor.Float16, float16Family},
	{tensor.Complex64, tensor.Complex64, complexFamily[complex64]},
	{tensor.Complex128, tensor.Complex128, complexFamily[complex128]},
	{tensor.Int32, tensor.Int32, orderedFamily[int32, int32]},
	{tensor.Uint32, tensor.Uint32, orderedFamily[uint32, uint32]},
	{tensor.Int64, tensor.Int64, orderedFamily[int64, int64]},
	{tensor.Uint64, tensor.Uint64, orderedFamily[uint64, uint64]},
	{tensor.Int8, tensor.Int32, orderedFamily[int8, int32]},
	{tensor.Uint8, tensor.Uint32, orderedFamily[uint8, uint32]},
	{tensor.Int16, tensor.Int32, orderedFamily[int16, int32]},
	{tensor.Uint16, tensor.Uint32, orderedFamily[uint16, uint32]},
	{tensor.Bool, tensor.Uint32, boolFamily},
}

func init() {
	for _, p := range promotions {
		for op, k := range p.family() {
			out := p.out
			if op == tensor.OpCountNonZero {
				out = tensor.Uint32
			}
			register(op, p.in, out, k)
		}
	}
}

// orderedFamily covers integer and real floating-point inputs.
func orderedFamily[T, O ordered]() map[tensor.Op]kernel {
	lowest, highest := limits[O]()
	lift := func(x T) O { return O(x) }
	return map[tensor.Op]kernel{
		tensor.OpSum: operator[T, O]{
			ident:   0,
			lift:    lift,
			combine: func(acc O, x T) O { return acc + O(x) },
			vector:  lanesFor[T, O](tensor.OpSum),
		},
		tensor.OpProduct: operator[T, O]{
			ident:   1,
			lift:    lift,
			combine: func(acc O, x T) O { return acc * O(x) },
			vector:  lanesFor[T, O](tensor.OpProduct),
		},
		tensor.OpMin: operator[T, O]{
			ident: highest,
			lift:  lift,
			combine: func(acc O, x T) O {
				if v := O(x); v < acc {
					return v
				}
				return acc
			},
		},
		tensor.OpMax: operator[T, O]{
			ident: lowest,
			lift:  lift,
			combine: func(acc O, x T) O {
				if v := O(x); v > acc {
					return v
				}
				return acc
			},
		},
		tensor.OpCountNonZero: countNonZero(func(x T) bool { return x != 0 }),
	}
}

// complexFamily has no min or max: complex values are not ordered.
func complexFamily[C complexNumber]() map[tensor.Op]kernel {
	lift := func(x C) C { return x }
	return map[tensor.Op]kernel{
		tensor.OpSum: operator[C, C]{
			ident:   0,
			lift:    lift,
			combine: func(acc, x C) C { return acc + x },
		},
		tensor.OpProduct: operator[C, C]{
			ident:   1,
			lift:    lift,
			combine: func(acc, x C) C { return acc * x },
		},
		tensor.OpCountNonZero: countNonZero(func(x C) bool { return x != 0 }),
	}
}

// float16Family accumulates in float16, rounding after every step.
func float16Family() map[tensor.Op]kernel {
	type f16 = float16.Float16
	from := float16.Fromfloat32
	lift := func(x f16) f16 { return x }
	return map[tensor.Op]kernel{
		tensor.OpSum: operator[f16, f16]{
			ident:   from(0),
			lift:    lift,
			combine: func(acc, x f16) f16 { return from(acc.Float32() + x.Float32()) },
		},
		tensor.OpProduct: operator[f16, f16]{
			ident:   from(1),
			lift:    lift,
			combine: func(acc, x f16) f16 { return from(acc.Float32() * x.Float32()) },
		},
		tensor.OpMin: operator[f16, f16]{
			ident: float16.Inf(1),
			lift:  lift,
			combine: func(acc, x f16) f16 {
				if x.Float32() < acc.Float32() {
					return x
				}
				return acc
			},
		},
		tensor.OpMax: operator[f16, f16]{
			ident: float16.Inf(-1),
			lift:  lift,
			combine: func(acc, x f16) f16 {
				if x.Float32() > acc.Float32() {
					return x
				}
				return acc
			},
		},
		tensor.OpCountNonZero: countNonZero(func(x f16) bool { return x.Float32() != 0 }),
	}
}

// boolFamily treats true as 1 and false as 0, accumulating in uint32.
func boolFamily() map[tensor.Op]kernel {
	lift := boolToUint32
	return map[tensor.Op]kernel{
		tensor.OpSum: operator[bool, uint32]{
			ident:   0,
			lift:    lift,
			combine: func(acc uint32, x bool) uint32 { return acc + boolToUint32(x) },
		},
		tensor.OpProduct: operator[bool, uint32]{
			ident:   1,
			lift:    lift,
			combine: func(acc uint32, x bool) uint32 { return acc * boolToUint32(x) },
		},
		tensor.OpMin: operator[bool, uint32]{
			ident:   math.MaxUint32,
			lift:    lift,
			combine: func(acc uint32, x bool) uint32 { return min(acc, boolToUint32(x)) },
		},
		tensor.OpMax: operator[bool, uint32]{
			ident:   0,
			lift:    lift,
			combine: func(acc uint32, x bool) uint32 { return max(acc, boolToUint32(x)) },
		},
		tensor.OpCountNonZero: countNonZero(func(x bool) bool { return x }),
	}
}

// countNonZero counts the elements for which nonZero holds.
func countNonZero[T tensor.DType](nonZero func(T) bool) kernel {
	return operator[T, uint32]{
		ident: 0,
		lift:  func(x T) uint32 { return boolToUint32(nonZero(x)) },
		combine: func(acc uint32, x T) uint32 {
			return acc + boolToUint32(nonZero(x))
		},
	}
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
