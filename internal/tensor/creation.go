package tensor

import (
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := Buffer[T](t.raw)
	for i := range data {
		data[i] = value
	}
	return t
}

// Iota creates a tensor of the given shape holding 0, 1, 2, ... in
// column-major order. Bool tensors alternate false, true.
//
// Example:
//
//	t := tensor.Iota[int32](Shape{2, 3}, backend) // columns [0 1], [2 3], [4 5]
func Iota[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := Buffer[T](t.raw)
	for i := range data {
		data[i] = fromInt[T](i)
	}
	return t
}

// fromInt converts a small non-negative integer to T.
//
//nolint:gosec // G115: callers pass element indices.
func fromInt[T DType](i int) T {
	var v any
	var dummy T
	switch any(dummy).(type) {
	case float32:
		v = float32(i)
	case float64:
		v = float64(i)
	case complex64:
		v = complex(float32(i), 0)
	case complex128:
		v = complex(float64(i), 0)
	case float16.Float16:
		v = float16.Fromfloat32(float32(i))
	case int8:
		v = int8(i)
	case int16:
		v = int16(i)
	case int32:
		v = int32(i)
	case int64:
		v = int64(i)
	case uint8:
		v = uint8(i)
	case uint16:
		v = uint16(i)
	case uint32:
		v = uint32(i)
	case uint64:
		v = uint64(i)
	case bool:
		v = i%2 == 1
	default:
		exceptions.Panicf("unsupported type %T", dummy)
	}
	return v.(T)
}
