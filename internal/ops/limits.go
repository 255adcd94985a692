package ops

import (
	"math"

	"github.com/born-ml/scan/internal/tensor"
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// ordered is the set of ordered element types handled by the generic families.
type ordered interface {
	tensor.DType
	constraints.Integer | constraints.Float
}

// complexNumber is the set of complex element types.
type complexNumber interface {
	tensor.DType
	constraints.Complex
}

// limits returns the lowest and highest values of O. Floating-point types
// use the infinities, so they act as identities for max and min.
func limits[O ordered]() (lowest, highest O) {
	var zero O
	switch any(zero).(type) {
	case float32:
		return any(float32(math.Inf(-1))).(O), any(float32(math.Inf(1))).(O)
	case float64:
		return any(math.Inf(-1)).(O), any(math.Inf(1)).(O)
	case int8:
		return any(int8(math.MinInt8)).(O), any(int8(math.MaxInt8)).(O)
	case int16:
		return any(int16(math.MinInt16)).(O), any(int16(math.MaxInt16)).(O)
	case int32:
		return any(int32(math.MinInt32)).(O), any(int32(math.MaxInt32)).(O)
	case int64:
		return any(int64(math.MinInt64)).(O), any(int64(math.MaxInt64)).(O)
	case uint8:
		return 0, any(uint8(math.MaxUint8)).(O)
	case uint16:
		return 0, any(uint16(math.MaxUint16)).(O)
	case uint32:
		return 0, any(uint32(math.MaxUint32)).(O)
	case uint64:
		return 0, any(uint64(math.MaxUint64)).(O)
	}
	exceptions.Panicf("ops: no limits for %T", zero)
	return
}
