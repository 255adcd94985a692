package cpu

import "github.com/born-ml/scan/internal/tensor"

// keyEqual reports whether the keys at flat offsets a and b are equal.
type keyEqual func(a, b int) bool

// keyComparators lists the dtypes accepted as segmentation keys.
var keyComparators = map[tensor.DataType]func(key *tensor.RawTensor) keyEqual{
	tensor.Int32:  equalKeys[int32],
	tensor.Uint32: equalKeys[uint32],
	tensor.Int64:  equalKeys[int64],
	tensor.Uint64: equalKeys[uint64],
	tensor.Int8:   equalKeys[int8],
	tensor.Int16:  equalKeys[int16],
	tensor.Uint8:  equalKeys[uint8],
	tensor.Uint16: equalKeys[uint16],
	tensor.Bool:   equalKeys[bool],
}

// equalKeys compares keys for exact equality; no ordering is assumed.
func equalKeys[K tensor.DType](key *tensor.RawTensor) keyEqual {
	k := tensor.Buffer[K](key)
	return func(a, b int) bool {
		return k[a] == k[b]
	}
}
