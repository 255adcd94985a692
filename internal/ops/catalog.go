// Package ops is the scan operator catalog: for every supported
// (operator, input dtype) pair it records the promoted output dtype, the
// operator identity, and a typed combine function.
//
// The catalog is filled once at init from the promotion table in table.go
// and is read-only afterwards, so lookups need no locking.
package ops

import (
	"sort"

	"github.com/born-ml/scan/internal/tensor"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrUnsupportedType is returned when the catalog has no entry for an
// (operator, dtype) pair.
var ErrUnsupportedType = errors.New("unsupported type")

// Accumulator sweeps one strided line of n elements starting at flat offset
// off, reading the input and writing the output at the same offsets.
//
// restart, when non-nil, is asked for every position i >= 1 whether a new
// segment opens there; if so the running value goes back to the identity.
type Accumulator func(off, stride, n int, inclusive bool, restart func(i int) bool)

// LaneAccumulator sweeps width adjacent lines at once. Line k starts at flat
// offset off+k and its j-th element sits at off+k+j*stride.
type LaneAccumulator func(off, stride, n, width int, inclusive bool)

// kernel is implemented by the typed operator instantiations.
type kernel interface {
	identity() any
	bind(in, out *tensor.RawTensor) Accumulator
	lanes(in, out *tensor.RawTensor) (LaneAccumulator, bool)
}

// Entry describes one (operator, input dtype) combination.
type Entry struct {
	Op     tensor.Op
	Input  tensor.DataType
	Output tensor.DataType
	k      kernel
}

// Identity returns the operator identity as a value of the output Go type.
func (e Entry) Identity() any {
	return e.k.identity()
}

// Bind returns the line accumulator for the given input and output tensors.
// Both must be realized (or being filled by the caller) and carry the
// entry's dtypes.
func (e Entry) Bind(in, out *tensor.RawTensor) (Accumulator, error) {
	if err := e.check(in, out); err != nil {
		return nil, err
	}
	return e.k.bind(in, out), nil
}

// Lanes returns a SIMD accumulator over adjacent lines, if one exists for
// this entry. The boolean is false when the scalar path must be used.
func (e Entry) Lanes(in, out *tensor.RawTensor) (LaneAccumulator, bool) {
	if e.check(in, out) != nil {
		return nil, false
	}
	return e.k.lanes(in, out)
}

func (e Entry) check(in, out *tensor.RawTensor) error {
	if in.DType() != e.Input || out.DType() != e.Output {
		return errors.Errorf("%s entry is %s->%s, got tensors %s->%s",
			e.Op, e.Input, e.Output, in.DType(), out.DType())
	}
	if in.NumElements() != out.NumElements() {
		return errors.Wrapf(tensor.ErrShapeMismatch, "input %v vs output %v", in.Shape(), out.Shape())
	}
	return nil
}

type entryKey struct {
	op tensor.Op
	in tensor.DataType
}

var registry = make(map[entryKey]Entry)

func register(op tensor.Op, in, out tensor.DataType, k kernel) {
	key := entryKey{op, in}
	if _, found := registry[key]; found {
		panic(errors.Errorf("ops: duplicate catalog entry for %s on %s", op, in))
	}
	registry[key] = Entry{Op: op, Input: in, Output: out, k: k}
}

// Lookup returns the catalog entry for op applied to input dtype in.
func Lookup(op tensor.Op, in tensor.DataType) (Entry, error) {
	e, found := registry[entryKey{op, in}]
	if !found {
		return Entry{}, errors.Wrapf(ErrUnsupportedType, "no %s scan for %s", op, in)
	}
	return e, nil
}

// OutputType returns the dtype op produces for input dtype in.
func OutputType(op tensor.Op, in tensor.DataType) (tensor.DataType, error) {
	e, err := Lookup(op, in)
	if err != nil {
		return 0, err
	}
	return e.Output, nil
}

// Supported lists every catalog entry, ordered by operator then input dtype.
func Supported() []Entry {
	entries := lo.Values(registry)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Op != entries[j].Op {
			return entries[i].Op < entries[j].Op
		}
		return entries[i].Input < entries[j].Input
	})
	return entries
}
