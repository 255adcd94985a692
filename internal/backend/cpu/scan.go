package cpu

import (
	"context"
	"fmt"

	"github.com/born-ml/scan/internal/ops"
	"github.com/born-ml/scan/internal/parallel"
	"github.com/born-ml/scan/internal/tensor"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// request is one validated scan invocation.
type request struct {
	x, key    *tensor.RawTensor
	axis      int
	op        tensor.Op
	inclusive bool

	dims  tensor.Dim4
	rank  int
	entry ops.Entry
	keyEq func(*tensor.RawTensor) keyEqual
}

// Scan computes the running reduction of x along axis.
//
// The output has x's shape and the dtype the operator promotes x's dtype to
// (see ops.Lookup). Exclusive scans start every line with the operator
// identity; inclusive scans start with the first element.
//
// Errors (checked before any work is submitted):
//   - tensor.ErrInvalidAxis: axis outside [0, x.NDims())
//   - tensor.ErrUnsupportedRank: x has more than 4 effective axes
//   - ops.ErrUnsupportedType: no catalog entry for (op, x.DType())
//
// Example:
//
//	x, _ := tensor.FromSlice(tensor.Shape{4}, []int32{1, 2, 3, 4})
//	y, _ := backend.Scan(x, 0, tensor.OpSum, true)  // [1 3 6 10]
//	z, _ := backend.Scan(x, 0, tensor.OpSum, false) // [0 1 3 6]
func (cpu *CPUBackend) Scan(x *tensor.RawTensor, axis int, op tensor.Op, inclusive bool) (*tensor.RawTensor, error) {
	req, err := newRequest(nil, x, axis, op, inclusive)
	if err != nil {
		return nil, errors.WithMessage(err, "scan")
	}
	return cpu.submit(req)
}

// ScanByKey is Scan with the accumulation restarted at the first element of
// every line and wherever key[i] != key[i-1] along axis. Within a segment
// the result equals an independent Scan of that segment.
//
// key must have x's shape (tensor.ErrShapeMismatch otherwise) and an
// integer or bool dtype (ops.ErrUnsupportedType otherwise).
//
// Example:
//
//	x, _ := tensor.FromSlice(tensor.Shape{5}, []int32{1, 2, 3, 4, 5})
//	k, _ := tensor.FromSlice(tensor.Shape{5}, []int32{0, 0, 1, 1, 1})
//	y, _ := backend.ScanByKey(k, x, 0, tensor.OpSum, true) // [1 3 3 7 12]
func (cpu *CPUBackend) ScanByKey(key, x *tensor.RawTensor, axis int, op tensor.Op, inclusive bool) (*tensor.RawTensor, error) {
	if key == nil {
		return nil, errors.New("scan by key: nil key tensor")
	}
	req, err := newRequest(key, x, axis, op, inclusive)
	if err != nil {
		return nil, errors.WithMessage(err, "scan by key")
	}
	return cpu.submit(req)
}

// Accum is the inclusive sum of x along axis.
func (cpu *CPUBackend) Accum(x *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	return cpu.Scan(x, axis, tensor.OpSum, true)
}

func newRequest(key, x *tensor.RawTensor, axis int, op tensor.Op, inclusive bool) (*request, error) {
	if x == nil {
		return nil, errors.New("nil input tensor")
	}
	shape := x.Shape()
	dims, err := shape.Dim4()
	if err != nil {
		return nil, err
	}
	if err := shape.CheckAxis(axis); err != nil {
		return nil, err
	}
	entry, err := ops.Lookup(op, x.DType())
	if err != nil {
		return nil, err
	}
	req := &request{
		x:         x,
		key:       key,
		axis:      axis,
		op:        op,
		inclusive: inclusive,
		dims:      dims,
		rank:      shape.NDims(),
		entry:     entry,
	}

	if key != nil {
		keyDims, err := key.Shape().Dim4()
		if err != nil || keyDims != dims {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "key shape %v differs from input shape %v", key.Shape(), shape)
		}
		eq, found := keyComparators[key.DType()]
		if !found {
			return nil, errors.Wrapf(ops.ErrUnsupportedType, "%s cannot be used as a scan key", key.DType())
		}
		req.keyEq = eq
	}

	// Inputs must be materialized before the kernel reads them.
	if err := x.Eval(); err != nil {
		return nil, errors.WithMessage(err, "input")
	}
	if key != nil {
		if err := key.Eval(); err != nil {
			return nil, errors.WithMessage(err, "key")
		}
	}
	return req, nil
}

func (req *request) String() string {
	kind := "scan"
	if req.key != nil {
		kind = "scan_by_key"
	}
	return fmt.Sprintf("%s[%s %s->%s dims=%v axis=%d inclusive=%v]",
		kind, req.op, req.entry.Input, req.entry.Output, req.x.Shape(), req.axis, req.inclusive)
}

// submit binds req into a work unit and hands it to the queue. The returned
// tensor is pending until the unit finishes; a failed unit makes its Eval
// return the error.
func (cpu *CPUBackend) submit(req *request) (*tensor.RawTensor, error) {
	var handle *parallel.Handle
	out, err := tensor.NewPendingRaw(req.x.Shape(), req.entry.Output, cpu.device, func() error {
		return handle.Wait(context.Background())
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "%s: allocating output", req)
	}

	acc, err := req.entry.Bind(req.x, out)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", req)
	}
	p := &plan{
		dims:    req.dims,
		strides: req.dims.Strides(),
		axis:    req.axis,
		acc:     acc,
	}
	if req.keyEq != nil {
		p.keys = req.keyEq(req.key)
	} else if cpu.simd {
		if lanes, ok := req.entry.Lanes(req.x, out); ok {
			p.lanes = lanes
		}
	}
	kernel := selectKernel(req.rank, req.inclusive)

	name := req.String()
	klog.V(2).Infof("cpu: submitting %s (output %s)", name, humanize.Bytes(uint64(out.ByteSize())))
	handle = cpu.queue.Enqueue(name, func() error {
		kernel.run(p, cpu.cfg)
		return nil
	})
	return out, nil
}
