package cpu

import (
	"github.com/born-ml/scan/internal/ops"
	"github.com/born-ml/scan/internal/parallel"
	"github.com/born-ml/scan/internal/tensor"
	"github.com/gomlx/exceptions"
)

// plan is a fully bound scan: layout, scan axis, and typed accumulators.
type plan struct {
	dims    tensor.Dim4
	strides tensor.Dim4
	axis    int

	acc   ops.Accumulator
	lanes ops.LaneAccumulator // nil: scalar lines only
	keys  keyEqual            // nil: unsegmented
}

// scanKernel is the scan specialized for one effective rank and one
// inclusive flag.
type scanKernel struct {
	rank      int
	inclusive bool
}

// selectKernel returns the kernel for rank. Ranks are validated before
// dispatch, so anything outside 1..MaxDims is a bug.
func selectKernel(rank int, inclusive bool) scanKernel {
	switch rank {
	case 1, 2, 3, 4:
		return scanKernel{rank: rank, inclusive: inclusive}
	}
	exceptions.Panicf("cpu: no scan kernel for rank %d", rank)
	return scanKernel{}
}

// run sweeps every line of p, fanning lines out according to cfg.
func (k scanKernel) run(p *plan, cfg parallel.Config) {
	n := p.dims[p.axis]
	stride := p.strides[p.axis]

	if k.rank == 1 {
		p.acc(0, stride, n, k.inclusive, p.restartFor(0, stride))
		return
	}

	// Lines along axis > 0 that differ only in their axis-0 coordinate are
	// adjacent in memory: sweep them together as one block of lanes.
	if p.lanes != nil && p.keys == nil && p.axis > 0 && p.dims[0] > 1 {
		width := p.dims[0]
		blocks := p.dims.NumElements() / (n * width)
		parallel.ForRange(blocks, func(start, end int) {
			for b := start; b < end; b++ {
				p.lanes(k.offset(b, p, true), stride, n, width, k.inclusive)
			}
		}, cfg)
		return
	}

	lines := p.dims.NumElements() / n
	parallel.ForRange(lines, func(start, end int) {
		for l := start; l < end; l++ {
			off := k.offset(l, p, false)
			p.acc(off, stride, n, k.inclusive, p.restartFor(off, stride))
		}
	}, cfg)
}

// offset maps a line (or block) number to the flat offset of its first
// element by walking every axis below the kernel rank except the scan axis.
// Blocks also skip axis 0, which runs across the lanes.
func (k scanKernel) offset(l int, p *plan, blocked bool) int {
	off := 0
	for d := 0; d < k.rank; d++ {
		if d == p.axis || (blocked && d == 0) {
			continue
		}
		off += (l % p.dims[d]) * p.strides[d]
		l /= p.dims[d]
	}
	return off
}

// restartFor reports segment boundaries for the line starting at off:
// position i opens a new segment when its key differs from position i-1.
func (p *plan) restartFor(off, stride int) func(i int) bool {
	if p.keys == nil {
		return nil
	}
	return func(i int) bool {
		cur := off + i*stride
		return !p.keys(cur, cur-stride)
	}
}
