package tensor

import (
	"sync"

	"github.com/pkg/errors"
)

// lazyData holds the realization state of a pending tensor.
// The realize function runs at most once; its outcome is cached.
type lazyData struct {
	once    sync.Once
	realize func() error
	err     error
	mu      sync.Mutex // Protects realized
	done    bool
}

// NewPendingRaw creates a RawTensor whose contents are produced by someone
// else. The buffer is allocated immediately; readers must call Eval (or a
// typed accessor, which calls it) before the data is considered valid.
//
// realize blocks until the producer finished and returns its error. It is
// invoked at most once, by the first Eval.
func NewPendingRaw(shape Shape, dtype DataType, device Device, realize func() error) (*RawTensor, error) {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	r.lazy = &lazyData{realize: realize}
	return r, nil
}

// Eval ensures the tensor contents are materialized and readable.
//
// It is a no-op for tensors created with NewRaw or FromSlice. For pending
// tensors it waits for the producer; a failed producer makes every Eval
// return the same error and the contents must not be used.
func (r *RawTensor) Eval() error {
	l := r.lazy
	if l == nil {
		return nil
	}
	l.once.Do(func() {
		err := l.realize()
		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.err = errors.WithMessage(err, "realizing tensor")
		}
		l.done = true
	})
	return l.err
}

// IsRealized returns whether the tensor contents are available without
// waiting. Failed realizations report true; Eval returns their error.
func (r *RawTensor) IsRealized() bool {
	l := r.lazy
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// mustEval realizes the tensor, panicking with the realization error.
func (r *RawTensor) mustEval() {
	if err := r.Eval(); err != nil {
		panic(err)
	}
}
