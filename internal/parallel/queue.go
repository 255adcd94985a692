package parallel

import (
	"context"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrQueueClosed is reported by handles of units enqueued after Close.
var ErrQueueClosed = errors.New("queue closed")

// Handle tracks one enqueued unit of work.
type Handle struct {
	name string
	done chan struct{}
	err  error
}

func newHandle(name string) *Handle {
	return &Handle{name: name, done: make(chan struct{})}
}

// finish records the unit's outcome. It must be called exactly once.
func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// Name returns the name the unit was enqueued with.
func (h *Handle) Name() string {
	return h.name
}

// Done returns a channel closed once the unit finished (or failed).
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the unit finished and returns its error, or returns the
// context error if ctx is done first. The unit keeps running in that case.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return errors.WithMessagef(ctx.Err(), "waiting for %s", h.name)
	}
}

type unit struct {
	handle *Handle
	fn     func() error
}

// Queue runs units of work at most once each, in submission order.
//
// With Config.Async unset, Enqueue runs the unit in the calling goroutine
// and returns an already finished handle. Otherwise a single background
// worker drains the queue, so units touching the same buffers observe each
// other's writes in order.
type Queue struct {
	async bool

	mu     sync.Mutex
	closed bool
	units  chan unit
	wg     sync.WaitGroup
}

// NewQueue creates a queue configured by cfg.
func NewQueue(cfg Config) *Queue {
	q := &Queue{async: cfg.Async}
	if q.async {
		q.units = make(chan unit, max(cfg.QueueDepth, 0))
		q.wg.Add(1)
		go q.worker()
		klog.V(1).Infof("parallel: started async queue (depth %d)", cap(q.units))
	}
	return q
}

// IsAsync reports whether units run on a background worker.
func (q *Queue) IsAsync() bool {
	return q.async
}

// Enqueue submits fn under the given name and returns its handle.
// A panic inside fn is recovered and reported as the unit's error.
func (q *Queue) Enqueue(name string, fn func() error) *Handle {
	h := newHandle(name)
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		h.finish(errors.Wrapf(ErrQueueClosed, "cannot run %s", name))
		return h
	}
	if !q.async {
		q.mu.Unlock()
		run(unit{handle: h, fn: fn})
		return h
	}
	// Sending under the lock keeps Close from closing the channel mid-send.
	q.units <- unit{handle: h, fn: fn}
	q.mu.Unlock()
	return h
}

// Sync blocks until every unit enqueued before the call has finished.
func (q *Queue) Sync(ctx context.Context) error {
	h := q.Enqueue("sync", func() error { return nil })
	err := h.Wait(ctx)
	if errors.Is(err, ErrQueueClosed) {
		return nil
	}
	return err
}

// Close stops accepting units, lets the worker drain what was queued, and
// waits for it to exit. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	if q.async {
		close(q.units)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for u := range q.units {
		run(u)
	}
	klog.V(1).Infof("parallel: async queue drained")
}

func run(u unit) {
	var err error
	exception := exceptions.Try(func() { err = u.fn() })
	if exception != nil {
		if e, ok := exception.(error); ok {
			err = errors.WithMessagef(e, "%s panicked", u.handle.name)
		} else {
			err = errors.Errorf("%s panicked: %v", u.handle.name, exception)
		}
	}
	if err != nil {
		klog.Warningf("parallel: unit %s failed: %v", u.handle.name, err)
	}
	u.handle.finish(err)
}
