package parallel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_SyncRunsInline(t *testing.T) {
	q := NewQueue(Config{})
	defer q.Close()
	require.False(t, q.IsAsync())

	ran := false
	h := q.Enqueue("inline", func() error {
		ran = true
		return nil
	})
	assert.True(t, ran, "sync queue must run the unit before Enqueue returns")
	select {
	case <-h.Done():
	default:
		t.Fatal("handle of a sync unit should already be done")
	}
	assert.NoError(t, h.Wait(context.Background()))
	assert.Equal(t, "inline", h.Name())
}

func TestQueue_AsyncPreservesOrder(t *testing.T) {
	q := NewQueue(Config{Async: true, QueueDepth: 4})
	defer q.Close()
	require.True(t, q.IsAsync())

	var (
		mu    sync.Mutex
		order []int
	)
	handles := make([]*Handle, 0, 50)
	for i := 0; i < 50; i++ {
		handles = append(handles, q.Enqueue("unit", func() error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, i)
			return nil
		}))
	}
	require.NoError(t, handles[len(handles)-1].Wait(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueue_ErrorReachesHandle(t *testing.T) {
	for _, async := range []bool{false, true} {
		q := NewQueue(Config{Async: async})
		want := errors.New("kernel failed")
		h := q.Enqueue("failing", func() error { return want })
		err := h.Wait(context.Background())
		assert.ErrorIs(t, err, want, "async=%v", async)
		q.Close()
	}
}

func TestQueue_PanicBecomesError(t *testing.T) {
	for _, async := range []bool{false, true} {
		q := NewQueue(Config{Async: async})
		h := q.Enqueue("panicky", func() error { panic("out of range") })
		err := h.Wait(context.Background())
		require.Error(t, err, "async=%v", async)
		assert.Contains(t, err.Error(), "panicky panicked")
		assert.Contains(t, err.Error(), "out of range")

		// The queue keeps working after a failed unit.
		assert.NoError(t, q.Enqueue("next", func() error { return nil }).Wait(context.Background()))
		q.Close()
	}
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := NewQueue(Config{Async: true})
	q.Close()
	q.Close() // idempotent

	ran := false
	h := q.Enqueue("late", func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, h.Wait(context.Background()), ErrQueueClosed)
	assert.False(t, ran)
	assert.NoError(t, q.Sync(context.Background()))
}

func TestQueue_CloseDrainsPendingUnits(t *testing.T) {
	q := NewQueue(Config{Async: true, QueueDepth: 16})
	release := make(chan struct{})
	var count int
	q.Enqueue("gate", func() error {
		<-release
		return nil
	})
	for i := 0; i < 10; i++ {
		q.Enqueue("count", func() error {
			count++
			return nil
		})
	}
	close(release)
	q.Close()
	assert.Equal(t, 10, count)
}

func TestQueue_Sync(t *testing.T) {
	q := NewQueue(Config{Async: true, QueueDepth: 8})
	defer q.Close()

	var done bool
	q.Enqueue("slow", func() error {
		time.Sleep(10 * time.Millisecond)
		done = true
		return nil
	})
	require.NoError(t, q.Sync(context.Background()))
	assert.True(t, done)
}

func TestHandle_WaitHonorsContext(t *testing.T) {
	q := NewQueue(Config{Async: true})
	release := make(chan struct{})
	h := q.Enqueue("blocked", func() error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	assert.NoError(t, h.Wait(context.Background()))
	q.Close()
}
