package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestForRange_CoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 1003
	hits := make([]int32, n)
	var chunks int64
	ForRange(n, func(start, end int) {
		atomic.AddInt64(&chunks, 1)
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	for i, h := range hits {
		require.Equal(t, int32(1), h, "index %d", i)
	}
	assert.Equal(t, int64(4), chunks)
}

func TestForRange_Empty(t *testing.T) {
	called := false
	ForRange(0, func(_, _ int) { called = true }, DefaultConfig())
	assert.False(t, called)
}

func TestForRange_PanicReachesCaller(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	assert.PanicsWithValue(t, "boom", func() {
		ForRange(16, func(start, _ int) {
			if start == 0 {
				panic("boom")
			}
		}, cfg)
	})
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(100), counter)
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to a single sequential call.
	cfg := DefaultConfig()

	var calls int64
	n := cfg.MinChunkSize - 1

	ForRange(n, func(start, end int) {
		atomic.AddInt64(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, n, end)
	}, cfg)

	assert.Equal(t, int64(1), calls)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvMinChunk, "17")
	t.Setenv(EnvAsync, "true")

	cfg := ConfigFromEnv()
	assert.Equal(t, 3, cfg.NumWorkers)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 17, cfg.MinChunkSize)
	assert.True(t, cfg.Async)
}

func TestConfigFromEnv_Malformed(t *testing.T) {
	t.Setenv(EnvWorkers, "many")
	t.Setenv(EnvMinChunk, "-5")
	t.Setenv(EnvAsync, "maybe")

	def := DefaultConfig()
	cfg := ConfigFromEnv()
	assert.Equal(t, def.NumWorkers, cfg.NumWorkers)
	assert.Equal(t, def.MinChunkSize, cfg.MinChunkSize)
	assert.False(t, cfg.Async)
}

func TestConfigFromEnv_SingleWorkerDisables(t *testing.T) {
	t.Setenv(EnvWorkers, "1")
	assert.False(t, ConfigFromEnv().Enabled)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
