// Package parallel provides the execution utilities of the scan engine: a
// chunked parallel-for over independent work items and an ordered work
// queue that runs units synchronously or on a background worker.
package parallel

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
	Async        bool // Whether queued units run on a background worker.
	QueueDepth   int  // Units that may wait in an async queue before Enqueue blocks.
}

// Environment variables read by ConfigFromEnv.
const (
	EnvWorkers  = "BORN_SCAN_WORKERS"
	EnvMinChunk = "BORN_SCAN_MIN_CHUNK"
	EnvAsync    = "BORN_SCAN_ASYNC"
)

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
		Async:        false,
		QueueDepth:   64,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the BORN_SCAN_*
// environment variables. Malformed values are logged and ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, ok := envInt(EnvWorkers); ok {
		cfg.NumWorkers = v
		cfg.Enabled = v > 1
	}
	if v, ok := envInt(EnvMinChunk); ok && v > 0 {
		cfg.MinChunkSize = v
	}
	if s := os.Getenv(EnvAsync); s != "" {
		async, err := strconv.ParseBool(s)
		if err != nil {
			klog.Warningf("parallel: ignoring %s=%q: %v", EnvAsync, s, err)
		} else {
			cfg.Async = async
		}
	}
	return cfg
}

func envInt(name string) (int, bool) {
	s := os.Getenv(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		klog.Warningf("parallel: ignoring %s=%q: %v", name, s, err)
		return 0, false
	}
	return v, true
}

// ForRange splits [0, n) into contiguous chunks and calls f(start, end) for
// each, in parallel when enabled. Falls back to a single sequential call if
// parallelism is disabled or n is too small.
//
// A panic in any chunk is re-raised in the caller's goroutine once all
// chunks have finished.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		f(0, n)
		return
	}

	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		exception any
	)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			if exc := exceptions.Try(func() { f(s, e) }); exc != nil {
				panicOnce.Do(func() { exception = exc })
			}
		}(start, end)
	}
	wg.Wait()
	if exception != nil {
		panic(exception)
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}
