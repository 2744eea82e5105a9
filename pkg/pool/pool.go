package pool

import (
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// parallelizeAlone calculates the result of f count times, stopping at the first error
func parallelizeAlone(f func(int) (interface{}, error), count int) ([]interface{}, error) {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		res, err := f(i)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// Pool bounds the number of goroutines used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
type Pool struct {
	// This holds the number of workers allowed to run at once
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	return &Pool{workerCount: count}
}

// Workers returns the number of goroutines the pool runs at once, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
// If any call fails, the first error is returned once all calls have finished.
func (p *Pool) Parallelize(count int, f func(int) (interface{}, error)) ([]interface{}, error) {
	if p == nil {
		return parallelizeAlone(f, count)
	}

	results := make([]interface{}, count)

	var g errgroup.Group
	g.SetLimit(p.workerCount)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			res, err := f(i)
			if err != nil {
				return err
			}
			// each goroutine owns its own slot
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// Intentionally not initializing m, since the zero value is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// The behavior is to return the same output as the underlying reader. The difference
// is that it's safe to call this function concurrently.
//
// Naturally, when calling this function concurrently, what value ends up getting
// read is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
