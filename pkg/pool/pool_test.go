package pool

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelize(t *testing.T) {
	square := func(i int) (interface{}, error) { return i * i, nil }
	for _, pl := range []*Pool{nil, NewPool(1), NewPool(4), NewPool(0)} {
		results, err := pl.Parallelize(10, square)
		require.NoError(t, err)
		require.Len(t, results, 10)
		for i, res := range results {
			assert.Equal(t, i*i, res)
		}
	}
}

func TestParallelizeError(t *testing.T) {
	errBoom := errors.New("boom")
	f := func(i int) (interface{}, error) {
		if i == 3 {
			return nil, errBoom
		}
		return i, nil
	}
	for _, pl := range []*Pool{nil, NewPool(2)} {
		results, err := pl.Parallelize(5, f)
		assert.ErrorIs(t, err, errBoom)
		assert.Nil(t, results)
	}
}

func TestParallelizeLimit(t *testing.T) {
	pl := NewPool(2)
	assert.Equal(t, 2, pl.Workers())
	assert.Equal(t, 1, (*Pool)(nil).Workers())

	var running, peak int64
	_, err := pl.Parallelize(20, func(int) (interface{}, error) {
		now := atomic.AddInt64(&running, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if now <= old || atomic.CompareAndSwapInt64(&peak, old, now) {
				break
			}
		}
		atomic.AddInt64(&running, -1)
		return nil, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

func TestLockedReader(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	r := NewLockedReader(bytes.NewReader(data))

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 512)
			n, err := io.ReadFull(r, buf)
			assert.NoError(t, err)
			mu.Lock()
			got += n
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, len(data), got, "concurrent readers should consume the stream exactly once")
}
