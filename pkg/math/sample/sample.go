package sample

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
)

const maxIterations = 255

var (
	// ErrMaxIterations is the value mustReadBits panics with when the source keeps failing.
	ErrMaxIterations = fmt.Errorf("sample: failed to read randomness after %d iterations", maxIterations)
	// ErrEmptyRange is returned by Range when high ⩽ low.
	ErrEmptyRange = errors.New("sample: empty range")
)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Range samples a uniform integer in [low, high), by rejection sampling.
func Range(rand io.Reader, low, high *biguint.Nat) (*biguint.Nat, error) {
	if high.Cmp(low) <= 0 {
		return nil, ErrEmptyRange
	}
	width := high.Sub(low)
	bits := width.Bits()
	buf := make([]byte, (bits+7)/8)
	// Only keep as many bits as width has, so that each draw succeeds with
	// probability at least 1/2.
	mask := byte(0xff >> (8*len(buf) - bits))
	for {
		mustReadBits(rand, buf)
		buf[0] &= mask
		x := biguint.FromBytes(buf)
		if x.Cmp(width) < 0 {
			return low.Add(x), nil
		}
	}
}

// NonZeroBytes fills buf with random non-zero bytes.
//
// Every zero byte drawn is replaced by a fresh draw, until none remain.
func NonZeroBytes(rand io.Reader, buf []byte) {
	mustReadBits(rand, buf)
	for i := range buf {
		for buf[i] == 0 {
			mustReadBits(rand, buf[i:i+1])
		}
	}
}
