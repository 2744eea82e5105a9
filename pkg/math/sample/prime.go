package sample

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/taurusgroup/bigrsa/internal/params"
	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
)

var (
	// ErrMaxPrimeIterations is the error we return when we fail to generate a prime.
	ErrMaxPrimeIterations = fmt.Errorf("sample: failed to generate prime after %d iterations", params.MaxPrimeIterations)
	ErrPrimeSize          = errors.New("sample: prime size must be at least 2-bit")
)

// IsProbablyPrime runs rounds iterations of the Miller-Rabin test on n, with
// witnesses drawn uniformly from [2, n-2].
//
// A composite n passes a single round with probability at most 1/4.
// No trial division is performed first.
func IsProbablyPrime(rand io.Reader, n *biguint.Nat, rounds int) bool {
	one := biguint.One()
	two := biguint.FromUint64(2)
	if n.Cmp(two) < 0 {
		return false
	}
	if n.IsEven() {
		return n.Equal(two)
	}
	// [2, n-2] is empty for n = 3
	if n.Equal(biguint.FromUint64(3)) {
		return true
	}

	// n - 1 = 2ˢ⋅d, with d odd
	nMinus1 := n.Sub(one)
	d := nMinus1
	s := 0
	for d.IsEven() {
		d = d.Shr(1)
		s++
	}

NextWitness:
	for i := 0; i < rounds; i++ {
		// n ⩾ 5 here, so the range is never empty
		a, _ := Range(rand, two, nMinus1)
		x := a.ModPow(d, n)
		if x.IsOne() || x.Equal(nMinus1) {
			continue
		}
		for j := 1; j < s; j++ {
			x = x.Mul(x).Mod(n)
			if x.Equal(nMinus1) {
				continue NextWitness
			}
			// a nontrivial square root of 1
			if x.IsOne() {
				return false
			}
		}
		return false
	}
	return true
}

// Prime returns a random prime of exactly bits bits.
//
// At most params.MaxPrimeIterations candidates are tested, after which
// ErrMaxPrimeIterations is returned.
func Prime(rand io.Reader, bits int) (*biguint.Nat, error) {
	if bits < 2 {
		return nil, ErrPrimeSize
	}

	// The number of significant bits in the first byte of our number
	lastBits := uint(bits % 8)
	if lastBits == 0 {
		lastBits = 8
	}
	bytes := make([]byte, (bits+7)/8)

	for i := 0; i < params.MaxPrimeIterations; i++ {
		mustReadBits(rand, bytes)

		// Clear bits in the first byte to make sure the candidate has a size <= bits.
		bytes[0] &= uint8(int(1<<lastBits) - 1)
		// Set the most significant two bits, rather than just the top one,
		// so that the product of two such primes is never one bit short.
		if lastBits >= 2 {
			bytes[0] |= 0b11 << (lastBits - 2)
		} else {
			bytes[0] |= 1
			if len(bytes) > 1 {
				bytes[1] |= 0b1000_0000
			}
		}
		// Only odd candidates.
		bytes[len(bytes)-1] |= 1

		p := biguint.FromBytes(bytes)
		if IsProbablyPrime(rand, p, params.PrimalityIterations) {
			slog.Debug("sample: prime found", "bits", bits, "attempts", i+1)
			return p, nil
		}
	}
	slog.Debug("sample: prime search exhausted", "bits", bits, "attempts", params.MaxPrimeIterations)
	return nil, ErrMaxPrimeIterations
}
