package rsa

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/taurusgroup/bigrsa/internal/params"
	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
	"github.com/taurusgroup/bigrsa/pkg/math/sample"
	"github.com/taurusgroup/bigrsa/pkg/pool"
)

// GenerateKey generates a fresh key pair whose modulus is the product of two
// random primes of bits/2 bits each, with e = 65537.
//
// bits must lie in [params.MinKeyBits, params.MaxKeyBits].
// If pl is not nil, both primes are searched for concurrently.
func GenerateKey(rand io.Reader, bits int, pl *pool.Pool) (*PrivateKey, error) {
	if bits < params.MinKeyBits || bits > params.MaxKeyBits {
		return nil, fmt.Errorf("%w: have %d", ErrKeySize, bits)
	}
	half := bits / 2
	e := biguint.FromUint64(params.PublicExponent)

	p, q, err := primePair(rand, half, pl)
	if err != nil {
		return nil, err
	}
	if p.Equal(q) {
		slog.Debug("rsa: equal primes drawn, retrying once", "bits", half)
		if q, err = sample.Prime(rand, half); err != nil {
			return nil, fmt.Errorf("rsa: generate q: %w", err)
		}
		if p.Equal(q) {
			return nil, fmt.Errorf("%w: p = q", ErrInvalidKey)
		}
	}

	one := biguint.One()
	// ϕ = (p-1)(q-1)
	phi := p.Sub(one).Mul(q.Sub(one))
	d, err := e.ModInverse(phi)
	if err != nil {
		return nil, fmt.Errorf("rsa: e⁻¹ (mod ϕ): %w", ErrNoInverse)
	}

	sk, err := NewPrivateKey(p.Mul(q), e, d, p, q)
	if err != nil {
		return nil, err
	}
	slog.Debug("rsa: key generated", "bits", sk.Bits())
	return sk, nil
}

// primePair samples two independent primes of the given size.
func primePair(rand io.Reader, bits int, pl *pool.Pool) (p, q *biguint.Nat, err error) {
	reader := pool.NewLockedReader(rand)
	results, err := pl.Parallelize(2, func(int) (interface{}, error) {
		prime, err := sample.Prime(reader, bits)
		// a nil *biguint.Nat would make a non-nil interface{}
		if err != nil {
			return nil, err
		}
		return prime, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rsa: generate primes: %w", err)
	}
	return results[0].(*biguint.Nat), results[1].(*biguint.Nat), nil
}

