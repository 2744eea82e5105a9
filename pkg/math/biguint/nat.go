// Package biguint implements arbitrary precision unsigned integers.
//
// A Nat is a value: every method returns a freshly allocated result and
// leaves both its receiver and its arguments untouched, so Nats can be shared
// freely between goroutines.
//
// None of the operations in this package run in constant time.
package biguint

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	// ErrDivisionByZero is the panic value raised when dividing by a zero Nat.
	ErrDivisionByZero = errors.New("biguint: division by zero")
	// ErrNoInverse is returned by ModInverse when gcd(x, m) ≠ 1.
	ErrNoInverse = errors.New("biguint: no modular inverse")
)

// Nat is an arbitrary precision unsigned integer.
//
// The zero value of Nat is not usable, values are obtained from the
// constructors in this package, or as the result of an operation.
type Nat struct {
	// limbs stores the magnitude, least significant limb first.
	//
	// The slice is always normalized: it never has a most significant zero
	// limb, except for the value 0, which is exactly one zero limb.
	limbs []uint64
}

// Zero returns the Nat 0.
func Zero() *Nat {
	return &Nat{limbs: []uint64{0}}
}

// One returns the Nat 1.
func One() *Nat {
	return &Nat{limbs: []uint64{1}}
}

// FromUint64 converts a machine integer into a Nat.
func FromUint64(x uint64) *Nat {
	return &Nat{limbs: []uint64{x}}
}

// FromBytes interprets b as a big-endian unsigned integer.
//
// Leading zero bytes are skipped, and an empty slice is 0.
func FromBytes(b []byte) *Nat {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	limbs := make([]uint64, (len(b)+7)/8)
	for i := 0; i < len(b); i++ {
		// byte i counted from the least significant end
		limbs[i/8] |= uint64(b[len(b)-1-i]) << (8 * (i % 8))
	}
	return fromLimbs(limbs)
}

// FromHex parses a big-endian hexadecimal string, with an optional 0x prefix.
func FromHex(s string) (*Nat, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("biguint: invalid hex: %w", err)
	}
	return FromBytes(b), nil
}

// fromLimbs takes ownership of limbs and normalizes them.
func fromLimbs(limbs []uint64) *Nat {
	limbs = trim(limbs)
	if len(limbs) == 0 {
		limbs = []uint64{0}
	}
	return &Nat{limbs: limbs}
}

// trim removes the most significant zero limbs, possibly returning an empty slice.
func trim(limbs []uint64) []uint64 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	return limbs
}

// words returns the normalized limbs of x, treating a nil or empty Nat as 0.
func (x *Nat) words() []uint64 {
	if x == nil || len(x.limbs) == 0 {
		return []uint64{0}
	}
	return x.limbs
}

func (x *Nat) clone() *Nat {
	return fromLimbs(append([]uint64(nil), x.words()...))
}

// Bytes returns the minimal big-endian encoding of x.
//
// The encoding of 0 is the empty slice.
func (x *Nat) Bytes() []byte {
	return x.FillBytes((x.Bits() + 7) / 8)
}

// FillBytes returns x encoded big-endian in exactly size bytes, left padded
// with zeros.
//
// The caller must make sure that size is at least the natural byte length of
// x: a smaller size silently drops the most significant bytes.
func (x *Nat) FillBytes(size int) []byte {
	out := make([]byte, size)
	limbs := x.words()
	for i := 0; i < size; i++ {
		limb := i / 8
		if limb >= len(limbs) {
			break
		}
		out[size-1-i] = byte(limbs[limb] >> (8 * (i % 8)))
	}
	return out
}

// Bits returns the number of significant bits of x, 0 for x = 0.
func (x *Nat) Bits() int {
	return bitLen(x.words())
}

func bitLen(limbs []uint64) int {
	limbs = trim(limbs)
	if len(limbs) == 0 {
		return 0
	}
	return (len(limbs)-1)*64 + bits.Len64(limbs[len(limbs)-1])
}

// IsZero reports whether x = 0.
func (x *Nat) IsZero() bool {
	l := x.words()
	return len(l) == 1 && l[0] == 0
}

// IsOne reports whether x = 1.
func (x *Nat) IsOne() bool {
	l := x.words()
	return len(l) == 1 && l[0] == 1
}

// IsEven reports whether x ≡ 0 (mod 2).
func (x *Nat) IsEven() bool {
	return x.words()[0]&1 == 0
}

// Uint64 returns the least significant 64 bits of x.
func (x *Nat) Uint64() uint64 {
	return x.words()[0]
}

// Cmp compares x and y, returning -1 if x < y, 0 if x = y and +1 if x > y.
func (x *Nat) Cmp(y *Nat) int {
	return cmpLimbs(x.words(), y.words())
}

// Equal reports whether x = y.
func (x *Nat) Equal(y *Nat) bool {
	return x.Cmp(y) == 0
}

// cmpLimbs compares two trimmed or normalized magnitudes.
//
// The longer magnitude is the larger one, otherwise limbs are compared from
// the most significant one down.
func cmpLimbs(a, b []uint64) int {
	a, b = trim(a), trim(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// String returns the lowercase hexadecimal representation of x.
func (x *Nat) String() string {
	if x.IsZero() {
		return "0"
	}
	return strings.TrimLeft(hex.EncodeToString(x.Bytes()), "0")
}
