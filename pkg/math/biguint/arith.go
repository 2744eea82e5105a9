package biguint

import "math/bits"

// Add returns x + y.
func (x *Nat) Add(y *Nat) *Nat {
	a, b := x.words(), y.words()
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint64, len(a)+1)
	var carry uint64
	for i := 0; i < len(a); i++ {
		var w uint64
		if i < len(b) {
			w = b[i]
		}
		out[i], carry = bits.Add64(a[i], w, carry)
	}
	out[len(a)] = carry
	return fromLimbs(out)
}

// Sub returns x - y.
//
// The caller must guarantee x ⩾ y. This is not checked: when y > x the
// result wraps around modulo 2^(64⋅max(len(x), len(y))) and is meaningless.
func (x *Nat) Sub(y *Nat) *Nat {
	a, b := x.words(), y.words()
	size := len(a)
	if len(b) > size {
		size = len(b)
	}
	out := make([]uint64, size)
	copy(out, a)
	subInPlace(out, b)
	return fromLimbs(out)
}

// subInPlace sets a = a - b, dropping the final borrow, and returns a trimmed.
func subInPlace(a, b []uint64) []uint64 {
	var borrow uint64
	for i := 0; i < len(a); i++ {
		var w uint64
		if i < len(b) {
			w = b[i]
		}
		a[i], borrow = bits.Sub64(a[i], w, borrow)
	}
	return trim(a)
}

// Mul returns x ⋅ y, using schoolbook multiplication.
func (x *Nat) Mul(y *Nat) *Nat {
	a, b := x.words(), y.words()
	out := make([]uint64, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		var carry uint64
		for j, bj := range b {
			hi, lo := bits.Mul64(ai, bj)
			var c uint64
			lo, c = bits.Add64(lo, out[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			out[i+j] = lo
			carry = hi
		}
		out[i+len(b)] = carry
	}
	return fromLimbs(out)
}

// Shl returns x ⋅ 2ⁿ. The result grows as needed, no bits are lost.
func (x *Nat) Shl(n uint) *Nat {
	a := x.words()
	out := make([]uint64, len(a)+int(n/64)+1)
	return fromLimbs(shlInto(out, a, n))
}

// shlInto writes src << n into dst, which must have room for
// len(src) + n/64 + 1 limbs, and returns the used part of dst, trimmed.
func shlInto(dst, src []uint64, n uint) []uint64 {
	limbShift, bitShift := int(n/64), n%64
	out := dst[:len(src)+limbShift+1]
	for i := range out {
		out[i] = 0
	}
	for i, w := range src {
		out[i+limbShift] |= w << bitShift
		if bitShift > 0 {
			out[i+limbShift+1] |= w >> (64 - bitShift)
		}
	}
	return trim(out)
}

// Shr returns ⌊x / 2ⁿ⌋.
func (x *Nat) Shr(n uint) *Nat {
	a := x.words()
	limbShift, bitShift := int(n/64), n%64
	if limbShift >= len(a) {
		return Zero()
	}
	out := make([]uint64, len(a)-limbShift)
	for i := range out {
		out[i] = a[i+limbShift] >> bitShift
		if bitShift > 0 && i+limbShift+1 < len(a) {
			out[i] |= a[i+limbShift+1] << (64 - bitShift)
		}
	}
	return fromLimbs(out)
}

// DivRem returns the quotient and remainder of x / y, using binary long division.
//
// DivRem panics with ErrDivisionByZero when y = 0.
func (x *Nat) DivRem(y *Nat) (quotient, remainder *Nat) {
	if y.IsZero() {
		panic(ErrDivisionByZero)
	}
	if x.Cmp(y) < 0 {
		return Zero(), x.clone()
	}

	d := y.words()
	dBits := y.Bits()
	rem := append([]uint64(nil), x.words()...)
	quo := make([]uint64, len(rem)-len(d)+1)
	// d << shift never has more bits than rem
	scratch := make([]uint64, len(rem)+1)

	for cmpLimbs(rem, d) >= 0 {
		shift := bitLen(rem) - dBits
		shifted := shlInto(scratch, d, uint(shift))
		if cmpLimbs(shifted, rem) > 0 {
			if shift == 0 {
				break
			}
			shift--
			shifted = shlInto(scratch, d, uint(shift))
		}
		quo[shift/64] |= 1 << (shift % 64)
		rem = subInPlace(rem, shifted)
	}
	return fromLimbs(quo), fromLimbs(rem)
}

// Mod returns x mod m.
//
// Mod panics with ErrDivisionByZero when m = 0.
func (x *Nat) Mod(m *Nat) *Nat {
	_, r := x.DivRem(m)
	return r
}
