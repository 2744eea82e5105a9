package biguint

import (
	"math/bits"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomNat samples a Nat with at most maxBytes bytes, sometimes with
// leading zero bytes to exercise normalization.
func randomNat(r *mrand.Rand, maxBytes int) *Nat {
	buf := make([]byte, r.Intn(maxBytes+1))
	r.Read(buf)
	if len(buf) > 0 && r.Intn(4) == 0 {
		buf[0] = 0
	}
	return FromBytes(buf)
}

func assertNormalized(t *testing.T, x *Nat) {
	t.Helper()
	require.NotEmpty(t, x.limbs, "a Nat always has at least one limb")
	if len(x.limbs) > 1 {
		assert.NotZero(t, x.limbs[len(x.limbs)-1], "most significant limb should not be zero")
	}
}

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		limbs []uint64
	}{
		{"empty", nil, []uint64{0}},
		{"zeros", []byte{0, 0, 0}, []uint64{0}},
		{"small", []byte{0x01, 0x00, 0x01}, []uint64{0x010001}},
		{"leading zeros", []byte{0, 0, 0xff}, []uint64{0xff}},
		{"two limbs", []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0x02}, []uint64{0x02, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := FromBytes(tt.in)
			assert.Equal(t, tt.limbs, x.limbs)
			assertNormalized(t, x)
		})
	}
}

func TestBytes(t *testing.T) {
	assert.Empty(t, Zero().Bytes())
	assert.Equal(t, []byte{0x01, 0x00, 0x01}, FromUint64(65537).Bytes())

	r := mrand.New(mrand.NewSource(0))
	for i := 0; i < 100; i++ {
		x := randomNat(r, 64)
		assert.True(t, x.Equal(FromBytes(x.Bytes())), "bytes round trip for %v", x)
	}
}

func TestFillBytes(t *testing.T) {
	x := FromUint64(0x0102)
	assert.Equal(t, []byte{0, 0, 0x01, 0x02}, x.FillBytes(4))
	assert.Equal(t, []byte{0x01, 0x02}, x.FillBytes(2))
	// too small a size keeps only the low order bytes
	assert.Equal(t, []byte{0x02}, x.FillBytes(1))
	assert.Equal(t, []byte{0, 0}, Zero().FillBytes(2))
}

func TestFromHex(t *testing.T) {
	x, err := FromHex("0x10001")
	require.NoError(t, err)
	assert.Equal(t, uint64(65537), x.Uint64())
	assert.Equal(t, "10001", x.String())
	assert.Equal(t, "0", Zero().String())

	_, err = FromHex("zz")
	assert.Error(t, err)
}

func TestBits(t *testing.T) {
	assert.Equal(t, 0, Zero().Bits())
	assert.Equal(t, 1, One().Bits())
	assert.Equal(t, 17, FromUint64(65537).Bits())
	assert.Equal(t, 65, One().Shl(64).Bits())
	assert.Equal(t, 1024, One().Shl(1023).Bits())
}

func TestPredicates(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.True(t, Zero().IsEven())
	assert.False(t, Zero().IsOne())
	assert.True(t, One().IsOne())
	assert.False(t, One().IsEven())
	assert.False(t, One().Shl(64).IsZero())
	assert.False(t, One().Shl(64).IsOne())
	assert.True(t, One().Shl(64).IsEven())
}

func TestCmp(t *testing.T) {
	big := One().Shl(64)
	assert.Equal(t, -1, One().Cmp(big))
	assert.Equal(t, 1, big.Cmp(FromUint64(^uint64(0))))
	assert.Equal(t, 0, big.Cmp(FromBytes(big.Bytes())))
	assert.Equal(t, 1, FromUint64(3).Cmp(FromUint64(2)))
}

func TestAddSub(t *testing.T) {
	// carry across limbs
	top := FromUint64(^uint64(0))
	sum := top.Add(One())
	assert.Equal(t, []uint64{0, 1}, sum.limbs)
	assert.True(t, sum.Sub(One()).Equal(top))
	assert.True(t, sum.Sub(sum).IsZero())
	assertNormalized(t, sum.Sub(sum))

	r := mrand.New(mrand.NewSource(1))
	for i := 0; i < 500; i++ {
		a := randomNat(r, 80)
		b := randomNat(r, 80)
		if a.Cmp(b) < 0 {
			a, b = b, a
		}
		res := a.Add(b).Sub(b)
		assert.True(t, res.Equal(a), "(a + b) - b should be a")
		assertNormalized(t, a.Sub(b))
	}
}

func TestMul(t *testing.T) {
	top := FromUint64(^uint64(0))
	sq := top.Mul(top)
	// (2⁶⁴ - 1)² = 2¹²⁸ - 2⁶⁵ + 1
	hi, lo := bits.Mul64(^uint64(0), ^uint64(0))
	assert.Equal(t, []uint64{lo, hi}, sq.limbs)
	assert.True(t, top.Mul(Zero()).IsZero())
	assertNormalized(t, top.Mul(Zero()))
	assert.True(t, top.Mul(One()).Equal(top))
}

func TestShifts(t *testing.T) {
	x := FromUint64(0x8000_0000_0000_0001)
	assert.Equal(t, []uint64{0x2, 0x1}, x.Shl(1).limbs)
	assert.Equal(t, []uint64{0, 0, 0x8000_0000_0000_0001}, x.Shl(128).limbs)
	assert.True(t, x.Shl(67).Shr(67).Equal(x))
	assert.Equal(t, uint64(0x4000_0000_0000_0000), x.Shr(1).Uint64())
	assert.True(t, x.Shr(64).IsZero())
	assert.True(t, Zero().Shl(300).IsZero())

	r := mrand.New(mrand.NewSource(2))
	for i := 0; i < 200; i++ {
		a := randomNat(r, 64)
		n := uint(r.Intn(300))
		assert.True(t, a.Shl(n).Shr(n).Equal(a))
		assert.True(t, a.Shl(n).Equal(a.Mul(One().Shl(n))))
	}
}

func TestDivRem(t *testing.T) {
	q, rem := FromUint64(100).DivRem(FromUint64(7))
	assert.Equal(t, uint64(14), q.Uint64())
	assert.Equal(t, uint64(2), rem.Uint64())

	q, rem = FromUint64(3).DivRem(FromUint64(7))
	assert.True(t, q.IsZero())
	assert.Equal(t, uint64(3), rem.Uint64())

	q, rem = FromUint64(7).DivRem(FromUint64(7))
	assert.True(t, q.IsOne())
	assert.True(t, rem.IsZero())

	r := mrand.New(mrand.NewSource(3))
	for i := 0; i < 500; i++ {
		a := randomNat(r, 96)
		b := randomNat(r, 48)
		if b.IsZero() {
			continue
		}
		q, rem := a.DivRem(b)
		assert.True(t, q.Mul(b).Add(rem).Equal(a), "q⋅b + r should be a")
		assert.Equal(t, -1, rem.Cmp(b), "r should be < b")
		assertNormalized(t, q)
		assertNormalized(t, rem)
	}
}

func TestDivRemByZero(t *testing.T) {
	assert.PanicsWithValue(t, ErrDivisionByZero, func() {
		FromUint64(5).DivRem(Zero())
	})
	assert.PanicsWithValue(t, ErrDivisionByZero, func() {
		FromUint64(5).Mod(Zero())
	})
}

func TestImmutable(t *testing.T) {
	a := FromUint64(^uint64(0))
	b := FromUint64(12345)
	aLimbs := append([]uint64(nil), a.limbs...)
	bLimbs := append([]uint64(nil), b.limbs...)

	_ = a.Add(b)
	_ = a.Sub(b)
	_ = a.Mul(b)
	_, _ = a.DivRem(b)
	_ = a.Shl(70)
	_ = a.Shr(3)
	_ = a.ModPow(b, FromUint64(1000003))
	_, _ = b.ModInverse(FromUint64(1000003))

	assert.Equal(t, aLimbs, a.limbs)
	assert.Equal(t, bLimbs, b.limbs)

	_, rem := b.DivRem(a)
	assert.True(t, rem.Equal(b))
	assert.NotSame(t, b, rem, "remainder should be a fresh value")
}
