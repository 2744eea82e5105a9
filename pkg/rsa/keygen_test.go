package rsa

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/bigrsa/internal/params"
	"github.com/taurusgroup/bigrsa/pkg/math/sample"
	"github.com/taurusgroup/bigrsa/pkg/pool"
)

func TestGenerateKeyBits(t *testing.T) {
	for _, bits := range []int{0, 512, params.MinKeyBits - 8, params.MaxKeyBits + 8} {
		_, err := GenerateKey(rand.Reader, bits, nil)
		assert.ErrorIs(t, err, ErrKeySize, "%d bits", bits)
	}
}

func TestPrimePair(t *testing.T) {
	p, q, err := primePair(rand.Reader, 64, pool.NewPool(2))
	require.NoError(t, err)
	assert.Equal(t, 64, p.Bits())
	assert.Equal(t, 64, q.Bits())

	p, q, err = primePair(rand.Reader, 1, nil)
	assert.ErrorIs(t, err, sample.ErrPrimeSize)
	assert.Nil(t, p)
	assert.Nil(t, q)
}

func TestGenerateKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping key generation in short mode")
	}
	pl := pool.NewPool(0)

	sk, err := GenerateKey(rand.Reader, 1024, pl)
	require.NoError(t, err)
	require.NoError(t, sk.Validate())
	assert.Equal(t, 1024, sk.Bits())
	assert.Equal(t, uint64(params.PublicExponent), sk.E().Uint64())
	for _, f := range []*big.Int{toBig(sk.P()), toBig(sk.Q())} {
		assert.True(t, f.ProbablyPrime(20))
		assert.Equal(t, 512, f.BitLen())
	}

	msg := []byte("hello world")
	ct, err := sk.Encrypt(rand.Reader, msg)
	require.NoError(t, err)
	pt, err := sk.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, msg, pt)

	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	assert.True(t, sk.Public().Verify(msg, sig))

	other, err := GenerateKey(rand.Reader, 1024, nil)
	require.NoError(t, err)
	assert.False(t, other.Public().Verify(msg, sig), "signature should not verify under another key")
	assert.False(t, sk.Public().Equal(other.Public()))
}

func BenchmarkGenerateKey1024(b *testing.B) {
	pl := pool.NewPool(0)
	for i := 0; i < b.N; i++ {
		_, _ = GenerateKey(rand.Reader, 1024, pl)
	}
}
