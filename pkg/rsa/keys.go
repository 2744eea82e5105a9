package rsa

import (
	"fmt"

	"github.com/taurusgroup/bigrsa/pkg/hash"
	"github.com/taurusgroup/bigrsa/pkg/math/arith"
	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
)

// PublicKey is an RSA public key (n, e).
type PublicKey struct {
	n, e *biguint.Nat
	// bits = log₂(n), rounded up
	bits int
}

// NewPublicKey creates a public key from its modulus and exponent.
//
// It fails if either value is zero.
func NewPublicKey(n, e *biguint.Nat) (*PublicKey, error) {
	if n == nil || e == nil || n.IsZero() || e.IsZero() {
		return nil, fmt.Errorf("%w: zero modulus or exponent", ErrInvalidKey)
	}
	return &PublicKey{n: n, e: e, bits: n.Bits()}, nil
}

// N returns the modulus.
func (pk *PublicKey) N() *biguint.Nat {
	return pk.n
}

// E returns the public exponent.
func (pk *PublicKey) E() *biguint.Nat {
	return pk.e
}

// Bits returns the bit length of the modulus.
func (pk *PublicKey) Bits() int {
	return pk.bits
}

// Size returns k, the length in bytes of ciphertexts and signatures under this key.
func (pk *PublicKey) Size() int {
	return (pk.bits + 7) / 8
}

// Equal returns true if pk and other have the same modulus and exponent.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.n.Equal(other.n) && pk.e.Equal(other.e)
}

// Fingerprint returns a digest identifying this public key.
func (pk *PublicKey) Fingerprint() []byte {
	h := hash.New()
	if err := h.WriteAny(hash.BytesWithDomain{TheDomain: "RSA Public Key"}, pk.n, pk.e); err != nil {
		panic(fmt.Sprintf("rsa.Fingerprint: uninitialized key: %v", err))
	}
	return h.Sum()
}

// exp returns xᵉ (mod n).
func (pk *PublicKey) exp(x *biguint.Nat) *biguint.Nat {
	return x.ModPow(pk.e, pk.n)
}

// PrivateKey is an RSA private key, with the CRT parameters needed to
// exponentiate modulo p and q separately.
type PrivateKey struct {
	*PublicKey
	d *biguint.Nat
	// dp = d mod (p-1), dq = d mod (q-1)
	dp, dq *biguint.Nat
	// holds p, q and qInv = q⁻¹ (mod p)
	modulus *arith.Modulus
}

// NewPrivateKey creates a private key from its raw components, deriving the
// CRT parameters.
//
// It fails with ErrNoInverse if q is not invertible modulo p.
// The relation n = p⋅q is not checked here, see Validate.
func NewPrivateKey(n, e, d, p, q *biguint.Nat) (*PrivateKey, error) {
	pk, err := NewPublicKey(n, e)
	if err != nil {
		return nil, err
	}
	if d == nil || p == nil || q == nil {
		return nil, fmt.Errorf("%w: missing private component", ErrInvalidKey)
	}
	one := biguint.One()
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: prime factor must be greater than 1", ErrInvalidKey)
	}
	modulus, err := arith.ModulusFromFactors(p, q)
	if err != nil {
		return nil, fmt.Errorf("rsa: q⁻¹ (mod p): %w", ErrNoInverse)
	}
	return &PrivateKey{
		PublicKey: pk,
		d:         d,
		dp:        d.Mod(p.Sub(one)),
		dq:        d.Mod(q.Sub(one)),
		modulus:   modulus,
	}, nil
}

// Public returns the public part of this key.
func (sk *PrivateKey) Public() *PublicKey {
	return sk.PublicKey
}

// D returns the private exponent.
func (sk *PrivateKey) D() *biguint.Nat {
	return sk.d
}

// P returns the first prime factor of n.
func (sk *PrivateKey) P() *biguint.Nat {
	return sk.modulus.P()
}

// Q returns the second prime factor of n.
func (sk *PrivateKey) Q() *biguint.Nat {
	return sk.modulus.Q()
}

// Dp returns d mod (p-1).
func (sk *PrivateKey) Dp() *biguint.Nat {
	return sk.dp
}

// Dq returns d mod (q-1).
func (sk *PrivateKey) Dq() *biguint.Nat {
	return sk.dq
}

// QInv returns q⁻¹ (mod p).
func (sk *PrivateKey) QInv() *biguint.Nat {
	return sk.modulus.QInv()
}

// Validate checks the consistency of the key:
//   - n = p⋅q
//   - q⋅qInv ≡ 1 (mod p)
//   - e⋅d ≡ 1 (mod p-1) and (mod q-1)
//
// Primality of p and q is not checked.
func (sk *PrivateKey) Validate() error {
	one := biguint.One()
	p, q := sk.P(), sk.Q()
	if !p.Mul(q).Equal(sk.n) {
		return fmt.Errorf("%w: n ≠ p⋅q", ErrInvalidKey)
	}
	if !q.Mul(sk.QInv()).Mod(p).IsOne() {
		return fmt.Errorf("%w: q⋅qInv ≢ 1 (mod p)", ErrInvalidKey)
	}
	ed := sk.e.Mul(sk.d)
	if !ed.Mod(p.Sub(one)).IsOne() || !ed.Mod(q.Sub(one)).IsOne() {
		return fmt.Errorf("%w: e⋅d ≢ 1 (mod λ(n))", ErrInvalidKey)
	}
	return nil
}

// exp returns xᵈ (mod n), computed modulo p and q and then recombined.
func (sk *PrivateKey) exp(x *biguint.Nat) *biguint.Nat {
	return sk.modulus.ExpCRT(x, sk.dp, sk.dq)
}
