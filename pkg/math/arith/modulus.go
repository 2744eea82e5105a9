package arith

import (
	"errors"

	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
)

// ErrNotCoprime is returned when the factors of a modulus share a common divisor.
var ErrNotCoprime = errors.New("arith: factors are not coprime")

// Modulus wraps a modulus n and enables faster modular exponentiation when
// the factorization is known.
// When n = p⋅q, xᵈ (mod n) can be computed with two half size exponentiations
// modulo p and q respectively, and recombined with Garner's formula.
type Modulus struct {
	// represents modulus n
	n *biguint.Nat
	// n = p⋅q
	p, q *biguint.Nat
	// qInv = q⁻¹ (mod p)
	qInv *biguint.Nat
}

// ModulusFromN creates a simple wrapper around a given modulus n.
func ModulusFromN(n *biguint.Nat) *Modulus {
	return &Modulus{n: n}
}

// ModulusFromFactors creates the necessary cached values to accelerate
// exponentiation mod n = p⋅q.
//
// It fails if q has no inverse modulo p.
func ModulusFromFactors(p, q *biguint.Nat) (*Modulus, error) {
	qInv, err := q.ModInverse(p)
	if err != nil {
		return nil, ErrNotCoprime
	}
	return &Modulus{
		n:    p.Mul(q),
		p:    p,
		q:    q,
		qInv: qInv,
	}, nil
}

// N returns the modulus.
func (m *Modulus) N() *biguint.Nat {
	return m.n
}

// P returns the first factor of the modulus, or nil if it is unknown.
func (m *Modulus) P() *biguint.Nat {
	return m.p
}

// Q returns the second factor of the modulus, or nil if it is unknown.
func (m *Modulus) Q() *biguint.Nat {
	return m.q
}

// QInv returns q⁻¹ (mod p), or nil if the factorization is unknown.
func (m *Modulus) QInv() *biguint.Nat {
	return m.qInv
}

// Exp returns xᵉ (mod n).
func (m *Modulus) Exp(x, e *biguint.Nat) *biguint.Nat {
	return x.ModPow(e, m.n)
}

// ExpCRT returns xᵈ (mod n), given dp = d mod (p-1) and dq = d mod (q-1).
//
// ExpCRT panics if the modulus was not created from its factors.
func (m *Modulus) ExpCRT(x, dp, dq *biguint.Nat) *biguint.Nat {
	if !m.hasFactorization() {
		panic("arith: ExpCRT called without a factorization")
	}
	m1 := x.ModPow(dp, m.p) // m₁ = x^dp (mod p)
	m2 := x.ModPow(dq, m.q) // m₂ = x^dq (mod q)

	// h = q⁻¹⋅(m₁ - m₂) (mod p)
	var h *biguint.Nat
	if m1.Cmp(m2) >= 0 {
		h = m.qInv.Mul(m1.Sub(m2)).Mod(m.p)
	} else {
		h = m.qInv.Mul(m2.Sub(m1)).Mod(m.p)
		if !h.IsZero() {
			h = m.p.Sub(h)
		}
	}
	// m = m₂ + h⋅q
	return m2.Add(h.Mul(m.q))
}

func (m Modulus) hasFactorization() bool {
	return m.p != nil && m.q != nil && m.qInv != nil
}
