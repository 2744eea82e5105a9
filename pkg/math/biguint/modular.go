package biguint

// ModPow returns xᵉ (mod m), by square and multiply over the bits of e,
// starting from the least significant one.
//
// Everything is congruent to 0 modulo 1, so for m = 1 the result is 0.
// ModPow panics with ErrDivisionByZero when m = 0.
func (x *Nat) ModPow(e, m *Nat) *Nat {
	if m.IsOne() {
		return Zero()
	}
	result := One()
	base := x.Mod(m)
	for exp := e; !exp.IsZero(); exp = exp.Shr(1) {
		if !exp.IsEven() {
			result = result.Mul(base).Mod(m)
		}
		base = base.Mul(base).Mod(m)
	}
	return result
}

// ExtendedGCD computes g = gcd(a, b) together with Bézout coefficients such that
//
//	g = (±x)⋅a + (±y)⋅b
//
// Since a Nat has no sign, the coefficients are returned as magnitudes, with
// xNeg and yNeg set when the corresponding coefficient is negative.
func ExtendedGCD(a, b *Nat) (g, x, y *Nat, xNeg, yNeg bool) {
	oldR, r := a, b
	oldS, s := One(), Zero()
	oldT, t := Zero(), One()
	var oldSNeg, sNeg, oldTNeg, tNeg bool

	for !r.IsZero() {
		q, rem := oldR.DivRem(r)
		oldR, r = r, rem

		nextS, nextSNeg := subSigned(oldS, oldSNeg, q.Mul(s), sNeg)
		oldS, oldSNeg, s, sNeg = s, sNeg, nextS, nextSNeg

		nextT, nextTNeg := subSigned(oldT, oldTNeg, q.Mul(t), tNeg)
		oldT, oldTNeg, t, tNeg = t, tNeg, nextT, nextTNeg
	}
	return oldR, oldS, oldT, oldSNeg, oldTNeg
}

// subSigned returns the signed difference (±a) - (±b), as a magnitude and a sign.
//
// Opposite signs add the magnitudes. Equal signs subtract the smaller
// magnitude from the larger one, flipping the sign when b dominates.
// Zero is never negative.
func subSigned(a *Nat, aNeg bool, b *Nat, bNeg bool) (*Nat, bool) {
	if aNeg != bNeg {
		return a.Add(b), aNeg
	}
	if a.Cmp(b) >= 0 {
		diff := a.Sub(b)
		return diff, aNeg && !diff.IsZero()
	}
	return b.Sub(a), !aNeg
}

// ModInverse returns x⁻¹ (mod m), in [0, m).
//
// It returns ErrNoInverse when gcd(x, m) ≠ 1, or when m = 0.
func (x *Nat) ModInverse(m *Nat) (*Nat, error) {
	if m.IsZero() {
		return nil, ErrNoInverse
	}
	g, inv, _, invNeg, _ := ExtendedGCD(x, m)
	if !g.IsOne() {
		return nil, ErrNoInverse
	}
	inv = inv.Mod(m)
	if invNeg && !inv.IsZero() {
		inv = m.Sub(inv)
	}
	return inv, nil
}
