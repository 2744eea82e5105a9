package rsa

import (
	"fmt"

	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// ParsePublicKeyDER reads a public key encoded as
//
//	SEQUENCE { INTEGER n, INTEGER e }
//
// The contents of both integers are read as unsigned big-endian magnitudes.
// Any unexpected tag, malformed length, trailing data or zero value yields ErrInvalidDER.
func ParsePublicKeyDER(der []byte) (*PublicKey, error) {
	input := cryptobyte.String(der)
	var seq, nBytes, eBytes cryptobyte.String
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("%w: expected a single SEQUENCE", ErrInvalidDER)
	}
	if !seq.ReadASN1(&nBytes, asn1.INTEGER) || len(nBytes) == 0 {
		return nil, fmt.Errorf("%w: modulus", ErrInvalidDER)
	}
	if !seq.ReadASN1(&eBytes, asn1.INTEGER) || len(eBytes) == 0 {
		return nil, fmt.Errorf("%w: public exponent", ErrInvalidDER)
	}
	if !seq.Empty() {
		return nil, fmt.Errorf("%w: trailing data in SEQUENCE", ErrInvalidDER)
	}

	pk, err := NewPublicKey(biguint.FromBytes(nBytes), biguint.FromBytes(eBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDER, err)
	}
	return pk, nil
}

// MarshalDER encodes pk in the format read by ParsePublicKeyDER, with minimal
// non-negative INTEGER contents.
func (pk *PublicKey) MarshalDER() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addUnsigned(b, pk.n)
		addUnsigned(b, pk.e)
	})
	return b.Bytes()
}

func addUnsigned(b *cryptobyte.Builder, x *biguint.Nat) {
	b.AddASN1(asn1.INTEGER, func(b *cryptobyte.Builder) {
		bs := x.Bytes()
		// a set top bit would read as a negative INTEGER
		if len(bs) == 0 || bs[0]&0x80 != 0 {
			b.AddUint8(0)
		}
		b.AddBytes(bs)
	})
}
