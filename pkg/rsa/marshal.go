package rsa

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
)

var (
	_ encoding.BinaryMarshaler   = (*PublicKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.BinaryMarshaler   = (*PrivateKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PrivateKey)(nil)
)

// integers are stored as their minimal big-endian encoding.
type publicKeyMarshal struct {
	N, E []byte
}

type privateKeyMarshal struct {
	N, E, D, P, Q []byte
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&publicKeyMarshal{
		N: pk.n.Bytes(),
		E: pk.e.Bytes(),
	})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var pm publicKeyMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return fmt.Errorf("rsa: public key: %w", err)
	}
	decoded, err := NewPublicKey(biguint.FromBytes(pm.N), biguint.FromBytes(pm.E))
	if err != nil {
		return fmt.Errorf("rsa: public key: %w", err)
	}
	*pk = *decoded
	return nil
}

// MarshalBinary encodes the raw components of the key. The CRT parameters
// are derived again when decoding.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	if sk.PublicKey == nil || sk.modulus == nil {
		return nil, errors.New("rsa: private key is not initialized")
	}
	return cbor.Marshal(&privateKeyMarshal{
		N: sk.n.Bytes(),
		E: sk.e.Bytes(),
		D: sk.d.Bytes(),
		P: sk.P().Bytes(),
		Q: sk.Q().Bytes(),
	})
}

func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	var sm privateKeyMarshal
	if err := cbor.Unmarshal(data, &sm); err != nil {
		return fmt.Errorf("rsa: private key: %w", err)
	}
	decoded, err := NewPrivateKey(
		biguint.FromBytes(sm.N),
		biguint.FromBytes(sm.E),
		biguint.FromBytes(sm.D),
		biguint.FromBytes(sm.P),
		biguint.FromBytes(sm.Q),
	)
	if err != nil {
		return fmt.Errorf("rsa: private key: %w", err)
	}
	if err = decoded.Validate(); err != nil {
		return fmt.Errorf("rsa: private key: %w", err)
	}
	*sk = *decoded
	return nil
}
