// Package rsa implements RSA key generation together with PKCS #1 v1.5
// encryption and signatures, on top of the biguint arithmetic.
//
// None of the operations run in constant time.
package rsa

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/bigrsa/internal/params"
)

var (
	// ErrKeySize is returned by GenerateKey for a size outside of the supported bounds.
	ErrKeySize = fmt.Errorf("rsa: key size must be between %d and %d bits", params.MinKeyBits, params.MaxKeyBits)
	// ErrMessageTooLong is returned when a message does not fit in a block of the key's size.
	ErrMessageTooLong = errors.New("rsa: message too long for key size")
	// ErrCiphertextLength is returned by Decrypt when the ciphertext is not exactly k bytes.
	ErrCiphertextLength = errors.New("rsa: ciphertext length does not match key size")
	// ErrInvalidPadding is returned by Decrypt when the decrypted block is not PKCS #1 v1.5 encoded.
	ErrInvalidPadding = errors.New("rsa: invalid padding")
	// ErrInvalidDER is returned when a public key cannot be parsed.
	ErrInvalidDER = errors.New("rsa: malformed DER public key")
	// ErrNoInverse is returned when a required modular inverse does not exist.
	ErrNoInverse = errors.New("rsa: no modular inverse")
	// ErrInvalidKey is returned for keys with missing or inconsistent components.
	ErrInvalidKey = errors.New("rsa: invalid key")
)
