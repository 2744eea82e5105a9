package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/taurusgroup/bigrsa/internal/validators"
)

// KeySettings configures key generation.
type KeySettings struct {
	// KeySize is the bit length of the modulus.
	KeySize int `validate:"required,rsa_keysize"`
	// Workers bounds the goroutines searching for primes, 0 meaning one per CPU.
	Workers int `validate:"gte=0"`
	// KeyDir is where generated keys are written.
	KeyDir string `validate:"required"`
}

// DefaultKeySettings generates 2048-bit keys into the current directory.
func DefaultKeySettings() *KeySettings {
	return &KeySettings{
		KeySize: 2048,
		KeyDir:  ".",
	}
}

// Validate checks that all fields in KeySettings are valid.
func (s *KeySettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation(validators.KeySizeTag, validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register key size validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeySettings: %w", err)
	}
	return nil
}
