package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/taurusgroup/bigrsa/internal/params"
)

// KeySizeTag is the struct tag under which KeySizeValidation is registered.
const KeySizeTag = "rsa_keysize"

// KeySizeValidation accepts RSA modulus sizes supported by key generation,
// in whole bytes.
func KeySizeValidation(fl validator.FieldLevel) bool {
	keySize := fl.Field().Int()
	return keySize >= params.MinKeyBits && keySize <= params.MaxKeyBits && keySize%8 == 0
}
