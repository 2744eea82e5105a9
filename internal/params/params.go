package params

const (
	// MinKeyBits and MaxKeyBits bound the size of generated RSA moduli.
	MinKeyBits = 1024
	MaxKeyBits = 4096

	// PublicExponent is the fixed RSA public exponent e = 2¹⁶ + 1.
	PublicExponent = 65537

	// PrimalityIterations is the number of Miller-Rabin rounds used when
	// generating primes.
	//
	// 20 is the same number that Go uses internally.
	PrimalityIterations = 20

	// MaxPrimeIterations bounds the number of candidates drawn when
	// generating a single prime.
	MaxPrimeIterations = 1000

	// PKCS1MinPadding is the minimum number of padding bytes in a PKCS #1 v1.5
	// encoded message.
	PKCS1MinPadding = 8
	// PKCS1Overhead is the number of bytes PKCS #1 v1.5 adds around a message:
	// the 0x00 0x02 prefix, the minimum padding, and the 0x00 separator.
	PKCS1Overhead = 3 + PKCS1MinPadding // = 11
)
