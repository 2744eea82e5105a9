package rsa

import (
	"bytes"
	"crypto/sha256"
	"io"

	"github.com/taurusgroup/bigrsa/internal/params"
	"github.com/taurusgroup/bigrsa/pkg/math/biguint"
	"github.com/taurusgroup/bigrsa/pkg/math/sample"
)

// sha256Prefix is the DER encoding of the DigestInfo header for SHA-256:
//
//	SEQUENCE { SEQUENCE { OID 2.16.840.1.101.3.4.2.1, NULL }, OCTET STRING (32 bytes) }
var sha256Prefix = []byte{0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20}

// Encrypt encrypts msg with PKCS #1 v1.5 padding:
//
//	EM = 0x00 ‖ 0x02 ‖ PS ‖ 0x00 ‖ msg
//
// where PS consists of random non-zero bytes read from rand.
// The ciphertext is exactly Size() bytes long.
func (pk *PublicKey) Encrypt(rand io.Reader, msg []byte) ([]byte, error) {
	k := pk.Size()
	if len(msg) > k-params.PKCS1Overhead {
		return nil, ErrMessageTooLong
	}

	em := make([]byte, k)
	em[1] = 0x02
	ps, mm := em[2:k-len(msg)-1], em[k-len(msg):]
	sample.NonZeroBytes(rand, ps)
	copy(mm, msg)

	c := pk.exp(biguint.FromBytes(em))
	return c.FillBytes(k), nil
}

// Decrypt recovers the message in a PKCS #1 v1.5 ciphertext.
//
// ct must be exactly Size() bytes long.
func (sk *PrivateKey) Decrypt(ct []byte) ([]byte, error) {
	k := sk.Size()
	if len(ct) != k {
		return nil, ErrCiphertextLength
	}

	em := sk.exp(biguint.FromBytes(ct)).FillBytes(k)
	if em[0] != 0x00 || em[1] != 0x02 {
		return nil, ErrInvalidPadding
	}
	sep := bytes.IndexByte(em[2:], 0x00)
	if sep < params.PKCS1MinPadding {
		return nil, ErrInvalidPadding
	}
	return em[2+sep+1:], nil
}

// Sign returns the PKCS #1 v1.5 signature of SHA-256(msg):
//
//	EM = 0x00 ‖ 0x01 ‖ 0xff...0xff ‖ 0x00 ‖ DigestInfo
//
// The key must be large enough to hold the DigestInfo and the padding,
// otherwise ErrMessageTooLong is returned.
func (sk *PrivateKey) Sign(msg []byte) ([]byte, error) {
	k := sk.Size()
	em, err := signaturePayload(msg, k)
	if err != nil {
		return nil, err
	}
	return sk.exp(biguint.FromBytes(em)).FillBytes(k), nil
}

// Verify reports whether sig is a valid PKCS #1 v1.5 signature of SHA-256(msg).
func (pk *PublicKey) Verify(msg, sig []byte) bool {
	k := pk.Size()
	if len(sig) != k {
		return false
	}
	s := biguint.FromBytes(sig)
	if s.Cmp(pk.n) >= 0 {
		return false
	}

	em := pk.exp(s).FillBytes(k)
	if em[0] != 0x00 || em[1] != 0x01 {
		return false
	}
	i := 2
	for ; i < k && em[i] != 0x00; i++ {
		if em[i] != 0xff {
			return false
		}
	}
	if i == k || i-2 < params.PKCS1MinPadding {
		return false
	}
	return bytes.Equal(em[i+1:], digestInfo(msg))
}

// digestInfo returns the DER encoded DigestInfo of SHA-256(msg).
func digestInfo(msg []byte) []byte {
	digest := sha256.Sum256(msg)
	t := make([]byte, 0, len(sha256Prefix)+len(digest))
	t = append(t, sha256Prefix...)
	return append(t, digest[:]...)
}

// signaturePayload builds the k byte encoded message signed by Sign.
func signaturePayload(msg []byte, k int) ([]byte, error) {
	t := digestInfo(msg)
	if k < len(t)+params.PKCS1Overhead {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, k)
	em[1] = 0x01
	for i := 2; i < k-len(t)-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(t):], t)
	return em, nil
}
