package symcipher

import (
	"crypto/subtle"

	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/strategy"
)

// pkcs7Pad returns data extended to a whole number of blocks. A full
// padding block is appended when data is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad validates and strips the padding. The check runs over the
// full final block regardless of the padding value so the comparison count
// does not depend on the plaintext.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, "invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, "invalid padding")
	}
	good := 1
	for i := 0; i < blockSize; i++ {
		b := data[len(data)-1-i]
		if i < n {
			good &= subtle.ConstantTimeByteEq(b, byte(n))
		}
	}
	if good != 1 {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, "invalid padding")
	}
	return data[:len(data)-n], nil
}
