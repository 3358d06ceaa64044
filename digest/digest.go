// Package digest hashes byte slices and container payloads. BLAKE3 is the
// default for fingerprinting; SHA-2 and SHA-3 variants are available for
// interoperability.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/qu4nt/entlib-go/secmem"
)

// Algorithm selects the hash function.
type Algorithm string

// Supported hash algorithms.
const (
	SHA256   Algorithm = "SHA-256"
	SHA512   Algorithm = "SHA-512"
	SHA3_256 Algorithm = "SHA3-256"
	BLAKE3   Algorithm = "BLAKE3"
)

// New returns a fresh hash state for the algorithm.
func New(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, errors.Errorf("digest: unsupported algorithm: %q", alg)
	}
}

// Sum hashes data with the algorithm.
func Sum(alg Algorithm, data []byte) ([]byte, error) {
	h, err := New(alg)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}

// SumContainer hashes a container payload without the payload outliving
// the call outside locked memory.
func SumContainer(alg Algorithm, c *secmem.Container) ([]byte, error) {
	b, err := c.Export()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer memguard.WipeBytes(b)
	return Sum(alg, b)
}

// Fingerprint returns the hex BLAKE3 digest of a container payload, for
// logging and key identification.
func Fingerprint(c *secmem.Container) (string, error) {
	sum, err := SumContainer(BLAKE3, c)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}
