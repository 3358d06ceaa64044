// Package kdf derives symmetric keys from shared secrets held in locked
// containers, using HKDF-SHA256. Its main use is turning a KEM shared
// secret into a cipher key without the secret touching regular memory
// longer than the derivation itself.
package kdf

import (
	"crypto/sha256"
	"io"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/secmem"
)

// Derive expands secret into length bytes of key material bound to salt
// and info, and returns it in a fresh container.
func Derive(secret *secmem.Container, salt, info []byte, length int) (*secmem.Container, error) {
	if length <= 0 {
		return nil, errors.Errorf("kdf: invalid output length: %d", length)
	}
	sb, err := secret.Export()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer memguard.WipeBytes(sb)

	out := make([]byte, length)
	r := hkdf.New(sha256.New, sb, salt, info)
	if _, err := io.ReadFull(r, out); err != nil {
		memguard.WipeBytes(out)
		return nil, errors.WithStack(err)
	}
	return secmem.NewFromBytes(out), nil
}

// DeriveKey derives a key sized for alg, bound to the algorithm
// identifier so the same secret yields independent keys per algorithm.
func DeriveKey(secret *secmem.Container, alg algid.ID, info []byte) (*secmem.Container, error) {
	size := alg.Params().KeySize
	if size == 0 {
		return nil, errors.Errorf("kdf: no key size for algorithm: %s", alg)
	}
	bound := make([]byte, 0, len(alg)+1+len(info))
	bound = append(bound, alg.String()...)
	bound = append(bound, 0)
	bound = append(bound, info...)
	return Derive(secret, nil, bound, size)
}
