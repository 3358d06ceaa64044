// Package kems implements the key-encapsulation strategies: ML-KEM
// (FIPS-203) through circl's stable scheme interface, a classical X25519
// DH-KEM, and the X25519MLKEM768 hybrid composed from both.
//
// Every encapsulation result is a shared-secret container with the
// ciphertext bound at child index 0, so the pair travels as one logical
// unit.
package kems

import (
	"github.com/awnumar/memguard"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// exportSized exports a container and validates its size before any
// backend call is attempted. The caller must wipe the copy.
func exportSized(c *secmem.Container, want int, what string) ([]byte, error) {
	b, err := c.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	if len(b) != want {
		memguard.WipeBytes(b)
		return nil, errors.WithMessagef(strategy.ErrKEMProcess, "%s size %d, expected %d", what, len(b), want)
	}
	return b, nil
}

// bindResult packages a shared secret with its ciphertext bound at child
// index 0. Both input slices are wiped.
func bindResult(ss, ct []byte) (*secmem.Container, error) {
	res := secmem.NewFromBytes(ss)
	if _, err := res.AttachBytes(ct); err != nil {
		res.Close()
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return res, nil
}
