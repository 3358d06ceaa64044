// Package seal provides envelope protection for small blobs and objects
// on top of the registry's authenticated ciphers. A provider derives its
// data key from a secret container and prepends a random IV to every
// sealed blob.
package seal

import (
	"context"
	"crypto/sha256"
	"io"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/registry"
	"github.com/qu4nt/entlib-go/secmem"
)

// Provider seals and opens opaque blobs.
type Provider interface {
	// Seal returns the protected blob.
	Seal(ctx context.Context, data []byte) ([]byte, error)
	// Open returns the original data.
	Open(ctx context.Context, sealed []byte) ([]byte, error)
	// IsReady returns true when the provider holds a usable key.
	IsReady() bool
}

type symProvider struct {
	alg algid.ID
	key *secmem.Container
}

// NewSymmetric returns a Provider for the given AEAD algorithm, with the
// data key derived from secret via HKDF-SHA256. The secret container
// stays usable by the caller.
func NewSymmetric(secret *secmem.Container, alg algid.ID) (Provider, error) {
	if alg.Category() != algid.CategoryAEAD {
		return nil, errors.Errorf("seal: not an authenticated cipher: %s", alg)
	}
	if _, err := registry.AEAD(alg); err != nil {
		return nil, err
	}

	sb, err := secret.Export()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer memguard.WipeBytes(sb)

	key := make([]byte, alg.Params().KeySize)
	kdf := hkdf.New(sha256.New, sb, nil, []byte("entlib/seal/v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, errors.WithStack(err)
	}
	return &symProvider{alg: alg, key: secmem.NewFromBytes(key)}, nil
}

func (p *symProvider) Seal(_ context.Context, data []byte) ([]byte, error) {
	aead, err := registry.AEAD(p.alg)
	if err != nil {
		return nil, err
	}
	iv, err := secmem.RandomBytes(p.alg.Params().IVSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	pt := secmem.NewFromBytes(cp)
	defer pt.Close()

	ct, err := aead.Encrypt(p.key, pt, iv)
	if err != nil {
		return nil, err
	}
	defer ct.Close()

	cb, err := ct.Export()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sealed := make([]byte, 0, len(iv)+len(cb))
	sealed = append(sealed, iv...)
	sealed = append(sealed, cb...)
	return sealed, nil
}

func (p *symProvider) Open(_ context.Context, sealed []byte) ([]byte, error) {
	ivSize := p.alg.Params().IVSize
	if len(sealed) < ivSize {
		return nil, errors.Errorf("seal: truncated blob")
	}
	aead, err := registry.AEAD(p.alg)
	if err != nil {
		return nil, err
	}

	cp := make([]byte, len(sealed)-ivSize)
	copy(cp, sealed[ivSize:])
	ct := secmem.NewFromBytes(cp)
	defer ct.Close()

	pt, err := aead.Decrypt(p.key, ct, sealed[:ivSize])
	if err != nil {
		return nil, err
	}
	defer pt.Close()

	return pt.Export()
}

func (p *symProvider) IsReady() bool {
	return p.key != nil && !p.key.IsClosed()
}

// Close wipes the derived data key.
func (p *symProvider) Close() {
	p.key.Close()
}
