// Package symcipher implements the symmetric cipher strategies: AES in
// CBC, CTR and GCM modes, ChaCha20 and ChaCha20-Poly1305. The cipher math
// is delegated to the Go standard library and x/crypto engines.
package symcipher

import (
	"github.com/awnumar/memguard"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// exportKey pulls a heap copy of the key container and validates its size
// before any engine is constructed. The caller must wipe the copy.
func exportKey(key *secmem.Container, want int) ([]byte, error) {
	kb, err := key.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	if len(kb) != want {
		memguard.WipeBytes(kb)
		return nil, errors.WithMessagef(strategy.ErrCipherProcess, "key size %d, expected %d", len(kb), want)
	}
	return kb, nil
}

func checkIV(iv []byte, want int) error {
	if len(iv) != want {
		return errors.WithMessagef(strategy.ErrCipherProcess, "iv size %d, expected %d", len(iv), want)
	}
	return nil
}

// keyStrategy generates fresh random keys of the algorithm's defined size.
type keyStrategy struct {
	id algid.ID
}

// NewKeyStrategy returns the symmetric key generation strategy for id.
func NewKeyStrategy(id algid.ID) strategy.SymmetricKey {
	return keyStrategy{id: id}
}

func (s keyStrategy) Algorithm() algid.ID {
	return s.id
}

func (s keyStrategy) GenerateKey() (*secmem.Container, error) {
	return secmem.NewRandom(s.id.Params().KeySize), nil
}
