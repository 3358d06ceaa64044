package symcipher

import (
	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/strategy"
)

// Bundles returns the symmetric cipher bundles in registration order.
func Bundles() []strategy.Bundle {
	return []strategy.Bundle{aesBundle{}, chachaBundle{}}
}

// aesBundle registers AES-128/192/256 in CBC, CTR and GCM modes.
type aesBundle struct{}

func (aesBundle) Name() string {
	return "symcipher/aes"
}

func (aesBundle) Register(r strategy.Registrar) error {
	for _, id := range []algid.ID{
		algid.AES128, algid.AES192, algid.AES256,
		algid.AES128CTR, algid.AES192CTR, algid.AES256CTR,
	} {
		if err := r.RegisterStrategy(id, NewAES(id)); err != nil {
			return err
		}
		if err := r.RegisterKeyStrategy(id, NewKeyStrategy(id)); err != nil {
			return err
		}
	}
	for _, id := range []algid.ID{algid.AES128GCM, algid.AES192GCM, algid.AES256GCM} {
		if err := r.RegisterStrategy(id, NewAESGCM(id)); err != nil {
			return err
		}
		if err := r.RegisterKeyStrategy(id, NewKeyStrategy(id)); err != nil {
			return err
		}
	}
	return nil
}

// chachaBundle registers ChaCha20 and ChaCha20-Poly1305.
type chachaBundle struct{}

func (chachaBundle) Name() string {
	return "symcipher/chacha"
}

func (chachaBundle) Register(r strategy.Registrar) error {
	if err := r.RegisterStrategy(algid.ChaCha20, NewChaCha20()); err != nil {
		return err
	}
	if err := r.RegisterKeyStrategy(algid.ChaCha20, NewKeyStrategy(algid.ChaCha20)); err != nil {
		return err
	}
	if err := r.RegisterStrategy(algid.ChaCha20Poly1305, NewChaCha20Poly1305()); err != nil {
		return err
	}
	return r.RegisterKeyStrategy(algid.ChaCha20Poly1305, NewKeyStrategy(algid.ChaCha20Poly1305))
}
