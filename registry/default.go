package registry

import (
	"sync"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/strategy"
	"github.com/qu4nt/entlib-go/strategy/kems"
	"github.com/qu4nt/entlib-go/strategy/sigs"
	"github.com/qu4nt/entlib-go/strategy/symcipher"
)

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// DefaultBundles returns the built-in bundles in registration order. The
// hybrid KEM bundle resolves components registered by earlier bundles, so
// the order is part of the contract.
func DefaultBundles() []strategy.Bundle {
	var out []strategy.Bundle
	out = append(out, symcipher.Bundles()...)
	out = append(out, kems.Bundles()...)
	out = append(out, sigs.Bundles()...)
	return out
}

// Default returns the process-wide registry, populating it from
// DefaultBundles on first use. Population happens exactly once; a bundle
// failure is a startup configuration bug and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(DefaultBundles()...)
		if err != nil {
			logger.Panicf("reason=populate, err=[%+v]", err)
		}
		defaultReg = r
	})
	return defaultReg
}

// Cipher returns the symmetric cipher strategy for id from the default
// registry.
func Cipher(id algid.ID) (strategy.Cipher, error) {
	return GetStrategy[strategy.Cipher](Default(), id)
}

// AEAD returns the authenticated cipher strategy for id from the default
// registry.
func AEAD(id algid.ID) (strategy.AEADCipher, error) {
	return GetStrategy[strategy.AEADCipher](Default(), id)
}

// KEM returns the key encapsulation strategy for id from the default
// registry.
func KEM(id algid.ID) (strategy.KEM, error) {
	return GetStrategy[strategy.KEM](Default(), id)
}

// Signer returns the signature strategy for id from the default registry.
func Signer(id algid.ID) (strategy.Signer, error) {
	return GetStrategy[strategy.Signer](Default(), id)
}

// SymmetricKey returns the symmetric key generation strategy for id from
// the default registry.
func SymmetricKey(id algid.ID) (strategy.SymmetricKey, error) {
	return GetKeyStrategy[strategy.SymmetricKey](Default(), id)
}

// AsymmetricKey returns the key pair generation strategy for id from the
// default registry.
func AsymmetricKey(id algid.ID) (strategy.AsymmetricKey, error) {
	return GetKeyStrategy[strategy.AsymmetricKey](Default(), id)
}
