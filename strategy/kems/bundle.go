package kems

import (
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/strategy"
)

// Bundles returns the KEM bundles in registration order. The hybrid
// bundle resolves its sub-strategies through the Registrar, so it must
// come after the bundles that contribute them.
func Bundles() []strategy.Bundle {
	return []strategy.Bundle{mlkemBundle{}, x25519Bundle{}, hybridBundle{}}
}

// mlkemBundle registers the three ML-KEM parameter sets.
type mlkemBundle struct{}

func (mlkemBundle) Name() string {
	return "kems/mlkem"
}

func (mlkemBundle) Register(r strategy.Registrar) error {
	for _, id := range []algid.ID{algid.MLKEM512, algid.MLKEM768, algid.MLKEM1024} {
		if err := r.RegisterStrategy(id, NewMLKEM(id)); err != nil {
			return err
		}
		if err := r.RegisterKeyStrategy(id, NewMLKEMKeyPair(id)); err != nil {
			return err
		}
	}
	return nil
}

// x25519Bundle registers the classical X25519 KEM.
type x25519Bundle struct{}

func (x25519Bundle) Name() string {
	return "kems/x25519"
}

func (x25519Bundle) Register(r strategy.Registrar) error {
	if err := r.RegisterStrategy(algid.X25519, NewX25519()); err != nil {
		return err
	}
	return r.RegisterKeyStrategy(algid.X25519, NewX25519KeyPair())
}

// hybridBundle registers X25519MLKEM768 from the already registered
// component strategies.
type hybridBundle struct{}

func (hybridBundle) Name() string {
	return "kems/hybrid"
}

func (hybridBundle) Register(r strategy.Registrar) error {
	classical, err := lookupKEM(r, algid.X25519)
	if err != nil {
		return err
	}
	pq, err := lookupKEM(r, algid.MLKEM768)
	if err != nil {
		return err
	}
	if err := r.RegisterStrategy(algid.X25519MLKEM768, NewHybrid(algid.X25519MLKEM768, classical, pq)); err != nil {
		return err
	}

	classicalKeys, err := lookupKeyPair(r, algid.X25519)
	if err != nil {
		return err
	}
	pqKeys, err := lookupKeyPair(r, algid.MLKEM768)
	if err != nil {
		return err
	}
	return r.RegisterKeyStrategy(algid.X25519MLKEM768,
		NewHybridKeyPair(algid.X25519MLKEM768, classicalKeys, pqKeys))
}

func lookupKEM(r strategy.Registrar, id algid.ID) (strategy.KEM, error) {
	s, ok := r.LookupStrategy(id)
	if !ok {
		return nil, errors.Errorf("kems: hybrid component not registered: %s", id)
	}
	k, ok := s.(strategy.KEM)
	if !ok {
		return nil, errors.Errorf("kems: hybrid component is not a KEM: %s", id)
	}
	return k, nil
}

func lookupKeyPair(r strategy.Registrar, id algid.ID) (strategy.AsymmetricKey, error) {
	s, ok := r.LookupKeyStrategy(id)
	if !ok {
		return nil, errors.Errorf("kems: hybrid key component not registered: %s", id)
	}
	k, ok := s.(strategy.AsymmetricKey)
	if !ok {
		return nil, errors.Errorf("kems: hybrid key component is not asymmetric: %s", id)
	}
	return k, nil
}
