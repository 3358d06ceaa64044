package sigs

import (
	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
	"github.com/cloudflare/circl/sign/schemes"
	"github.com/effective-security/xlog"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/strategy"
)

var logger = xlog.NewPackageLogger("github.com/qu4nt/entlib-go", "sigs")

// Bundles returns the signature bundles in registration order.
func Bundles() []strategy.Bundle {
	return []strategy.Bundle{ed25519Bundle{}, mldsaBundle{}, slhdsaBundle{}}
}

func register(r strategy.Registrar, id algid.ID, scheme sign.Scheme) error {
	if err := r.RegisterStrategy(id, NewSigner(id, scheme)); err != nil {
		return err
	}
	return r.RegisterKeyStrategy(id, NewKeyPair(id, scheme))
}

// ed25519Bundle registers the classical Ed25519 signature.
type ed25519Bundle struct{}

func (ed25519Bundle) Name() string {
	return "sigs/ed25519"
}

func (ed25519Bundle) Register(r strategy.Registrar) error {
	return register(r, algid.Ed25519, ed25519.Scheme())
}

// mldsaBundle registers the three ML-DSA parameter sets.
type mldsaBundle struct{}

func (mldsaBundle) Name() string {
	return "sigs/mldsa"
}

func (mldsaBundle) Register(r strategy.Registrar) error {
	for _, p := range []struct {
		id     algid.ID
		scheme sign.Scheme
	}{
		{algid.MLDSA44, mldsa44.Scheme()},
		{algid.MLDSA65, mldsa65.Scheme()},
		{algid.MLDSA87, mldsa87.Scheme()},
	} {
		if err := register(r, p.id, p.scheme); err != nil {
			return err
		}
	}
	return nil
}

// slhdsaBundle registers SLH-DSA-SHA2-128s when the backend catalog
// exposes it. Older circl builds lack the scheme registration, so an
// absent entry is skipped rather than failing the whole population.
type slhdsaBundle struct{}

func (slhdsaBundle) Name() string {
	return "sigs/slhdsa"
}

func (slhdsaBundle) Register(r strategy.Registrar) error {
	scheme := schemes.ByName(algid.SLHDSA128Small.String())
	if scheme == nil {
		logger.Warningf("reason=scheme_unavailable, algorithm=%s", algid.SLHDSA128Small)
		return nil
	}
	return register(r, algid.SLHDSA128Small, scheme)
}
