// Package sigs implements the digital signature strategies: Ed25519 and
// ML-DSA (FIPS-204) through circl's stable scheme interface, plus SLH-DSA
// (FIPS-205) resolved from circl's scheme catalog by name.
//
// A signature container carries the signer's public key bound at child
// index 0, so verification can resolve the key without a side channel.
package sigs

import (
	"time"

	"github.com/awnumar/memguard"
	"github.com/cloudflare/circl/sign"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/metricskey"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// schemeSigner drives one signature scheme through circl's sign.Scheme.
// Malformed keys and signatures (wrong sizes, undecodable encodings) are
// errors; a well-formed signature that does not verify is (false, nil).
type schemeSigner struct {
	id     algid.ID
	scheme sign.Scheme
}

// NewSigner returns a signature strategy for id backed by scheme.
func NewSigner(id algid.ID, scheme sign.Scheme) strategy.Signer {
	return &schemeSigner{id: id, scheme: scheme}
}

func (s *schemeSigner) Algorithm() algid.ID {
	return s.id
}

func (s *schemeSigner) Sign(priv *secmem.Container, message []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "sign")

	sb, err := priv.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	defer memguard.WipeBytes(sb)

	if len(sb) != s.scheme.PrivateKeySize() {
		return nil, errors.WithMessagef(strategy.ErrSignatureProcess,
			"private key size %d, expected %d", len(sb), s.scheme.PrivateKeySize())
	}
	sk, err := s.scheme.UnmarshalBinaryPrivateKey(sb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}

	sig := s.scheme.Sign(sk, message, nil)

	pk, ok := sk.Public().(sign.PublicKey)
	if !ok {
		return nil, errors.WithMessage(strategy.ErrSignatureProcess, "signer public key unavailable")
	}
	pkb, err := pk.MarshalBinary()
	if err != nil {
		memguard.WipeBytes(sig)
		return nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}

	res := secmem.NewFromBytes(sig)
	if _, err := res.AttachBytes(pkb); err != nil {
		res.Close()
		return nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	return res, nil
}

func (s *schemeSigner) Verify(sigC *secmem.Container, message []byte, pub *secmem.Container) (bool, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "verify")

	sig, err := sigC.Export()
	if err != nil {
		return false, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	if len(sig) != s.scheme.SignatureSize() {
		return false, errors.WithMessagef(strategy.ErrSignatureProcess,
			"signature size %d, expected %d", len(sig), s.scheme.SignatureSize())
	}

	if pub == nil {
		pub, err = sigC.Child(0)
		if err != nil {
			return false, errors.WithMessage(strategy.ErrSignatureProcess, "no public key bound to signature")
		}
	}
	pkb, err := pub.Export()
	if err != nil {
		return false, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	if len(pkb) != s.scheme.PublicKeySize() {
		return false, errors.WithMessagef(strategy.ErrSignatureProcess,
			"public key size %d, expected %d", len(pkb), s.scheme.PublicKeySize())
	}
	pk, err := s.scheme.UnmarshalBinaryPublicKey(pkb)
	if err != nil {
		return false, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}

	return s.scheme.Verify(pk, message, sig, nil), nil
}

// schemeKeyPair generates key pairs for one signature scheme.
type schemeKeyPair struct {
	id     algid.ID
	scheme sign.Scheme
}

// NewKeyPair returns the key generation strategy for id backed by scheme.
func NewKeyPair(id algid.ID, scheme sign.Scheme) strategy.AsymmetricKey {
	return &schemeKeyPair{id: id, scheme: scheme}
}

func (s *schemeKeyPair) Algorithm() algid.ID {
	return s.id
}

func (s *schemeKeyPair) GenerateKeyPair() (*secmem.Container, *secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "genkeypair")

	pk, sk, err := s.scheme.GenerateKey()
	if err != nil {
		return nil, nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	pkb, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	skb, err := sk.MarshalBinary()
	if err != nil {
		memguard.WipeBytes(pkb)
		return nil, nil, errors.WithMessage(strategy.ErrSignatureProcess, err.Error())
	}
	return secmem.NewFromBytes(pkb), secmem.NewFromBytes(skb), nil
}
