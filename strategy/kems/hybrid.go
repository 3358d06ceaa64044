package kems

import (
	"time"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/metricskey"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// hybridKEM composes a classical and a post-quantum KEM. All concatenated
// values keep the fixed classical || post-quantum order:
//
//	public key:    PK_c  || PK_pq
//	private key:   SK_c  || SK_pq
//	ciphertext:    CT_c  || CT_pq
//	shared secret: SS_c  || SS_pq
//
// so every hybrid parameter size is the sum of its component sizes.
type hybridKEM struct {
	id        algid.ID
	classical strategy.KEM
	pq        strategy.KEM
}

// NewHybrid composes two registry-resolved sub-strategies into one KEM
// serving id. The classical component comes first in every concatenation.
func NewHybrid(id algid.ID, classical, pq strategy.KEM) strategy.KEM {
	return &hybridKEM{id: id, classical: classical, pq: pq}
}

func (s *hybridKEM) Algorithm() algid.ID {
	return s.id
}

func (s *hybridKEM) Encapsulate(pub *secmem.Container) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "encapsulate")

	cp := s.classical.Algorithm().Params()
	pp := s.pq.Algorithm().Params()

	pb, err := exportSized(pub, cp.PublicKeySize+pp.PublicKeySize, "encapsulation key")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(pb)

	cPub := secmem.NewFromBytes(pb[:cp.PublicKeySize])
	defer cPub.Close()
	pqPub := secmem.NewFromBytes(pb[cp.PublicKeySize:])
	defer pqPub.Close()

	cRes, err := s.classical.Encapsulate(cPub)
	if err != nil {
		return nil, err
	}
	defer cRes.Close()
	pqRes, err := s.pq.Encapsulate(pqPub)
	if err != nil {
		return nil, err
	}
	defer pqRes.Close()

	ss, err := concatWithChild(cRes, pqRes, "shared secret")
	if err != nil {
		return nil, err
	}
	ct, err := concatChildren(cRes, pqRes)
	if err != nil {
		memguard.WipeBytes(ss)
		return nil, err
	}
	return bindResult(ss, ct)
}

func (s *hybridKEM) Decapsulate(priv, ciphertext *secmem.Container) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "decapsulate")

	cp := s.classical.Algorithm().Params()
	pp := s.pq.Algorithm().Params()

	// Fail fast on a malformed combined ciphertext; a partial
	// decapsulation must never be attempted.
	cb, err := exportSized(ciphertext, cp.CiphertextSize+pp.CiphertextSize, "hybrid ciphertext")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(cb)

	sb, err := exportSized(priv, cp.PrivateKeySize+pp.PrivateKeySize, "decapsulation key")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(sb)

	cPriv := secmem.NewFromBytes(sb[:cp.PrivateKeySize])
	defer cPriv.Close()
	pqPriv := secmem.NewFromBytes(sb[cp.PrivateKeySize:])
	defer pqPriv.Close()
	cCt := secmem.NewFromBytes(cb[:cp.CiphertextSize])
	defer cCt.Close()
	pqCt := secmem.NewFromBytes(cb[cp.CiphertextSize:])
	defer pqCt.Close()

	cSS, err := s.classical.Decapsulate(cPriv, cCt)
	if err != nil {
		return nil, err
	}
	defer cSS.Close()
	pqSS, err := s.pq.Decapsulate(pqPriv, pqCt)
	if err != nil {
		return nil, err
	}
	defer pqSS.Close()

	ss, err := concatExports(cSS, pqSS)
	if err != nil {
		return nil, err
	}
	return secmem.NewFromBytes(ss), nil
}

// concatWithChild concatenates the payloads of the two result containers.
func concatWithChild(a, b *secmem.Container, what string) ([]byte, error) {
	out, err := concatExports(a, b)
	if err != nil {
		return nil, errors.WithMessagef(err, "combine %s", what)
	}
	return out, nil
}

// concatChildren concatenates the bound ciphertexts of two KEM results.
func concatChildren(a, b *secmem.Container) ([]byte, error) {
	aCt, err := a.Child(0)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, "classical ciphertext binding missing")
	}
	bCt, err := b.Child(0)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, "post-quantum ciphertext binding missing")
	}
	return concatExports(aCt, bCt)
}

func concatExports(a, b *secmem.Container) ([]byte, error) {
	ab, err := a.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	bb, err := b.Export()
	if err != nil {
		memguard.WipeBytes(ab)
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	out := make([]byte, 0, len(ab)+len(bb))
	out = append(out, ab...)
	out = append(out, bb...)
	memguard.WipeBytes(ab)
	memguard.WipeBytes(bb)
	return out, nil
}

// hybridKeyPair concatenates the component key pairs.
type hybridKeyPair struct {
	id        algid.ID
	classical strategy.AsymmetricKey
	pq        strategy.AsymmetricKey
}

// NewHybridKeyPair composes two key generation strategies for id.
func NewHybridKeyPair(id algid.ID, classical, pq strategy.AsymmetricKey) strategy.AsymmetricKey {
	return &hybridKeyPair{id: id, classical: classical, pq: pq}
}

func (s *hybridKeyPair) Algorithm() algid.ID {
	return s.id
}

func (s *hybridKeyPair) GenerateKeyPair() (*secmem.Container, *secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "genkeypair")

	cPub, cPriv, err := s.classical.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	defer cPub.Close()
	defer cPriv.Close()

	pqPub, pqPriv, err := s.pq.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	defer pqPub.Close()
	defer pqPriv.Close()

	pub, err := concatExports(cPub, pqPub)
	if err != nil {
		return nil, nil, err
	}
	priv, err := concatExports(cPriv, pqPriv)
	if err != nil {
		memguard.WipeBytes(pub)
		return nil, nil, err
	}
	return secmem.NewFromBytes(pub), secmem.NewFromBytes(priv), nil
}
