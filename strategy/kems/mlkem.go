package kems

import (
	"time"

	"github.com/awnumar/memguard"
	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/metricskey"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

func mlkemScheme(id algid.ID) kem.Scheme {
	switch id {
	case algid.MLKEM512:
		return mlkem512.Scheme()
	case algid.MLKEM1024:
		return mlkem1024.Scheme()
	default:
		return mlkem768.Scheme()
	}
}

// mlkemKEM drives one ML-KEM parameter set through circl's kem.Scheme.
type mlkemKEM struct {
	id     algid.ID
	scheme kem.Scheme
}

// NewMLKEM returns the KEM strategy for an ML-KEM id.
func NewMLKEM(id algid.ID) strategy.KEM {
	return &mlkemKEM{id: id, scheme: mlkemScheme(id)}
}

func (s *mlkemKEM) Algorithm() algid.ID {
	return s.id
}

func (s *mlkemKEM) Encapsulate(pub *secmem.Container) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "encapsulate")

	pb, err := exportSized(pub, s.id.Params().PublicKeySize, "encapsulation key")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(pb)

	pk, err := s.scheme.UnmarshalBinaryPublicKey(pb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	ct, ss, err := s.scheme.Encapsulate(pk)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return bindResult(ss, ct)
}

func (s *mlkemKEM) Decapsulate(priv, ciphertext *secmem.Container) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "decapsulate")

	params := s.id.Params()
	sb, err := exportSized(priv, params.PrivateKeySize, "decapsulation key")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(sb)

	cb, err := exportSized(ciphertext, params.CiphertextSize, "ciphertext")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(cb)

	sk, err := s.scheme.UnmarshalBinaryPrivateKey(sb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	ss, err := s.scheme.Decapsulate(sk, cb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return secmem.NewFromBytes(ss), nil
}

// mlkemKeyPair generates ML-KEM key pairs.
type mlkemKeyPair struct {
	id     algid.ID
	scheme kem.Scheme
}

// NewMLKEMKeyPair returns the key generation strategy for an ML-KEM id.
func NewMLKEMKeyPair(id algid.ID) strategy.AsymmetricKey {
	return &mlkemKeyPair{id: id, scheme: mlkemScheme(id)}
}

func (s *mlkemKeyPair) Algorithm() algid.ID {
	return s.id
}

func (s *mlkemKeyPair) GenerateKeyPair() (*secmem.Container, *secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "genkeypair")

	pk, sk, err := s.scheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	pkb, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	skb, err := sk.MarshalBinary()
	if err != nil {
		memguard.WipeBytes(pkb)
		return nil, nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return secmem.NewFromBytes(pkb), secmem.NewFromBytes(skb), nil
}
