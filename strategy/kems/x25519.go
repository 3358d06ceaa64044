package kems

import (
	"time"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/metricskey"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// x25519KEM is a DH-based KEM: the ciphertext is an ephemeral public key
// and the shared secret is the raw X25519 agreement, matching the 32-byte
// parameter sizes declared for algid.X25519.
type x25519KEM struct{}

// NewX25519 returns the X25519 KEM strategy.
func NewX25519() strategy.KEM {
	return x25519KEM{}
}

func (x25519KEM) Algorithm() algid.ID {
	return algid.X25519
}

func (x25519KEM) Encapsulate(pub *secmem.Container) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), algid.X25519.String(), "encapsulate")

	pb, err := exportSized(pub, curve25519.ScalarSize, "encapsulation key")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(pb)

	eph, err := secmem.RandomBytes(curve25519.ScalarSize)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	defer memguard.WipeBytes(eph)

	ct, err := curve25519.X25519(eph, curve25519.Basepoint)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	ss, err := curve25519.X25519(eph, pb)
	if err != nil {
		memguard.WipeBytes(ct)
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return bindResult(ss, ct)
}

func (x25519KEM) Decapsulate(priv, ciphertext *secmem.Container) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), algid.X25519.String(), "decapsulate")

	sb, err := exportSized(priv, curve25519.ScalarSize, "decapsulation key")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(sb)

	cb, err := exportSized(ciphertext, curve25519.ScalarSize, "ciphertext")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(cb)

	ss, err := curve25519.X25519(sb, cb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return secmem.NewFromBytes(ss), nil
}

// x25519KeyPair generates X25519 key pairs.
type x25519KeyPair struct{}

// NewX25519KeyPair returns the X25519 key generation strategy.
func NewX25519KeyPair() strategy.AsymmetricKey {
	return x25519KeyPair{}
}

func (x25519KeyPair) Algorithm() algid.ID {
	return algid.X25519
}

func (x25519KeyPair) GenerateKeyPair() (*secmem.Container, *secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), algid.X25519.String(), "genkeypair")

	sk, err := secmem.RandomBytes(curve25519.ScalarSize)
	if err != nil {
		return nil, nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	pk, err := curve25519.X25519(sk, curve25519.Basepoint)
	if err != nil {
		memguard.WipeBytes(sk)
		return nil, nil, errors.WithMessage(strategy.ErrKEMProcess, err.Error())
	}
	return secmem.NewFromBytes(pk), secmem.NewFromBytes(sk), nil
}
