package symcipher

import (
	"crypto/cipher"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/metricskey"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// chachaStream is the unauthenticated ChaCha20 stream cipher.
type chachaStream struct{}

// NewChaCha20 returns the ChaCha20 stream cipher strategy.
func NewChaCha20() strategy.Cipher {
	return chachaStream{}
}

func (chachaStream) Algorithm() algid.ID {
	return algid.ChaCha20
}

func (s chachaStream) Encrypt(key, plaintext *secmem.Container, nonce []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), algid.ChaCha20.String(), "encrypt")
	return s.xor(key, plaintext, nonce)
}

func (s chachaStream) Decrypt(key, ciphertext *secmem.Container, nonce []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), algid.ChaCha20.String(), "decrypt")
	return s.xor(key, ciphertext, nonce)
}

func (chachaStream) xor(key, in *secmem.Container, nonce []byte) (*secmem.Container, error) {
	params := algid.ChaCha20.Params()
	if err := checkIV(nonce, params.IVSize); err != nil {
		return nil, err
	}
	kb, err := exportKey(key, params.KeySize)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(kb)

	c, err := chacha20.NewUnauthenticatedCipher(kb, nonce)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}

	data, err := in.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	defer memguard.WipeBytes(data)

	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return secmem.NewFromBytes(out), nil
}

// chachaPoly is the ChaCha20-Poly1305 AEAD.
type chachaPoly struct {
	mu  sync.Mutex
	aad []byte
}

// NewChaCha20Poly1305 returns the ChaCha20-Poly1305 AEAD strategy.
func NewChaCha20Poly1305() strategy.AEADCipher {
	return &chachaPoly{}
}

func (s *chachaPoly) Algorithm() algid.ID {
	return algid.ChaCha20Poly1305
}

func (s *chachaPoly) UpdateAAD(aad []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aad = append([]byte(nil), aad...)
}

func (s *chachaPoly) takeAAD() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	aad := s.aad
	s.aad = nil
	return aad
}

func (s *chachaPoly) newAEAD(key *secmem.Container) (cipher.AEAD, error) {
	kb, err := exportKey(key, algid.ChaCha20Poly1305.Params().KeySize)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(kb)

	aead, err := chacha20poly1305.New(kb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	return aead, nil
}

func (s *chachaPoly) Encrypt(key, plaintext *secmem.Container, nonce []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.Algorithm().String(), "encrypt")
	return aeadSeal(s.newAEAD, key, plaintext, nonce, chacha20poly1305.NonceSize, s.takeAAD())
}

func (s *chachaPoly) Decrypt(key, ciphertext *secmem.Container, nonce []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.Algorithm().String(), "decrypt")
	return aeadOpen(s.newAEAD, key, ciphertext, nonce, chacha20poly1305.NonceSize, s.takeAAD())
}
