package symcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/metricskey"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// aesBlock serves the CBC/PKCS#7 and CTR identifiers.
type aesBlock struct {
	id  algid.ID
	ctr bool
}

// NewAES returns the block cipher strategy for an AES CBC or CTR id.
func NewAES(id algid.ID) strategy.Cipher {
	return &aesBlock{id: id, ctr: isCTR(id)}
}

func isCTR(id algid.ID) bool {
	switch id {
	case algid.AES128CTR, algid.AES192CTR, algid.AES256CTR:
		return true
	}
	return false
}

func (s *aesBlock) Algorithm() algid.ID {
	return s.id
}

func (s *aesBlock) Encrypt(key, plaintext *secmem.Container, iv []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "encrypt")

	params := s.id.Params()
	if err := checkIV(iv, params.IVSize); err != nil {
		return nil, err
	}
	kb, err := exportKey(key, params.KeySize)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(kb)

	block, err := aes.NewCipher(kb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}

	pt, err := plaintext.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	defer memguard.WipeBytes(pt)

	var out []byte
	if s.ctr {
		out = make([]byte, len(pt))
		cipher.NewCTR(block, iv).XORKeyStream(out, pt)
	} else {
		padded := pkcs7Pad(pt, block.BlockSize())
		out = make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
		memguard.WipeBytes(padded)
	}
	return secmem.NewFromBytes(out), nil
}

func (s *aesBlock) Decrypt(key, ciphertext *secmem.Container, iv []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "decrypt")

	params := s.id.Params()
	if err := checkIV(iv, params.IVSize); err != nil {
		return nil, err
	}
	kb, err := exportKey(key, params.KeySize)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(kb)

	block, err := aes.NewCipher(kb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}

	ct, err := ciphertext.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	defer memguard.WipeBytes(ct)

	if s.ctr {
		out := make([]byte, len(ct))
		cipher.NewCTR(block, iv).XORKeyStream(out, ct)
		return secmem.NewFromBytes(out), nil
	}

	if len(ct) == 0 || len(ct)%block.BlockSize() != 0 {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, "ciphertext not block aligned")
	}
	padded := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ct)
	out, err := pkcs7Unpad(padded, block.BlockSize())
	if err != nil {
		memguard.WipeBytes(padded)
		return nil, err
	}
	res := secmem.NewFromBytes(out)
	// out aliases padded; wipe the padding tail left behind the copy.
	memguard.WipeBytes(padded)
	return res, nil
}

// aesGCM serves the AEAD identifiers. The one-shot AAD set by UpdateAAD is
// consumed by the next Encrypt or Decrypt call.
type aesGCM struct {
	id algid.ID

	mu  sync.Mutex
	aad []byte
}

// NewAESGCM returns the AEAD strategy for an AES GCM id.
func NewAESGCM(id algid.ID) strategy.AEADCipher {
	return &aesGCM{id: id}
}

func (s *aesGCM) Algorithm() algid.ID {
	return s.id
}

func (s *aesGCM) UpdateAAD(aad []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aad = append([]byte(nil), aad...)
}

func (s *aesGCM) takeAAD() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	aad := s.aad
	s.aad = nil
	return aad
}

func (s *aesGCM) newAEAD(key *secmem.Container) (cipher.AEAD, error) {
	kb, err := exportKey(key, s.id.Params().KeySize)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(kb)

	block, err := aes.NewCipher(kb)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	return aead, nil
}

func (s *aesGCM) Encrypt(key, plaintext *secmem.Container, iv []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "encrypt")
	return aeadSeal(s.newAEAD, key, plaintext, iv, s.id.Params().IVSize, s.takeAAD())
}

func (s *aesGCM) Decrypt(key, ciphertext *secmem.Container, iv []byte) (*secmem.Container, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), s.id.String(), "decrypt")
	return aeadOpen(s.newAEAD, key, ciphertext, iv, s.id.Params().IVSize, s.takeAAD())
}

type aeadFactory func(key *secmem.Container) (cipher.AEAD, error)

func aeadSeal(factory aeadFactory, key, plaintext *secmem.Container, iv []byte, ivSize int, aad []byte) (*secmem.Container, error) {
	if err := checkIV(iv, ivSize); err != nil {
		return nil, err
	}
	aead, err := factory(key)
	if err != nil {
		return nil, err
	}
	pt, err := plaintext.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	defer memguard.WipeBytes(pt)

	out := aead.Seal(nil, iv, pt, aad)
	return secmem.NewFromBytes(out), nil
}

func aeadOpen(factory aeadFactory, key, ciphertext *secmem.Container, iv []byte, ivSize int, aad []byte) (*secmem.Container, error) {
	if err := checkIV(iv, ivSize); err != nil {
		return nil, err
	}
	aead, err := factory(key)
	if err != nil {
		return nil, err
	}
	ct, err := ciphertext.Export()
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, err.Error())
	}
	defer memguard.WipeBytes(ct)

	out, err := aead.Open(nil, iv, ct, aad)
	if err != nil {
		return nil, errors.WithMessage(strategy.ErrCipherProcess, "authentication failed")
	}
	if out == nil {
		// empty plaintext; Open returns a nil slice for it
		out = []byte{}
	}
	return secmem.NewFromBytes(out), nil
}
