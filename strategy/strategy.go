package strategy

import (
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/secmem"
)

// Backend and process failures surfaced by strategy operations. Callers
// match with errors.Is; the kinds are deliberately a small closed set so a
// caller can decide retry versus abort.
var (
	// ErrCipherProcess covers wrong key or IV sizes, authentication tag
	// mismatches and cipher backend failures.
	ErrCipherProcess = errors.New("strategy: cipher process failure")

	// ErrKEMProcess covers key and ciphertext size mismatches and KEM
	// backend failures.
	ErrKEMProcess = errors.New("strategy: KEM processing failure")

	// ErrSignatureProcess covers malformed keys and signatures and
	// signature backend failures. A well-formed but invalid signature is
	// not an error; Verify reports it as false.
	ErrSignatureProcess = errors.New("strategy: signature processing failure")
)

// Strategy is the base contract: every strategy serves exactly one
// algorithm identifier.
type Strategy interface {
	Algorithm() algid.ID
}

// SymmetricKey generates fresh symmetric keys of the algorithm's size.
type SymmetricKey interface {
	Strategy

	GenerateKey() (*secmem.Container, error)
}

// AsymmetricKey generates key pairs. The two returned containers are
// independent; no binding exists between them.
type AsymmetricKey interface {
	Strategy

	GenerateKeyPair() (pub, priv *secmem.Container, err error)
}

// Cipher transforms plaintext to ciphertext and back under a symmetric
// key. The IV or nonce is supplied by the caller and must match the
// algorithm's defined size. Decrypt never returns partial output on
// failure.
type Cipher interface {
	Strategy

	Encrypt(key, plaintext *secmem.Container, iv []byte) (*secmem.Container, error)
	Decrypt(key, ciphertext *secmem.Container, iv []byte) (*secmem.Container, error)
}

// AEADCipher is a Cipher with associated authenticated data. UpdateAAD
// must be called, if at all, before the Encrypt or Decrypt call it applies
// to; the AAD is consumed by that one call. AAD is authenticated but not
// encrypted.
type AEADCipher interface {
	Cipher

	UpdateAAD(aad []byte)
}

// KEM encapsulates and decapsulates shared secrets. Encapsulate returns
// the shared-secret container with the ciphertext bound at child index 0.
type KEM interface {
	Strategy

	Encapsulate(pub *secmem.Container) (*secmem.Container, error)
	Decapsulate(priv, ciphertext *secmem.Container) (*secmem.Container, error)
}

// Signer signs messages and verifies signatures. Sign returns the
// signature container with the signer's public key bound at child index 0.
// Verify resolves the public key from that bound child when pub is nil.
type Signer interface {
	Strategy

	Sign(priv *secmem.Container, message []byte) (*secmem.Container, error)
	Verify(sig *secmem.Container, message []byte, pub *secmem.Container) (bool, error)
}

// Registrar receives bundle contributions during registry population.
// Each identifier maps to at most one transform strategy and one key
// strategy; the lookup side lets composite bundles resolve the
// sub-strategies they are built from.
type Registrar interface {
	RegisterStrategy(id algid.ID, s Strategy) error
	RegisterKeyStrategy(id algid.ID, s Strategy) error

	LookupStrategy(id algid.ID) (Strategy, bool)
	LookupKeyStrategy(id algid.ID) (Strategy, bool)
}

// Bundle contributes a family of related identifier-to-strategy pairs.
// Bundles are registered exactly once, in a fixed order, at registry
// population time.
type Bundle interface {
	Name() string
	Register(r Registrar) error
}
