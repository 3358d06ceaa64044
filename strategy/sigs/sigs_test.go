package sigs

import (
	"testing"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

func signRoundTrip(t *testing.T, id algid.ID, scheme sign.Scheme) {
	t.Helper()

	signer := NewSigner(id, scheme)
	keys := NewKeyPair(id, scheme)

	pub, priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	params := id.Params()
	assert.Equal(t, params.PublicKeySize, pub.Len())
	assert.Equal(t, params.PrivateKeySize, priv.Len())

	msg := []byte("signed payload")
	sig, err := signer.Sign(priv, msg)
	require.NoError(t, err)
	defer sig.Close()

	assert.Equal(t, params.SignatureSize, sig.Len())

	valid, err := signer.Verify(sig, msg, pub)
	require.NoError(t, err)
	assert.True(t, valid)

	// the signer's public key travels with the signature
	valid, err = signer.Verify(sig, msg, nil)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = signer.Verify(sig, []byte("other payload"), pub)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRoundTrips(t *testing.T) {
	signRoundTrip(t, algid.Ed25519, ed25519.Scheme())
	signRoundTrip(t, algid.MLDSA44, mldsa44.Scheme())
	signRoundTrip(t, algid.MLDSA65, mldsa65.Scheme())
}

func TestFlippedBitRejected(t *testing.T) {
	signer := NewSigner(algid.Ed25519, ed25519.Scheme())
	keys := NewKeyPair(algid.Ed25519, ed25519.Scheme())

	pub, priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	msg := []byte("payload")
	sig, err := signer.Sign(priv, msg)
	require.NoError(t, err)
	defer sig.Close()

	sb, err := sig.Export()
	require.NoError(t, err)
	sb[0] ^= 0x01

	flipped := secmem.NewFromBytes(sb)
	defer flipped.Close()

	// well-formed but invalid: no error, just false
	valid, err := signer.Verify(flipped, msg, pub)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestMalformedInputs(t *testing.T) {
	signer := NewSigner(algid.Ed25519, ed25519.Scheme())
	keys := NewKeyPair(algid.Ed25519, ed25519.Scheme())

	pub, priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	shortKey := secmem.NewFromBytes(make([]byte, 7))
	defer shortKey.Close()
	_, err = signer.Sign(shortKey, []byte("m"))
	assert.True(t, errors.Is(err, strategy.ErrSignatureProcess))

	shortSig := secmem.NewFromBytes(make([]byte, 3))
	defer shortSig.Close()
	_, err = signer.Verify(shortSig, []byte("m"), pub)
	assert.True(t, errors.Is(err, strategy.ErrSignatureProcess))

	sig, err := signer.Sign(priv, []byte("m"))
	require.NoError(t, err)
	defer sig.Close()

	badPub := secmem.NewFromBytes(make([]byte, 5))
	defer badPub.Close()
	_, err = signer.Verify(sig, []byte("m"), badPub)
	assert.True(t, errors.Is(err, strategy.ErrSignatureProcess))
}

func TestUnboundSignature(t *testing.T) {
	signer := NewSigner(algid.Ed25519, ed25519.Scheme())

	// a bare signature container with no bound public key
	bare := secmem.NewFromBytes(make([]byte, algid.Ed25519.Params().SignatureSize))
	defer bare.Close()

	_, err := signer.Verify(bare, []byte("m"), nil)
	assert.True(t, errors.Is(err, strategy.ErrSignatureProcess))
}

func TestBundles(t *testing.T) {
	bundles := Bundles()
	require.Len(t, bundles, 3)
	assert.Equal(t, "sigs/ed25519", bundles[0].Name())
	assert.Equal(t, "sigs/mldsa", bundles[1].Name())
	assert.Equal(t, "sigs/slhdsa", bundles[2].Name())
}
