package kdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/secmem"
)

func TestDerive(t *testing.T) {
	secret := secmem.NewFromBytes([]byte("shared secret"))
	defer secret.Close()

	k1, err := Derive(secret, []byte("salt"), []byte("info"), 32)
	require.NoError(t, err)
	defer k1.Close()
	assert.Equal(t, 32, k1.Len())

	// deterministic for identical inputs
	k2, err := Derive(secret, []byte("salt"), []byte("info"), 32)
	require.NoError(t, err)
	defer k2.Close()

	b1, err := k1.Export()
	require.NoError(t, err)
	b2, err := k2.Export()
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	// different info yields independent keys
	k3, err := Derive(secret, []byte("salt"), []byte("other"), 32)
	require.NoError(t, err)
	defer k3.Close()

	b3, err := k3.Export()
	require.NoError(t, err)
	assert.NotEqual(t, b1, b3)

	_, err = Derive(secret, nil, nil, 0)
	assert.Error(t, err)
	_, err = Derive(secret, nil, nil, -5)
	assert.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	secret := secmem.NewFromBytes([]byte("kem output"))
	defer secret.Close()

	aes, err := DeriveKey(secret, algid.AES256GCM, nil)
	require.NoError(t, err)
	defer aes.Close()
	assert.Equal(t, 32, aes.Len())

	chacha, err := DeriveKey(secret, algid.ChaCha20Poly1305, nil)
	require.NoError(t, err)
	defer chacha.Close()

	// keys are bound to the algorithm identifier
	ab, err := aes.Export()
	require.NoError(t, err)
	cb, err := chacha.Export()
	require.NoError(t, err)
	assert.NotEqual(t, ab, cb)

	_, err = DeriveKey(secret, algid.ID("NOPE"), nil)
	assert.Error(t, err)
}
