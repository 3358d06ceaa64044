package algid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	id, err := Parse("AES-256-GCM")
	require.NoError(t, err)
	assert.Equal(t, AES256GCM, id)

	_, err = Parse("AES-512")
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, CategoryCipher, AES256.Category())
	assert.Equal(t, CategoryAEAD, AES256GCM.Category())
	assert.Equal(t, CategoryAEAD, ChaCha20Poly1305.Category())
	assert.Equal(t, CategoryKEM, MLKEM768.Category())
	assert.Equal(t, CategoryKEM, X25519MLKEM768.Category())
	assert.Equal(t, CategorySignature, MLDSA65.Category())

	assert.False(t, AES256.PQC())
	assert.False(t, X25519.PQC())
	assert.True(t, MLKEM768.PQC())
	assert.True(t, X25519MLKEM768.PQC())
	assert.True(t, SLHDSA128Small.PQC())
}

func TestParams(t *testing.T) {
	p := AES256.Params()
	assert.Equal(t, 32, p.KeySize)
	assert.Equal(t, 16, p.IVSize)

	p = AES128GCM.Params()
	assert.Equal(t, 16, p.KeySize)
	assert.Equal(t, 12, p.IVSize)

	p = MLKEM768.Params()
	assert.Equal(t, 1184, p.PublicKeySize)
	assert.Equal(t, 2400, p.PrivateKeySize)
	assert.Equal(t, 1088, p.CiphertextSize)
	assert.Equal(t, 32, p.SharedSecretSize)
}

// Every hybrid parameter size is the sum of its component sizes.
func TestHybridParamsAreComponentSums(t *testing.T) {
	h := X25519MLKEM768.Params()
	c := X25519.Params()
	pq := MLKEM768.Params()

	assert.Equal(t, c.PublicKeySize+pq.PublicKeySize, h.PublicKeySize)
	assert.Equal(t, c.PrivateKeySize+pq.PrivateKeySize, h.PrivateKeySize)
	assert.Equal(t, c.CiphertextSize+pq.CiphertextSize, h.CiphertextSize)
	assert.Equal(t, c.SharedSecretSize+pq.SharedSecretSize, h.SharedSecretSize)
}

func TestList(t *testing.T) {
	all := All()
	assert.Len(t, all, len(List(CategoryCipher))+len(List(CategoryAEAD))+
		len(List(CategoryKEM))+len(List(CategorySignature)))

	for _, id := range all {
		assert.True(t, id.Known(), "id %s", id)
		assert.NotEmpty(t, id.Family(), "id %s", id)
	}

	kems := List(CategoryKEM)
	assert.Contains(t, kems, X25519MLKEM768)
	assert.NotContains(t, kems, Ed25519)
}
