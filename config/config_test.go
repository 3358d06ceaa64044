package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qu4nt/entlib-go/algid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())

	assert.Equal(t, algid.AES256GCM, p.DefaultAEAD)
	assert.Equal(t, algid.X25519MLKEM768, p.DefaultKEM)
	assert.True(t, p.Permitted(algid.AES128))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "profile.yaml", `
default_cipher: AES-256
default_aead: CHACHA20-POLY1305
default_kem: ML-KEM-768
default_signer: ML-DSA-87
allowed:
  - AES-256
  - CHACHA20-POLY1305
  - ML-KEM-768
  - ML-DSA-87
`)
	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, algid.ChaCha20Poly1305, p.DefaultAEAD)
	assert.Equal(t, algid.MLDSA87, p.DefaultSigner)
	assert.True(t, p.Permitted(algid.MLKEM768))
	assert.False(t, p.Permitted(algid.AES128))
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "profile.json", `{
  "default_cipher": "AES-128",
  "default_aead": "AES-128-GCM",
  "default_kem": "X25519MLKEM768",
  "default_signer": "ED25519"
}`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, algid.AES128, p.DefaultCipher)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "default_cipher: [not, a, string]")
	_, err = Load(path)
	assert.Error(t, err)

	path = writeFile(t, "unknown.yaml", "default_cipher: AES-512")
	_, err = Load(path)
	assert.Error(t, err)

	path = writeFile(t, "wrongcat.yaml", "default_cipher: ML-KEM-768")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestRequirePQC(t *testing.T) {
	p := DefaultProfile()
	p.RequirePQC = true

	assert.False(t, p.Permitted(algid.X25519))
	assert.False(t, p.Permitted(algid.Ed25519))
	assert.True(t, p.Permitted(algid.X25519MLKEM768))
	assert.True(t, p.Permitted(algid.MLDSA65))

	// symmetric algorithms are unaffected
	assert.True(t, p.Permitted(algid.AES256GCM))
}

func TestValidateDefaultsAgainstPolicy(t *testing.T) {
	p := DefaultProfile()
	p.Allowed = []algid.ID{algid.AES256}
	// default AEAD no longer permitted
	assert.Error(t, p.Validate())
}
