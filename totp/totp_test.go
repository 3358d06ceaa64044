package totp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qu4nt/entlib-go/secmem"
)

func TestNew(t *testing.T) {
	tp, err := New("acme", "alice@example.com")
	require.NoError(t, err)
	defer tp.Secret.Close()

	assert.Equal(t, "SHA1", tp.Algorithm)
	assert.Equal(t, 6, tp.Digits)
	assert.Equal(t, 30, tp.Period)
	assert.Equal(t, 20, tp.Secret.Len())

	uri, err := tp.URI()
	require.NoError(t, err)
	// PathEscape leaves '@' unescaped in a path segment
	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/acme:alice@example.com?secret="))
	assert.Contains(t, uri, "&issuer=acme")
	assert.Contains(t, uri, "&algorithm=SHA1")
	assert.Contains(t, uri, "&digits=6")
	assert.Contains(t, uri, "&period=30")
}

// RFC 6238 appendix B test vectors for the 20 byte ASCII secret, reduced
// to 6 digit output.
func TestGenerateAtVectors(t *testing.T) {
	newTOTP := func(alg string) *TOTP {
		return &TOTP{
			Secret:    secmem.NewFromBytes([]byte("12345678901234567890")),
			Algorithm: alg,
			Digits:    6,
			Period:    30,
		}
	}

	tp := newTOTP("SHA1")
	defer tp.Secret.Close()

	code, err := tp.GenerateAt(time.Unix(59, 0))
	require.NoError(t, err)
	assert.Equal(t, "287082", code)

	code, err = tp.GenerateAt(time.Unix(1111111109, 0))
	require.NoError(t, err)
	assert.Equal(t, "081804", code)

	code, err = tp.GenerateAt(time.Unix(1234567890, 0))
	require.NoError(t, err)
	assert.Equal(t, "005924", code)
}

func TestGenerateValidation(t *testing.T) {
	tp := &TOTP{
		Secret:    secmem.NewFromBytes([]byte("12345678901234567890")),
		Algorithm: "SHA1",
		Digits:    7,
		Period:    30,
	}
	defer tp.Secret.Close()

	_, err := tp.Generate()
	assert.Error(t, err)

	tp.Digits = 6
	tp.Period = 0
	_, err = tp.Generate()
	assert.Error(t, err)

	tp.Period = 30
	tp.Algorithm = "MD5"
	_, err = tp.Generate()
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	tp, err := New("acme", "bob")
	require.NoError(t, err)
	defer tp.Secret.Close()

	code, err := tp.Generate()
	require.NoError(t, err)

	valid, err := tp.Verify(code)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = tp.Verify("000000")
	require.NoError(t, err)
	// one in a million chance of a collision
	assert.True(t, !valid || code == "000000")
}
