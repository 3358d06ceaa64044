package secmem

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

// RandomBytes returns length bytes from the cryptographically secure
// random source. length must be >= 0.
func RandomBytes(length int) ([]byte, error) {
	if length < 0 {
		return nil, errors.Errorf("secmem: negative length: %d", length)
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// RandomBase64 returns a standard base64 encoding of length random bytes,
// convenient for serialization. length must be >= 0.
func RandomBase64(length int) (string, error) {
	b, err := RandomBytes(length)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// ExportBase64 returns the container payload as a standard base64 string.
// Like Export, the decoded copy and the string are the caller's to handle.
func (c *Container) ExportBase64() (string, error) {
	b, err := c.Export()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
