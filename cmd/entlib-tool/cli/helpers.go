package cli

import (
	"encoding/base64"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/secmem"
)

// algorithm resolves an optional algorithm argument against the profile,
// falling back to def when the argument is empty.
func (c *Cli) algorithm(arg string, def algid.ID, cats ...algid.Category) (algid.ID, error) {
	id := def
	if arg != "" {
		var err error
		id, err = algid.Parse(arg)
		if err != nil {
			return "", err
		}
	}
	ok := false
	for _, cat := range cats {
		if id.Category() == cat {
			ok = true
			break
		}
	}
	if !ok {
		return "", errors.Errorf("algorithm %q does not support this operation", id)
	}
	if !c.Profile().Permitted(id) {
		return "", errors.Errorf("algorithm %q is not permitted by the profile", id)
	}
	return id, nil
}

// readKeyFile loads base64 encoded key material into a fresh container.
func readKeyFile(path string) (*secmem.Container, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid key file: %q", path)
	}
	return secmem.NewFromBytes(b), nil
}

// readInput reads the whole payload from a file, or from the CLI reader
// when path is empty.
func (c *Cli) readInput(path string) ([]byte, error) {
	if path == "" {
		b, err := io.ReadAll(c.Reader())
		return b, errors.WithStack(err)
	}
	b, err := os.ReadFile(path)
	return b, errors.WithStack(err)
}

// writeOutput writes data to a file, or to the CLI writer with a trailing
// newline when path is empty.
func (c *Cli) writeOutput(path, data string) error {
	if path == "" {
		_, err := io.WriteString(c.Writer(), data+"\n")
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, []byte(data), 0600))
}
