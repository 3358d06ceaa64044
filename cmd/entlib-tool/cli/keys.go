package cli

import (
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/registry"
)

// KeyCmd is the parent for key commands
type KeyCmd struct {
	Generate KeyGenCmd  `cmd:"" help:"generate key material"`
	List     KeyListCmd `cmd:"" help:"list supported algorithms"`
}

// KeyGenCmd generates a symmetric key or a key pair
type KeyGenCmd struct {
	Alg string `kong:"arg" required:"" help:"algorithm identifier"`
	Out string `help:"output file prefix; prints base64 to stdout when omitted"`
}

// Run the command
func (a *KeyGenCmd) Run(ctx *Cli) error {
	id, err := algid.Parse(a.Alg)
	if err != nil {
		return err
	}
	if !ctx.Profile().Permitted(id) {
		return errors.Errorf("algorithm %q is not permitted by the profile", id)
	}

	switch id.Category() {
	case algid.CategoryCipher, algid.CategoryAEAD:
		ks, err := registry.SymmetricKey(id)
		if err != nil {
			return err
		}
		key, err := ks.GenerateKey()
		if err != nil {
			return err
		}
		defer key.Close()

		b64, err := key.ExportBase64()
		if err != nil {
			return err
		}
		out := ""
		if a.Out != "" {
			out = a.Out + ".key"
		}
		return ctx.writeOutput(out, b64)

	case algid.CategoryKEM, algid.CategorySignature:
		ks, err := registry.AsymmetricKey(id)
		if err != nil {
			return err
		}
		pub, priv, err := ks.GenerateKeyPair()
		if err != nil {
			return err
		}
		defer pub.Close()
		defer priv.Close()

		pubB64, err := pub.ExportBase64()
		if err != nil {
			return err
		}
		privB64, err := priv.ExportBase64()
		if err != nil {
			return err
		}
		if a.Out == "" {
			return ctx.WriteJSON(map[string]string{
				"public":  pubB64,
				"private": privB64,
			})
		}
		if err := ctx.writeOutput(a.Out+".pub", pubB64); err != nil {
			return err
		}
		return ctx.writeOutput(a.Out+".key", privB64)

	default:
		return errors.Errorf("no key strategy for algorithm %q", id)
	}
}

// KeyListCmd prints the supported algorithms
type KeyListCmd struct {
	Category string `help:"filter by category (cipher|aead|kem|signature)"`
}

type algInfo struct {
	ID       algid.ID       `json:"id"`
	Category algid.Category `json:"category"`
	Family   algid.Family   `json:"family"`
	PQC      bool           `json:"pqc"`
}

// Run the command
func (a *KeyListCmd) Run(ctx *Cli) error {
	var out []algInfo
	for _, id := range registry.Default().Algorithms() {
		if a.Category != "" && id.Category() != algid.Category(a.Category) {
			continue
		}
		out = append(out, algInfo{
			ID:       id,
			Category: id.Category(),
			Family:   id.Family(),
			PQC:      id.PQC(),
		})
	}
	return ctx.WriteJSON(out)
}
