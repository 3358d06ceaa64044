package cli

import (
	"encoding/base64"

	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/registry"
	"github.com/qu4nt/entlib-go/secmem"
	"github.com/qu4nt/entlib-go/strategy"
)

// CipherCmd is the parent for symmetric encryption commands
type CipherCmd struct {
	Encrypt EncryptCmd `cmd:"" help:"encrypt data"`
	Decrypt DecryptCmd `cmd:"" help:"decrypt data"`
}

// EncryptCmd encrypts a payload with a symmetric key
type EncryptCmd struct {
	Key string `required:"" type:"path" help:"base64 key file"`
	Alg string `help:"algorithm identifier; defaults to the profile AEAD"`
	In  string `type:"path" help:"input file; stdin when omitted"`
	Out string `type:"path" help:"output file; stdout when omitted"`
	Aad string `help:"additional authenticated data (AEAD only)"`
}

// Run the command
func (a *EncryptCmd) Run(ctx *Cli) error {
	id, err := ctx.algorithm(a.Alg, ctx.Profile().DefaultAEAD, algid.CategoryCipher, algid.CategoryAEAD)
	if err != nil {
		return err
	}
	cipher, err := cipherFor(id, a.Aad)
	if err != nil {
		return err
	}

	key, err := readKeyFile(a.Key)
	if err != nil {
		return err
	}
	defer key.Close()

	data, err := ctx.readInput(a.In)
	if err != nil {
		return err
	}
	pt := secmem.NewFromBytes(data)
	defer pt.Close()

	iv, err := secmem.RandomBytes(id.Params().IVSize)
	if err != nil {
		return err
	}

	ct, err := cipher.Encrypt(key, pt, iv)
	if err != nil {
		return err
	}
	defer ct.Close()

	cb, err := ct.Export()
	if err != nil {
		return err
	}
	blob := append(iv, cb...)
	return ctx.writeOutput(a.Out, base64.StdEncoding.EncodeToString(blob))
}

// DecryptCmd decrypts a payload with a symmetric key
type DecryptCmd struct {
	Key string `required:"" type:"path" help:"base64 key file"`
	Alg string `help:"algorithm identifier; defaults to the profile AEAD"`
	In  string `type:"path" help:"input file; stdin when omitted"`
	Out string `type:"path" help:"output file; stdout when omitted"`
	Aad string `help:"additional authenticated data (AEAD only)"`
}

// Run the command
func (a *DecryptCmd) Run(ctx *Cli) error {
	id, err := ctx.algorithm(a.Alg, ctx.Profile().DefaultAEAD, algid.CategoryCipher, algid.CategoryAEAD)
	if err != nil {
		return err
	}
	cipher, err := cipherFor(id, a.Aad)
	if err != nil {
		return err
	}

	key, err := readKeyFile(a.Key)
	if err != nil {
		return err
	}
	defer key.Close()

	data, err := ctx.readInput(a.In)
	if err != nil {
		return err
	}
	blob, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return errors.WithMessage(err, "invalid base64 input")
	}
	ivSize := id.Params().IVSize
	if len(blob) < ivSize {
		return errors.Errorf("input shorter than the %d byte IV", ivSize)
	}

	ct := secmem.NewFromBytes(blob[ivSize:])
	defer ct.Close()

	pt, err := cipher.Decrypt(key, ct, blob[:ivSize])
	if err != nil {
		return err
	}
	defer pt.Close()

	pb, err := pt.Export()
	if err != nil {
		return err
	}
	return ctx.writeOutput(a.Out, string(pb))
}

// cipherFor resolves the transform and applies AAD when requested.
func cipherFor(id algid.ID, aad string) (strategy.Cipher, error) {
	if aad != "" {
		aead, err := registry.AEAD(id)
		if err != nil {
			return nil, errors.WithMessagef(err, "--aad requires an AEAD algorithm")
		}
		aead.UpdateAAD([]byte(aad))
		return aead, nil
	}
	return registry.Cipher(id)
}
