package cli

import (
	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/registry"
)

// KemCmd is the parent for key encapsulation commands
type KemCmd struct {
	Encap EncapCmd `cmd:"" help:"encapsulate a shared secret"`
	Decap DecapCmd `cmd:"" help:"decapsulate a shared secret"`
}

// EncapCmd encapsulates a fresh shared secret to a public key
type EncapCmd struct {
	Pub       string `required:"" type:"path" help:"base64 encapsulation key file"`
	Alg       string `help:"algorithm identifier; defaults to the profile KEM"`
	CtOut     string `type:"path" help:"ciphertext output file; stdout when omitted"`
	SecretOut string `type:"path" help:"shared secret output file; stdout when omitted"`
}

// Run the command
func (a *EncapCmd) Run(ctx *Cli) error {
	id, err := ctx.algorithm(a.Alg, ctx.Profile().DefaultKEM, algid.CategoryKEM)
	if err != nil {
		return err
	}
	kem, err := registry.KEM(id)
	if err != nil {
		return err
	}

	pub, err := readKeyFile(a.Pub)
	if err != nil {
		return err
	}
	defer pub.Close()

	ss, err := kem.Encapsulate(pub)
	if err != nil {
		return err
	}
	defer ss.Close()

	ct, err := ss.Child(0)
	if err != nil {
		return err
	}
	ctB64, err := ct.ExportBase64()
	if err != nil {
		return err
	}
	ssB64, err := ss.ExportBase64()
	if err != nil {
		return err
	}
	if err := ctx.writeOutput(a.CtOut, ctB64); err != nil {
		return err
	}
	return ctx.writeOutput(a.SecretOut, ssB64)
}

// DecapCmd recovers a shared secret from a ciphertext
type DecapCmd struct {
	Key       string `required:"" type:"path" help:"base64 decapsulation key file"`
	Ct        string `required:"" type:"path" help:"base64 ciphertext file"`
	Alg       string `help:"algorithm identifier; defaults to the profile KEM"`
	SecretOut string `type:"path" help:"shared secret output file; stdout when omitted"`
}

// Run the command
func (a *DecapCmd) Run(ctx *Cli) error {
	id, err := ctx.algorithm(a.Alg, ctx.Profile().DefaultKEM, algid.CategoryKEM)
	if err != nil {
		return err
	}
	kem, err := registry.KEM(id)
	if err != nil {
		return err
	}

	priv, err := readKeyFile(a.Key)
	if err != nil {
		return err
	}
	defer priv.Close()

	ct, err := readKeyFile(a.Ct)
	if err != nil {
		return err
	}
	defer ct.Close()

	ss, err := kem.Decapsulate(priv, ct)
	if err != nil {
		return err
	}
	defer ss.Close()

	ssB64, err := ss.ExportBase64()
	if err != nil {
		return err
	}
	return ctx.writeOutput(a.SecretOut, ssB64)
}
