package cli

import (
	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/registry"
)

// SignCmd is the parent for signature commands
type SignCmd struct {
	Data   SignDataCmd `cmd:"" help:"sign data"`
	Verify VerifyCmd   `cmd:"" help:"verify a signature"`
}

// SignDataCmd signs a payload
type SignDataCmd struct {
	Key string `required:"" type:"path" help:"base64 signing key file"`
	Alg string `help:"algorithm identifier; defaults to the profile signer"`
	In  string `type:"path" help:"input file; stdin when omitted"`
	Out string `type:"path" help:"signature output file; stdout when omitted"`
}

// Run the command
func (a *SignDataCmd) Run(ctx *Cli) error {
	id, err := ctx.algorithm(a.Alg, ctx.Profile().DefaultSigner, algid.CategorySignature)
	if err != nil {
		return err
	}
	signer, err := registry.Signer(id)
	if err != nil {
		return err
	}

	priv, err := readKeyFile(a.Key)
	if err != nil {
		return err
	}
	defer priv.Close()

	msg, err := ctx.readInput(a.In)
	if err != nil {
		return err
	}

	sig, err := signer.Sign(priv, msg)
	if err != nil {
		return err
	}
	defer sig.Close()

	sigB64, err := sig.ExportBase64()
	if err != nil {
		return err
	}
	return ctx.writeOutput(a.Out, sigB64)
}

// VerifyCmd verifies a signature over a payload
type VerifyCmd struct {
	Pub string `required:"" type:"path" help:"base64 public key file"`
	Sig string `required:"" type:"path" help:"base64 signature file"`
	Alg string `help:"algorithm identifier; defaults to the profile signer"`
	In  string `type:"path" help:"input file; stdin when omitted"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	id, err := ctx.algorithm(a.Alg, ctx.Profile().DefaultSigner, algid.CategorySignature)
	if err != nil {
		return err
	}
	signer, err := registry.Signer(id)
	if err != nil {
		return err
	}

	pub, err := readKeyFile(a.Pub)
	if err != nil {
		return err
	}
	defer pub.Close()

	sig, err := readKeyFile(a.Sig)
	if err != nil {
		return err
	}
	defer sig.Close()

	msg, err := ctx.readInput(a.In)
	if err != nil {
		return err
	}

	valid, err := signer.Verify(sig, msg, pub)
	if err != nil {
		return err
	}
	return ctx.WriteJSON(map[string]bool{"valid": valid})
}
