package cli

import (
	"github.com/qu4nt/entlib-go/totp"
)

// TotpCmd is the parent for TOTP commands
type TotpCmd struct {
	Enroll TotpEnrollCmd `cmd:"" help:"enroll a new TOTP secret"`
}

// TotpEnrollCmd generates a secret and prints the otpauth URI
type TotpEnrollCmd struct {
	Issuer  string `required:"" help:"issuer name"`
	Account string `required:"" help:"account name"`
}

// Run the command
func (a *TotpEnrollCmd) Run(ctx *Cli) error {
	t, err := totp.New(a.Issuer, a.Account)
	if err != nil {
		return err
	}
	defer t.Secret.Close()

	uri, err := t.URI()
	if err != nil {
		return err
	}
	code, err := t.Generate()
	if err != nil {
		return err
	}
	return ctx.WriteJSON(map[string]string{
		"uri":  uri,
		"code": code,
	})
}
