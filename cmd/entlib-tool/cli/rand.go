package cli

import (
	"github.com/qu4nt/entlib-go/secmem"
)

// RandCmd prints random bytes in base64
type RandCmd struct {
	Size int    `kong:"arg" optional:"" default:"32" help:"number of bytes"`
	Out  string `type:"path" help:"output file; stdout when omitted"`
}

// Run the command
func (a *RandCmd) Run(ctx *Cli) error {
	b64, err := secmem.RandomBase64(a.Size)
	if err != nil {
		return err
	}
	return ctx.writeOutput(a.Out, b64)
}
