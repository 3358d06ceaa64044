package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/joho/godotenv"

	"github.com/qu4nt/entlib-go/cmd/entlib-tool/cli"
	"github.com/qu4nt/entlib-go/internal/version"
)

type app struct {
	cli.Cli

	Key    cli.KeyCmd    `cmd:"" help:"Key generation commands"`
	Cipher cli.CipherCmd `cmd:"" help:"Symmetric encryption commands"`
	Kem    cli.KemCmd    `cmd:"" help:"Key encapsulation commands"`
	Sign   cli.SignCmd   `cmd:"" help:"Signature commands"`
	Rand   cli.RandCmd   `cmd:"" help:"Generate random bytes"`
	Totp   cli.TotpCmd   `cmd:"" help:"TOTP enrollment commands"`
}

func main() {
	_ = godotenv.Load()
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("entlib-tool"),
		kong.Description("CLI tool for locked-memory crypto operations"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current().String(),
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		if cl.Debug {
			_, _ = fmt.Fprintf(ctx.Stdout, "#\n# %s\n#\n", strings.Join(args, " "))
		}
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
