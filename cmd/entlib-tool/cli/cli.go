package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/effective-security/xlog"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/qu4nt/entlib-go/config"
)

var logger = xlog.NewPackageLogger("github.com/qu4nt/entlib-go", "cli")

// Cli provides CLI context to run commands
type Cli struct {
	Cfg      string `help:"Location of algorithm profile file (optional)" type:"path"`
	Debug    bool   `short:"D" help:"Enable debug mode"`
	LogLevel string `short:"l" help:"Set the logging level (debug|info|warn|error)" default:"error"`

	stdin     io.Reader
	output    io.Writer
	errOutput io.Writer

	ctx     context.Context
	profile *config.Profile
}

// Context for requests
func (c *Cli) Context() context.Context {
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c.ctx
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for error output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// AfterApply hook loads config
func (c *Cli) AfterApply(app *kong.Kong, vars kong.Vars) error {
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		val := strings.TrimLeft(c.LogLevel, "=")
		l, err := xlog.ParseLevel(strings.ToUpper(val))
		if err != nil {
			return errors.WithStack(err)
		}
		xlog.SetGlobalLogLevel(l)
	}

	return nil
}

// WriteJSON prints the indented JSON encoding of value to the control
// output, followed by a newline.
func (c *Cli) WriteJSON(value interface{}) error {
	body, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to encode")
	}
	out := c.Writer()
	_, _ = out.Write(body)
	_, _ = out.Write([]byte("\n"))
	return nil
}

// Profile returns the algorithm profile, loading it on first use
func (c *Cli) Profile() *config.Profile {
	if c.profile != nil {
		return c.profile
	}
	if c.Cfg == "" {
		c.profile = config.DefaultProfile()
		return c.profile
	}
	p, err := config.Load(c.Cfg)
	if err != nil {
		logger.Panicf("unable to load profile: [%v]", err)
	}
	c.profile = p
	return c.profile
}
