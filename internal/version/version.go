// Package version exposes the build version, populated at link time.
package version

import "fmt"

// Values are overridden by -ldflags at build time.
var (
	version = "0.1.0"
	commit  = "dev"
)

// Info describes the running build.
type Info struct {
	Version string
	Commit  string
}

// Current returns the build info.
func Current() Info {
	return Info{Version: version, Commit: commit}
}

// String returns the printable version.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}
