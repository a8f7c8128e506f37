// Package buildinfo reports which condadeps build is running.
//
// The values are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/condadeps/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/condadeps/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/condadeps/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The version shows up in --version output and in the User-Agent of every
// GitHub API request. CI jobs usually pass the same value as PKG_VERSION so
// the detector version in a snapshot matches the binary that sent it.
package buildinfo

import "fmt"

// Product is the User-Agent product token.
const Product = "condadeps"

// Link-time values; unstamped builds report the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} version " + Version + "\n" + "commit: " + Commit + "\nbuilt: " + Date + "\n"
}

// UserAgent identifies this build to HTTP servers, e.g. "condadeps/v1.0.0".
// Unstamped builds append the commit when one is known.
func UserAgent() string {
	if Version == "dev" && Commit != "none" {
		return fmt.Sprintf("%s/dev+%s", Product, shortCommit(Commit))
	}
	return Product + "/" + Version
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
