// Package version reports the udu release. Version and Commit are set at
// build time with -ldflags "-X github.com/udu-dev/udu/pkg/version.Version=...".
package version

import (
	"strings"
)

var (
	// Version is the release version, optionally "v"-prefixed with build
	// metadata after '+'.
	Version = "1.0.0"
	// Commit is the source revision the binary was built from.
	Commit = ""
)

// Short returns the core semantic version of v: the leading 'v' and any
// build metadata suffix starting with '+' are removed.
func Short(v string) string {
	parsed := strings.TrimSpace(v)
	parsed = strings.TrimPrefix(parsed, "v")
	return strings.SplitN(parsed, "+", 2)[0]
}

// String describes the running binary, e.g. "Version: 1.0.0 (abc123)".
func String() string {
	s := "Version: " + Short(Version)
	if Commit != "" {
		s += " (" + Commit + ")"
	}
	return s
}
