// Package buildinfo centralises build metadata for the lazyfind binary.
// The linker injects values into cmd/lazyfind/main.go; main() calls Set()
// to forward them here.
package buildinfo

import "runtime/debug"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Set stores the build metadata received from linker-injected variables.
func Set(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// String renders the metadata for --version output, omitting fields the
// build did not provide.
func String() string {
	s := version
	if commit != "none" {
		s += " (" + commit + ")"
	}
	if date != "unknown" {
		s += " built " + date
	}
	return s
}

// Enrich fills a missing commit from runtime/debug.ReadBuildInfo(), so
// plain `go install` builds still report the VCS revision.
func Enrich() {
	if commit != "none" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			commit = setting.Value
		}
	}
}
