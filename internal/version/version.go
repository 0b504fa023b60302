// Package version carries the build metadata stamped into the binary.
package version

// Overridden at release time via -ldflags "-X pixelpick/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
