// Package version holds build metadata stamped in by the linker.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String reports the build as "psi <version> (<commit>, <date>)".
func String() string {
	return fmt.Sprintf("psi %s (%s, %s)", Version, CommitHash, BuildDate)
}
