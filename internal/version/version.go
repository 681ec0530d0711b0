// Package version carries the build metadata stamped into the rovr binary.
package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/rovr/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata, set the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the one-line version banner printed by `rovr --version`.
func String() string {
	return fmt.Sprintf("rovr %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
