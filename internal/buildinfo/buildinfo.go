// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/go-ports/dirctx/internal/buildinfo.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Summary is the one-line form printed by --version.
func Summary() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
