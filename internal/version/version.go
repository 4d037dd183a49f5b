// Package version holds build identification, set via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version, e.g. "0.3.1".
	Version = "dev"
	// Commit is the short VCS revision.
	Commit = "none"
)

// String returns "Version (Commit)".
func String() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
