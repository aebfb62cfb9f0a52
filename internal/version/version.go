// Package version holds build metadata for the dirhist binaries.
package version

import "fmt"

// Set at build time with -ldflags "-X dirhist/internal/version.Version=..."
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Title is the short name shown in window titles
func Title() string {
	return "dirhist v" + Version
}

// Info is the multi-line text printed by --version
func Info() string {
	return fmt.Sprintf("%s\nBuild Time: %s\nGit Commit: %s\n", Title(), BuildTime, GitCommit)
}
