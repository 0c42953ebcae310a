// Package version holds the service identity and build metadata.
package version

// Service is the name the process reports in logs and health output.
const Service = "assist"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
