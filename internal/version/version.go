// Package version exposes build metadata stamped at link time.
package version

// Set via -ldflags "-X github.com/Maldaris/europa-awareness-map/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
