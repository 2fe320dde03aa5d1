// Package version holds the build metadata stamped into vetdir binaries
// via -ldflags by the release pipeline.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata in one line for startup logs.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
