package version

import (
	"fmt"
	"runtime"
)

var (
	VersionPrefix = "dev"     // Set via -ldflags
	VersionDate   = "edge"    // Set via -ldflags - Value should be: YYYYMMDD
	CommitHash    = "unknown" // Set via -ldflags
)

// Print returns the version information
func Print() string {
	return fmt.Sprintf(`%s-%s-%s`, VersionPrefix, VersionDate, CommitHash)
}

// Long returns the version followed by the Go toolchain and platform.
func Long() string {
	return fmt.Sprintf("%s (%s %s/%s)", Print(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
