// Package taskworker holds build information for the task worker binaries.
package taskworker

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Version of the task worker binary (set by linker).
var Version = "dev"

// Timestamp of the task worker binary (set by linker).
var Timestamp = "0"

var releasePattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// IsRelease returns true if the version is a release version.
func IsRelease(v string) bool {
	return releasePattern.MatchString(v)
}

// FormattedVersion is the version for --version output. Development builds
// include their build time.
func FormattedVersion() string {
	if IsRelease(Version) {
		return Version
	}
	seconds, err := strconv.ParseInt(Timestamp, 10, 64)
	if err != nil || seconds == 0 {
		return Version
	}
	return fmt.Sprintf("%s (built %s)", Version, time.Unix(seconds, 0).UTC().Format(time.RFC3339))
}
