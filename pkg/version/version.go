package version

import (
	"fmt"
	"strconv"
	"time"
)

// Injected at build time with -ldflags.
var (
	version   = "unknown"
	buildTime = ""
)

func Version() string {
	return version
}

// BuildTime returns the time this binary was built. buildTime is seconds
// since epoch, as produced by date +%s.
func BuildTime() (time.Time, error) {
	seconds, err := strconv.ParseInt(buildTime, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("build time not set")
	}
	return time.Unix(seconds, 0), nil
}
