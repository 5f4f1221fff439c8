package npm

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// maxStaleDays is the largest threshold expressible as a time.Duration.
// Anything larger covers more than the whole representable time span.
const maxStaleDays = math.MaxInt64 / int64(day)

// IsStale reports whether modified is more than staleDays before now. A
// missing timestamp is never stale.
func IsStale(modified *time.Time, staleDays int, now time.Time) bool {
	if modified == nil {
		return false
	}
	if int64(staleDays) > maxStaleDays {
		return false
	}
	return now.Sub(*modified) > time.Duration(staleDays)*day
}

// IsOutdated reports whether the manifest was changed after the install
// directory was last modified, i.e. dependencies were declared after the
// last install.
func IsOutdated(manifestModified, installModified time.Time) bool {
	return manifestModified.After(installModified)
}
