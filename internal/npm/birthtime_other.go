//go:build !darwin && !windows && !linux

package npm

import (
	"os"
	"time"
)

// birthTime reports no creation time where the platform does not expose one.
func birthTime(string, os.FileInfo) *time.Time {
	return nil
}
