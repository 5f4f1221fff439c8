//go:build windows

package npm

import (
	"os"
	"syscall"
	"time"
)

func birthTime(_ string, info os.FileInfo) *time.Time {
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return nil
	}
	t := time.Unix(0, d.CreationTime.Nanoseconds())
	return &t
}
