//go:build darwin

package npm

import (
	"os"
	"syscall"
	"time"
)

func birthTime(_ string, info os.FileInfo) *time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	t := time.Unix(st.Birthtimespec.Unix())
	return &t
}
