//go:build linux

package npm

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBirthTime_Linux(t *testing.T) {
	dir := t.TempDir()
	nm := filepath.Join(dir, DirName)
	before := time.Now().Add(-time.Minute)
	if err := os.Mkdir(nm, 0755); err != nil {
		t.Fatal(err)
	}

	// Backdating mtime must not move the birth time.
	old := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(nm, old, old); err != nil {
		t.Fatal(err)
	}

	// Filesystems without btime support report nil rather than mtime.
	if got := birthTime(nm, nil); got != nil {
		if got.Before(before) {
			t.Errorf("birthTime = %v, want around now (mtime leaked?)", got)
		}
	}

	if got := birthTime(filepath.Join(dir, "missing"), nil); got != nil {
		t.Errorf("birthTime(missing) = %v, want nil", got)
	}
}
