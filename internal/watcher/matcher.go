package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/npm"
)

// Relevant reports whether ev could change the scan result: a node_modules
// directory coming or going, or a lock file or package.json changing.
func Relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Base(ev.Name)
	switch {
	case name == npm.DirName:
		return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
	case name == artifacts.ManifestFile, npm.IsLockFile(name):
		return true
	default:
		return false
	}
}
