package npm

import (
	"os"
	"path/filepath"
)

// Lock files in the project directory, checked in priority order.
var parentLockFiles = []struct {
	names   []string
	manager Manager
}{
	{[]string{"pnpm-lock.yaml"}, PNPM},
	{[]string{"yarn.lock"}, Yarn},
	{[]string{"bun.lockb", "bun.lock"}, Bun},
	{[]string{"package-lock.json"}, NPM},
}

// Marker files each manager writes inside node_modules, checked in order.
var internalMarkers = []struct {
	name    string
	manager Manager
}{
	{".modules.yaml", PNPM},
	{".yarn-integrity", Yarn},
	{".package-lock.json", NPM},
}

// markerSignals lists the same markers in the order they are reported in
// Environment.Signals.
var markerSignals = []struct {
	name   string
	signal string
}{
	{".package-lock.json", "npm-marker"},
	{".yarn-integrity", "yarn-marker"},
	{".modules.yaml", "pnpm-marker"},
}

// DetectManager identifies which package manager installed nodeModules.
// Lock files next to it win over marker files inside it; the first hit in
// each list wins.
func DetectManager(nodeModules string) Manager {
	parent := filepath.Dir(nodeModules)

	for _, lf := range parentLockFiles {
		for _, name := range lf.names {
			if exists(filepath.Join(parent, name)) {
				return lf.manager
			}
		}
	}

	for _, m := range internalMarkers {
		if exists(filepath.Join(nodeModules, m.name)) {
			return m.manager
		}
	}

	return Unknown
}

// InstallHint returns the command that recreates a deleted node_modules.
func InstallHint(m Manager) string {
	switch m {
	case PNPM:
		return "pnpm install"
	case Yarn:
		return "yarn install"
	case Bun:
		return "bun install"
	default:
		return "npm install"
	}
}

// IsLockFile reports whether name is a lock file written by a known
// package manager.
func IsLockFile(name string) bool {
	for _, lf := range parentLockFiles {
		for _, n := range lf.names {
			if n == name {
				return true
			}
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
