package npm

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newNodeModules(t *testing.T) (root, nm string) {
	t.Helper()
	root = t.TempDir()
	nm = filepath.Join(root, DirName)
	if err := os.Mkdir(nm, 0755); err != nil {
		t.Fatalf("mkdir node_modules: %v", err)
	}
	return root, nm
}

func TestDetectManager(t *testing.T) {
	tests := []struct {
		name   string
		parent []string // files next to node_modules
		inside []string // files inside node_modules
		want   Manager
	}{
		{"npm lock", []string{"package-lock.json"}, nil, NPM},
		{"yarn lock", []string{"yarn.lock"}, nil, Yarn},
		{"pnpm lock", []string{"pnpm-lock.yaml"}, nil, PNPM},
		{"bun lockb", []string{"bun.lockb"}, nil, Bun},
		{"bun lock", []string{"bun.lock"}, nil, Bun},
		{"pnpm marker", nil, []string{".modules.yaml"}, PNPM},
		{"yarn marker", nil, []string{".yarn-integrity"}, Yarn},
		{"npm marker", nil, []string{".package-lock.json"}, NPM},
		{"nothing", nil, nil, Unknown},

		// Priority: the first satisfied rule wins.
		{"pnpm lock beats npm marker", []string{"pnpm-lock.yaml"}, []string{".package-lock.json"}, PNPM},
		{"pnpm lock beats yarn lock", []string{"yarn.lock", "pnpm-lock.yaml"}, nil, PNPM},
		{"yarn lock beats bun lock", []string{"bun.lock", "yarn.lock"}, nil, Yarn},
		{"bun lock beats npm lock", []string{"package-lock.json", "bun.lockb"}, nil, Bun},
		{"npm lock beats pnpm marker", []string{"package-lock.json"}, []string{".modules.yaml"}, NPM},
		{"pnpm marker beats yarn marker", nil, []string{".yarn-integrity", ".modules.yaml"}, PNPM},
		{"yarn marker beats npm marker", nil, []string{".package-lock.json", ".yarn-integrity"}, Yarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, nm := newNodeModules(t)
			for _, f := range tt.parent {
				touch(t, filepath.Join(root, f))
			}
			for _, f := range tt.inside {
				touch(t, filepath.Join(nm, f))
			}

			if got := DetectManager(nm); got != tt.want {
				t.Errorf("DetectManager() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstallHint(t *testing.T) {
	tests := map[Manager]string{
		PNPM:    "pnpm install",
		Yarn:    "yarn install",
		Bun:     "bun install",
		NPM:     "npm install",
		Unknown: "npm install",
	}
	for m, want := range tests {
		if got := InstallHint(m); got != want {
			t.Errorf("InstallHint(%q) = %q, want %q", m, got, want)
		}
	}
}

func TestIsLockFile(t *testing.T) {
	for _, name := range []string{"pnpm-lock.yaml", "yarn.lock", "bun.lockb", "bun.lock", "package-lock.json"} {
		if !IsLockFile(name) {
			t.Errorf("IsLockFile(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"package.json", ".package-lock.json", "Cargo.lock", ""} {
		if IsLockFile(name) {
			t.Errorf("IsLockFile(%q) = true, want false", name)
		}
	}
}
