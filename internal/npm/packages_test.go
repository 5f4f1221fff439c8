package npm

import (
	"os"
	"path/filepath"
	"testing"
)

func mkPkg(t *testing.T, nm, name string, size int) {
	t.Helper()
	dir := filepath.Join(nm, filepath.FromSlash(name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.js"), make([]byte, size), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCountPackages(t *testing.T) {
	_, nm := newNodeModules(t)
	mkPkg(t, nm, "react", 10)
	mkPkg(t, nm, "lodash", 10)
	mkPkg(t, nm, "@babel/core", 10)
	mkPkg(t, nm, "@babel/parser", 10)
	mkPkg(t, nm, "@types/node", 10)
	mkPkg(t, nm, ".bin/shim", 10)
	touch(t, filepath.Join(nm, ".package-lock.json"))
	touch(t, filepath.Join(nm, "stray-file.js"))

	if got := CountPackages(nm); got != 5 {
		t.Errorf("CountPackages() = %d, want 5", got)
	}
}

func TestCountPackages_Missing(t *testing.T) {
	if got := CountPackages(filepath.Join(t.TempDir(), "missing")); got != 0 {
		t.Errorf("CountPackages(missing) = %d, want 0", got)
	}
}

func TestTopPackages(t *testing.T) {
	_, nm := newNodeModules(t)
	mkPkg(t, nm, "small", 10)
	mkPkg(t, nm, "big", 5000)
	mkPkg(t, nm, "@scope/mid", 300)
	mkPkg(t, nm, ".cache/ignored", 99999)

	top, err := TopPackages(nm, 10)
	if err != nil {
		t.Fatalf("TopPackages() error = %v", err)
	}

	want := []PackageSize{{"big", 5000}, {"@scope/mid", 300}, {"small", 10}}
	if len(top) != len(want) {
		t.Fatalf("TopPackages() returned %d packages, want %d: %+v", len(top), len(want), top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}
}

func TestTopPackages_Limit(t *testing.T) {
	_, nm := newNodeModules(t)
	for i, name := range []string{"a", "b", "c", "d"} {
		mkPkg(t, nm, name, (i+1)*100)
	}

	top, err := TopPackages(nm, 2)
	if err != nil {
		t.Fatalf("TopPackages() error = %v", err)
	}
	if len(top) != 2 || top[0].Name != "d" || top[1].Name != "c" {
		t.Errorf("TopPackages(limit 2) = %+v, want d then c", top)
	}
}

func TestTopPackages_MissingDir(t *testing.T) {
	if _, err := TopPackages(filepath.Join(t.TempDir(), "nope"), 5); err == nil {
		t.Error("TopPackages(missing) error = nil, want error")
	}
}
