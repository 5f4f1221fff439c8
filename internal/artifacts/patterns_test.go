package artifacts

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// entryFor returns the DirEntry for name inside dir.
func entryFor(t *testing.T, dir, name string) fs.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	for _, e := range entries {
		if e.Name() == name {
			return e
		}
	}
	t.Fatalf("entry %q not found in %s", name, dir)
	return nil
}

func TestPatterns_EveryRuleHasNameOrSuffix(t *testing.T) {
	for i, p := range Patterns {
		if p.Name == "" && p.Suffix == "" {
			t.Errorf("Patterns[%d] has neither Name nor Suffix", i)
		}
		if p.Category == "" || p.Safety == "" {
			t.Errorf("Patterns[%d] (%s) missing category or safety", i, p.DisplayName())
		}
	}
}

func TestPatterns_DisplayNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Patterns {
		if seen[p.DisplayName()] {
			t.Errorf("duplicate pattern %q", p.DisplayName())
		}
		seen[p.DisplayName()] = true
	}
}

func TestMatch_NamedDirectories(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		safety   Safety
	}{
		{".next", BuildCache, AlwaysSafe},
		{".turbo", BuildCache, AlwaysSafe},
		{"storybook-static", BuildCache, AlwaysSafe},
		{".cache", ToolCache, AlwaysSafe},
		{"coverage", TestOutput, AlwaysSafe},
		{".nyc_output", TestOutput, AlwaysSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			full := filepath.Join(root, tt.name)
			if err := os.Mkdir(full, 0755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}

			got, ok := Match(entryFor(t, root, tt.name), root, full)
			if !ok {
				t.Fatalf("Match(%s) = no match, want match", tt.name)
			}
			if got.PatternMatched != tt.name {
				t.Errorf("PatternMatched = %q, want %q", got.PatternMatched, tt.name)
			}
			if got.Category != tt.category {
				t.Errorf("Category = %q, want %q", got.Category, tt.category)
			}
			if got.Safety != tt.safety {
				t.Errorf("Safety = %q, want %q", got.Safety, tt.safety)
			}
			if got.Path != full {
				t.Errorf("Path = %q, want %q", got.Path, full)
			}
			if got.SizeBytes != nil {
				t.Errorf("SizeBytes = %d, want nil", *got.SizeBytes)
			}
		})
	}
}

func TestMatch_TypeMustAgree(t *testing.T) {
	root := t.TempDir()

	// A file named like a directory rule must not match.
	if err := os.WriteFile(filepath.Join(root, "coverage"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := Match(entryFor(t, root, "coverage"), root, filepath.Join(root, "coverage")); ok {
		t.Error("file named coverage matched a directory rule")
	}

	// A directory named like a file rule must not match.
	if err := os.Mkdir(filepath.Join(root, ".eslintcache"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, ok := Match(entryFor(t, root, ".eslintcache"), root, filepath.Join(root, ".eslintcache")); ok {
		t.Error("directory named .eslintcache matched a file rule")
	}
}

func TestMatch_FileRules(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{".eslintcache", "tsconfig.tsbuildinfo", "tsconfig.app.tsbuildinfo"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		file    string
		pattern string
	}{
		{".eslintcache", ".eslintcache"},
		{"tsconfig.tsbuildinfo", "tsconfig.tsbuildinfo"},
		{"tsconfig.app.tsbuildinfo", "*.tsbuildinfo"},
	}

	for _, tt := range tests {
		got, ok := Match(entryFor(t, root, tt.file), root, filepath.Join(root, tt.file))
		if !ok {
			t.Errorf("Match(%s) = no match", tt.file)
			continue
		}
		if got.PatternMatched != tt.pattern {
			t.Errorf("Match(%s).PatternMatched = %q, want %q", tt.file, got.PatternMatched, tt.pattern)
		}
		if got.Category != ToolCache {
			t.Errorf("Match(%s).Category = %q, want %q", tt.file, got.Category, ToolCache)
		}
	}
}

func TestMatch_DistRequiresManifest(t *testing.T) {
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	if err := os.Mkdir(dist, 0755); err != nil {
		t.Fatal(err)
	}
	entry := entryFor(t, root, "dist")

	if _, ok := Match(entry, root, dist); ok {
		t.Fatal("dist matched without package.json in parent")
	}

	if err := os.WriteFile(filepath.Join(root, ManifestFile), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	got, ok := Match(entry, root, dist)
	if !ok {
		t.Fatal("dist did not match after adding package.json")
	}
	if got.PatternMatched != "dist" || got.Category != BuildOutput || got.Safety != UsuallySafe {
		t.Errorf("Match(dist) = %+v, want dist/build_output/usually_safe", got)
	}
}

func TestMatch_Unrelated(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, ok := Match(entryFor(t, root, "src"), root, filepath.Join(root, "src")); ok {
		t.Error("src matched an artifact pattern")
	}
}

func TestMatch_SymlinkIsNeitherFileNorDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(root, ".next")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if _, ok := Match(entryFor(t, root, ".next"), root, filepath.Join(root, ".next")); ok {
		t.Error("symlinked .next matched a directory rule")
	}
}

func TestSafetyText(t *testing.T) {
	tests := map[Safety]string{
		AlwaysSafe:  "safe to delete",
		UsuallySafe: "usually safe",
		Careful:     "careful",
		"bogus":     "bogus",
	}
	for level, want := range tests {
		if got := SafetyText(level); got != want {
			t.Errorf("SafetyText(%q) = %q, want %q", level, got, want)
		}
	}
}
