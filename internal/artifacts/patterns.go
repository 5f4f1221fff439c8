// Package artifacts classifies JavaScript build, tool and test byproducts.
//
// Classification is a first-match-wins lookup over the ordered Patterns
// table. Each rule names an exact entry name or a name suffix, the entry type
// it applies to, and whether the parent directory must contain a
// package.json before the rule fires. Generic names such as "dist" and
// "build" carry that precondition so they are only claimed inside JS
// projects.
package artifacts

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ManifestFile marks a directory as a JS project.
const ManifestFile = "package.json"

// Pattern is one row of the classification table. Exactly one of Name or
// Suffix is set; Name wins when both are.
type Pattern struct {
	Name             string
	Suffix           string
	Type             EntryType
	Category         Category
	Safety           Safety
	RequiresManifest bool
}

// DisplayName returns the name used to group and report matches.
func (p Pattern) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "*" + p.Suffix
}

// Patterns is evaluated in order; the first satisfied rule wins.
var Patterns = []Pattern{
	{Name: ".next", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: ".nuxt", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: ".turbo", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: ".parcel-cache", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: ".webpack", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: ".swc", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: ".output", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},
	{Name: "storybook-static", Type: TypeDir, Category: BuildCache, Safety: AlwaysSafe},

	{Name: "dist", Type: TypeDir, Category: BuildOutput, Safety: UsuallySafe, RequiresManifest: true},
	{Name: "build", Type: TypeDir, Category: BuildOutput, Safety: UsuallySafe, RequiresManifest: true},

	{Name: ".eslintcache", Type: TypeFile, Category: ToolCache, Safety: AlwaysSafe},
	{Name: ".stylelintcache", Type: TypeFile, Category: ToolCache, Safety: AlwaysSafe},
	{Name: "tsconfig.tsbuildinfo", Type: TypeFile, Category: ToolCache, Safety: AlwaysSafe},
	{Suffix: ".tsbuildinfo", Type: TypeFile, Category: ToolCache, Safety: AlwaysSafe},
	{Name: ".cache", Type: TypeDir, Category: ToolCache, Safety: AlwaysSafe},

	{Name: "coverage", Type: TypeDir, Category: TestOutput, Safety: AlwaysSafe},
	{Name: ".nyc_output", Type: TypeDir, Category: TestOutput, Safety: AlwaysSafe},
}

var safetyText = map[Safety]string{
	AlwaysSafe:  "safe to delete",
	UsuallySafe: "usually safe",
	Careful:     "careful",
}

// SafetyText returns the human label for a safety level.
func SafetyText(s Safety) string {
	if text, ok := safetyText[s]; ok {
		return text
	}
	return string(s)
}

// IsProjectDir reports whether dir contains a package.json.
func IsProjectDir(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil
}

// Match classifies entry, which lives in parent and resolves to fullPath.
// It returns false when no pattern applies. Symlinks are neither files nor
// directories for matching purposes.
func Match(entry fs.DirEntry, parent, fullPath string) (Artifact, bool) {
	name := entry.Name()

	for _, p := range Patterns {
		if p.Type == TypeDir && !entry.IsDir() {
			continue
		}
		if p.Type == TypeFile && !entry.Type().IsRegular() {
			continue
		}

		if p.Name != "" {
			if name != p.Name {
				continue
			}
		} else if !strings.HasSuffix(name, p.Suffix) {
			continue
		}

		if p.RequiresManifest && !IsProjectDir(parent) {
			continue
		}

		return Artifact{
			Path:           fullPath,
			Category:       p.Category,
			Safety:         p.Safety,
			PatternMatched: p.DisplayName(),
		}, true
	}

	return Artifact{}, false
}
