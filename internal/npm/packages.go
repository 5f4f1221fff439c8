package npm

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blackwell-systems/envoic/internal/diskusage"
)

// CountPackages counts the top-level packages in nodeModules. Hidden
// directories are ignored and each @scope directory counts its children
// instead of itself. An unreadable nodeModules counts as zero.
func CountPackages(nodeModules string) int {
	entries, err := os.ReadDir(nodeModules)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if strings.HasPrefix(entry.Name(), "@") {
			scoped, err := os.ReadDir(filepath.Join(nodeModules, entry.Name()))
			if err != nil {
				continue
			}
			for _, s := range scoped {
				if s.IsDir() {
					count++
				}
			}
			continue
		}

		count++
	}

	return count
}

// TopPackages returns the limit largest top-level packages in nodeModules,
// largest first. Scoped packages are named "@scope/name".
func TopPackages(nodeModules string, limit int) ([]PackageSize, error) {
	entries, err := os.ReadDir(nodeModules)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", nodeModules, err)
	}

	var result []PackageSize
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if strings.HasPrefix(entry.Name(), "@") {
			scopeDir := filepath.Join(nodeModules, entry.Name())
			scoped, err := os.ReadDir(scopeDir)
			if err != nil {
				continue
			}
			for _, s := range scoped {
				if !s.IsDir() || strings.HasPrefix(s.Name(), ".") {
					continue
				}
				result = append(result, PackageSize{
					Name: entry.Name() + "/" + s.Name(),
					Size: diskusage.PathSize(filepath.Join(scopeDir, s.Name())),
				})
			}
			continue
		}

		result = append(result, PackageSize{
			Name: entry.Name(),
			Size: diskusage.PathSize(filepath.Join(nodeModules, entry.Name())),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Size > result[j].Size
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
