// Package diskusage measures how many bytes a filesystem subtree occupies.
package diskusage

import (
	"os"
	"path/filepath"
)

// PathSize returns the apparent size of path in bytes.
//
// A regular file or a symlink contributes its own lstat size; symlinks are
// never followed. A directory contributes the sum of every file and symlink
// beneath it. Entries that cannot be stat-ed or listed are skipped, so the
// result is a lower bound on trees with permission errors or concurrent
// deletions. Anything else (sockets, devices, missing paths) is 0.
func PathSize(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0, info.Mode().IsRegular():
		return info.Size()
	case info.IsDir():
		return dirSize(path)
	default:
		return 0
	}
}

// dirSize walks root with an explicit stack instead of recursion so deep
// trees do not grow the goroutine stack.
func dirSize(root string) int64 {
	var total int64
	stack := []string{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(current)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			next := filepath.Join(current, entry.Name())
			info, err := os.Lstat(next)
			if err != nil {
				continue
			}

			switch {
			case info.Mode()&os.ModeSymlink != 0, info.Mode().IsRegular():
				total += info.Size()
			case info.IsDir():
				stack = append(stack, next)
			}
		}
	}

	return total
}
