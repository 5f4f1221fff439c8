// Package cleaner deletes selected environments and artifacts, confined to
// the directory they were discovered under.
package cleaner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/envoic/internal/diskusage"
)

// Summary is the outcome of one deletion batch.
type Summary struct {
	SelectedCount  int      `json:"selectedCount"`
	DeletedCount   int      `json:"deletedCount"`
	FailedCount    int      `json:"failedCount"`
	SkippedCount   int      `json:"skippedCount"`
	BytesFreed     int64    `json:"bytesFreed"`
	WouldFreeBytes int64    `json:"wouldFreeBytes"`
	Errors         []string `json:"errors"`
	DryRun         bool     `json:"dryRun"`
}

// Outcome is what happened to a single item.
type Outcome string

const (
	OutcomeDeleted   Outcome = "deleted"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeWouldFree Outcome = "would-delete"
)

// Observer is notified after each item is processed. err is set for
// failed items and for items skipped because they lie outside the root.
type Observer func(item Item, outcome Outcome, size int64, err error)

// Options controls a deletion batch.
type Options struct {
	DryRun bool

	// Echo receives per-item progress lines. Nil discards them.
	Echo io.Writer

	// Display formats a path for Echo. Defaults to the path itself.
	Display func(path string) string

	Observer Observer
}

// Delete removes every item that lies inside scanRoot. It never stops early:
// each failure is counted and recorded in Summary.Errors.
func Delete(items []Item, scanRoot string, opts Options) Summary {
	echo := opts.Echo
	if echo == nil {
		echo = io.Discard
	}
	display := opts.Display
	if display == nil {
		display = func(p string) string { return p }
	}
	notify := opts.Observer
	if notify == nil {
		notify = func(Item, Outcome, int64, error) {}
	}

	summary := Summary{
		SelectedCount: len(items),
		Errors:        []string{},
		DryRun:        opts.DryRun,
	}

	for _, item := range items {
		target := item.Path()

		if !InsideRoot(target, scanRoot) {
			err := fmt.Errorf("outside scan root: %s", target)
			summary.SkippedCount++
			summary.Errors = append(summary.Errors, err.Error())
			notify(item, OutcomeSkipped, 0, err)
			continue
		}

		size := diskusage.PathSize(target)
		summary.WouldFreeBytes += size

		if opts.DryRun {
			fmt.Fprintf(echo, "[dry-run] Would delete %s\n", display(target))
			notify(item, OutcomeWouldFree, size, nil)
			continue
		}

		if !exists(target) && !isDir(filepath.Dir(target)) {
			summary.SkippedCount++
			notify(item, OutcomeSkipped, 0, nil)
			continue
		}

		fmt.Fprintf(echo, "Deleting %s ...", display(target))
		if err := remove(target); err != nil {
			if errors.Is(err, fs.ErrPermission) {
				fmt.Fprintln(echo, " failed (permission denied)")
			} else {
				fmt.Fprintln(echo, " failed")
			}
			log.Debug().Err(err).Str("path", target).Msg("delete failed")
			summary.FailedCount++
			summary.Errors = append(summary.Errors, err.Error())
			notify(item, OutcomeFailed, 0, err)
			continue
		}

		fmt.Fprintln(echo, " done")
		summary.DeletedCount++
		summary.BytesFreed += size
		notify(item, OutcomeDeleted, size, nil)
	}

	return summary
}

// InsideRoot reports whether candidate is root itself or lies beneath it,
// comparing absolute, cleaned paths.
func InsideRoot(candidate, root string) bool {
	absCandidate, err := filepath.Abs(candidate)
	if err != nil {
		return false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	if absCandidate == absRoot {
		return true
	}
	prefix := absRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(absCandidate, prefix)
}

// remove unlinks symlinks and recursively removes everything else.
func remove(target string) error {
	info, err := os.Lstat(target)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return os.Remove(target)
	}
	return os.RemoveAll(target)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}
