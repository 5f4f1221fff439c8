// Package watcher notices node_modules directories, lock files and
// package.json files appearing or disappearing beneath a root, so the
// environment list can be refreshed without rescanning on a timer.
//
// Directories are watched down to the same depth the scanner walks, with
// the same skip rules. Newly created directories are picked up as they
// appear. Bursts of events, such as an install writing thousands of files,
// are collapsed into a single callback after a quiet period.
//
// Example usage:
//
//	w, err := watcher.New(root, 5, 500*time.Millisecond)
//	if err != nil {
//		return err
//	}
//	if err := w.Start(func() { rescan() }); err != nil {
//		return err
//	}
//	defer w.Stop()
package watcher
