package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/envoic/internal/scanner"
)

// Watcher reports changes to the environments beneath a root directory.
type Watcher struct {
	root     string
	depth    int
	debounce time.Duration

	skip func(path string) bool

	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	watched map[string]int // directory -> depth, root is 1
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a Watcher for root. depth follows the scanner's convention.
func New(root string, depth int, debounce time.Duration) (*Watcher, error) {
	if depth < 1 {
		return nil, fmt.Errorf("depth must be a positive integer, got %d", depth)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot watch %s: not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		root:     abs,
		depth:    depth,
		debounce: debounce,
		fsw:      fsw,
		watched:  make(map[string]int),
		stopCh:   make(chan struct{}),
	}, nil
}

// Skip sets a predicate for paths that are neither watched nor reported,
// such as excluded subtrees. Call it before Start.
func (w *Watcher) Skip(fn func(path string) bool) {
	w.skip = fn
}

func (w *Watcher) skipped(path string) bool {
	return w.skip != nil && w.skip(path)
}

// Start registers the directory tree and calls onChange, from a background
// goroutine, once activity settles after each relevant change.
func (w *Watcher) Start(onChange func()) error {
	if err := w.addTree(w.root, 1); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.run(onChange)

	return nil
}

// Stop halts the watcher and releases its file descriptors.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()
	return w.fsw.Close()
}

// WatchedDirs returns the currently watched directories, sorted.
func (w *Watcher) WatchedDirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make([]string, 0, len(w.watched))
	for d := range w.watched {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

func (w *Watcher) run(onChange func()) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.skipped(ev.Name) {
				continue
			}
			w.track(ev)
			if !Relevant(ev) {
				continue
			}
			log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("environment change")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-fire:
			fire = nil
			onChange()

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// track keeps the watch list in step with directories being created and removed.
func (w *Watcher) track(ev fsnotify.Event) {
	switch {
	case ev.Has(fsnotify.Create):
		w.mu.Lock()
		parentDepth, ok := w.watched[filepath.Dir(ev.Name)]
		w.mu.Unlock()
		if !ok || !scanner.Descend(filepath.Base(ev.Name)) {
			return
		}
		info, err := os.Lstat(ev.Name)
		if err != nil || !info.IsDir() {
			return
		}
		if err := w.addTree(ev.Name, parentDepth+1); err != nil {
			log.Debug().Err(err).Str("dir", ev.Name).Msg("could not watch new directory")
		}

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.mu.Lock()
		for dir := range w.watched {
			if dir == ev.Name || strings.HasPrefix(dir, ev.Name+string(filepath.Separator)) {
				delete(w.watched, dir)
			}
		}
		w.mu.Unlock()
	}
}

// addTree watches dir and its walkable subdirectories down to the depth limit.
// Only a failure to watch dir itself is reported.
func (w *Watcher) addTree(dir string, depth int) error {
	if depth > w.depth {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.mu.Lock()
	w.watched[dir] = depth
	w.mu.Unlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() || !scanner.Descend(entry.Name()) {
			continue
		}
		child := filepath.Join(dir, entry.Name())
		if w.skipped(child) {
			continue
		}
		if err := w.addTree(child, depth+1); err != nil {
			log.Debug().Err(err).Str("dir", child).Msg("could not watch directory")
		}
	}
	return nil
}
