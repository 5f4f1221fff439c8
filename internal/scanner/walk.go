package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/diskusage"
	"github.com/blackwell-systems/envoic/internal/npm"
)

// Version control directories are never descended into.
var skipNames = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Hidden directories that are still walked so their artifacts are found.
var allowedHidden = map[string]bool{
	".next":   true,
	".nuxt":   true,
	".turbo":  true,
	".swc":    true,
	".output": true,
	".cache":  true,
}

type walker struct {
	*Scanner
	root         string
	now          time.Time
	environments []npm.Environment
	found        []artifacts.Artifact
	seenEnv      map[string]bool
	seenArtifact map[string]bool
}

// Run walks the tree and returns the collected result. Unreadable
// directories are treated as empty; the only error is an unresolvable root.
func (s *Scanner) Run() (*Result, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	w := &walker{
		Scanner:      s,
		root:         root,
		now:          now,
		environments: []npm.Environment{},
		found:        []artifacts.Artifact{},
		seenEnv:      make(map[string]bool),
		seenArtifact: make(map[string]bool),
	}

	start := time.Now()
	w.walk(root, 1)
	duration := time.Since(start)

	sort.Slice(w.environments, func(i, j int) bool {
		return w.environments[i].Path < w.environments[j].Path
	})
	sort.Slice(w.found, func(i, j int) bool {
		return w.found[i].Path < w.found[j].Path
	})

	var total int64
	for _, env := range w.environments {
		if env.SizeBytes != nil {
			total += *env.SizeBytes
		}
	}

	return &Result{
		ScanPath:        root,
		ScanDepth:       s.opts.Depth,
		StaleDays:       s.opts.StaleDays,
		DurationSeconds: duration.Seconds(),
		Environments:    w.environments,
		TotalSizeBytes:  total,
		Hostname:        s.opts.Hostname,
		Timestamp:       now,
		Artifacts:       w.found,
		ArtifactSummary: artifacts.Summarize(w.found),
	}, nil
}

func (w *walker) walk(dir string, depth int) {
	if depth > w.opts.Depth {
		return
	}

	if w.opts.Progress != nil {
		w.opts.Progress(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		next := filepath.Join(dir, name)

		if w.excluded(next) {
			continue
		}

		if w.opts.IncludeArtifacts {
			if a, ok := artifacts.Match(entry, dir, next); ok {
				if !w.seenArtifact[a.Path] {
					if w.opts.Deep {
						size := diskusage.PathSize(a.Path)
						a.SizeBytes = &size
					}
					w.found = append(w.found, a)
					w.seenArtifact[a.Path] = true
				}
				if entry.IsDir() {
					continue
				}
			}
		}

		if !entry.IsDir() {
			continue
		}

		if name == npm.DirName {
			if !w.seenEnv[next] {
				w.environments = append(w.environments, npm.Profile(next, npm.ProfileOptions{
					StaleDays: w.opts.StaleDays,
					Deep:      w.opts.Deep,
					Now:       w.now,
				}))
				w.seenEnv[next] = true
			}
			continue
		}

		if !Descend(name) {
			continue
		}

		w.walk(next, depth+1)
	}
}

// Descend reports whether a directory with this name is walked into.
// node_modules, version control and most hidden directories are not.
func Descend(name string) bool {
	if name == npm.DirName || skipNames[name] {
		return false
	}
	if strings.HasPrefix(name, ".") && !allowedHidden[name] {
		return false
	}
	return true
}

// Excluded reports whether path matches any exclude pattern, using its
// slash-separated path relative to the scan root.
func (s *Scanner) Excluded(path string) bool {
	if len(s.excludes) == 0 {
		return false
	}
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return false
	}
	return matchAny(s.excludes, root, path)
}

func (w *walker) excluded(path string) bool {
	return matchAny(w.excludes, w.root, path)
}

func matchAny(globs []glob.Glob, root, path string) bool {
	if len(globs) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
