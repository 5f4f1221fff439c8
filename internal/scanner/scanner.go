// Package scanner walks a directory tree looking for node_modules
// directories and JavaScript build artifacts.
package scanner

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"

	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/npm"
)

// Options configures a single scan.
type Options struct {
	Root             string
	Depth            int // root is depth 1
	Deep             bool
	StaleDays        int
	IncludeArtifacts bool
	Exclude          []string // globs matched against slash-separated paths relative to Root

	// Now and Hostname are recorded in the result and drive staleness.
	// Zero values are replaced with time.Now() and "".
	Now      time.Time
	Hostname string

	// Progress, when set, is called with each directory before it is listed.
	Progress func(dir string)
}

// Result is the outcome of a scan.
type Result struct {
	ScanPath        string               `json:"scanPath"`
	ScanDepth       int                  `json:"scanDepth"`
	StaleDays       int                  `json:"staleDays"`
	DurationSeconds float64              `json:"durationSeconds"`
	Environments    []npm.Environment    `json:"environments"`
	TotalSizeBytes  int64                `json:"totalSizeBytes"`
	Hostname        string               `json:"hostname"`
	Timestamp       time.Time            `json:"timestamp"`
	Artifacts       []artifacts.Artifact `json:"artifacts"`
	ArtifactSummary []artifacts.Summary  `json:"artifactSummary"`
}

// Scanner holds validated scan options.
type Scanner struct {
	opts     Options
	excludes []glob.Glob
}

// New validates opts and compiles its exclude patterns.
func New(opts Options) (*Scanner, error) {
	if opts.Depth < 1 {
		return nil, fmt.Errorf("depth must be a positive integer, got %d", opts.Depth)
	}
	if opts.StaleDays < 1 {
		return nil, fmt.Errorf("stale days must be a positive integer, got %d", opts.StaleDays)
	}

	s := &Scanner{opts: opts}
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		s.excludes = append(s.excludes, g)
	}

	return s, nil
}

// Scan is shorthand for New(opts) followed by Run.
func Scan(opts Options) (*Result, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
