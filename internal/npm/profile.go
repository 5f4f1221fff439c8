// Package npm profiles node_modules directories: which package manager
// produced them, how many packages they hold, and whether they have gone
// stale or fallen behind their package.json.
package npm

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/envoic/internal/diskusage"
)

// ManifestFile is the project manifest next to node_modules.
const ManifestFile = "package.json"

// ProfileOptions controls how much work Profile does.
type ProfileOptions struct {
	StaleDays int
	Deep      bool      // measure size and count packages
	Now       time.Time // reference time for staleness
}

// Profile builds the Environment record for nodeModules. It never fails: if
// the directory cannot be stat-ed the record is returned without timestamps,
// marked neither stale nor outdated, and tagged "stat-unavailable".
func Profile(nodeModules string, opts ProfileOptions) Environment {
	parent := filepath.Dir(nodeModules)

	signals := []string{}
	for _, m := range markerSignals {
		if exists(filepath.Join(nodeModules, m.name)) {
			signals = append(signals, m.signal)
		}
	}
	manifest := filepath.Join(parent, ManifestFile)
	manifestInfo, manifestErr := os.Stat(manifest)
	if manifestErr == nil {
		signals = append(signals, ManifestFile)
	}

	env := Environment{
		Path:           nodeModules,
		PackageManager: DetectManager(nodeModules),
		Signals:        signals,
	}

	if opts.Deep {
		count := CountPackages(nodeModules)
		size := diskusage.PathSize(nodeModules)
		env.PackageCount = &count
		env.SizeBytes = &size
	}

	info, err := os.Stat(nodeModules)
	if err != nil {
		log.Debug().Err(err).Str("path", nodeModules).Msg("environment stat failed")
		env.Signals = append(env.Signals, "stat-unavailable")
		return env
	}

	modified := info.ModTime()
	env.Modified = &modified
	env.Created = birthTime(nodeModules, info)
	env.IsStale = IsStale(env.Modified, opts.StaleDays, opts.Now)

	if manifestErr == nil {
		env.IsOutdated = IsOutdated(manifestInfo.ModTime(), modified)
	}

	return env
}
