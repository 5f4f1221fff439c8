package npm

import "time"

// DirName is the conventional install directory of every JS package manager.
const DirName = "node_modules"

// Manager identifies the package manager that populated a node_modules tree.
type Manager string

const (
	NPM     Manager = "npm"
	Yarn    Manager = "yarn"
	PNPM    Manager = "pnpm"
	Bun     Manager = "bun"
	Unknown Manager = "unknown"
)

// Environment describes one discovered node_modules directory.
type Environment struct {
	Path           string     `json:"path"`
	PackageManager Manager    `json:"packageManager"`
	PackageCount   *int       `json:"packageCount"` // deep mode only
	SizeBytes      *int64     `json:"sizeBytes"`    // deep mode only
	Created        *time.Time `json:"created"`      // nil when stat fails
	Modified       *time.Time `json:"modified"`     // nil when stat fails
	IsStale        bool       `json:"isStale"`
	IsOutdated     bool       `json:"isOutdated"`
	Signals        []string   `json:"signals"` // detection markers that fired
}

// PackageSize is a top-level package and its measured size.
type PackageSize struct {
	Name string
	Size int64
}
