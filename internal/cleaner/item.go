package cleaner

import (
	"github.com/blackwell-systems/envoic/internal/artifacts"
	"github.com/blackwell-systems/envoic/internal/npm"
)

// Kind distinguishes the two kinds of deletable item.
type Kind int

const (
	KindEnvironment Kind = iota
	KindArtifact
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindArtifact:
		return "artifact"
	default:
		return "unknown"
	}
}

// Item is a node_modules directory or an artifact selected for deletion.
// Build one with FromEnvironment or FromArtifact.
type Item struct {
	kind        Kind
	environment npm.Environment
	artifact    artifacts.Artifact
}

func FromEnvironment(env npm.Environment) Item {
	return Item{kind: KindEnvironment, environment: env}
}

func FromArtifact(a artifacts.Artifact) Item {
	return Item{kind: KindArtifact, artifact: a}
}

func (i Item) Kind() Kind { return i.kind }

func (i Item) Path() string {
	if i.kind == KindArtifact {
		return i.artifact.Path
	}
	return i.environment.Path
}

// SizeBytes is the size recorded at scan time, nil if it was not measured.
func (i Item) SizeBytes() *int64 {
	if i.kind == KindArtifact {
		return i.artifact.SizeBytes
	}
	return i.environment.SizeBytes
}

// Label names what the item is: the package manager for environments, the
// matched pattern for artifacts.
func (i Item) Label() string {
	if i.kind == KindArtifact {
		return i.artifact.PatternMatched
	}
	return string(i.environment.PackageManager)
}

// Environment returns the wrapped environment, if any.
func (i Item) Environment() (npm.Environment, bool) {
	return i.environment, i.kind == KindEnvironment
}

// Artifact returns the wrapped artifact, if any.
func (i Item) Artifact() (artifacts.Artifact, bool) {
	return i.artifact, i.kind == KindArtifact
}

// FromEnvironments wraps each environment as an Item.
func FromEnvironments(envs []npm.Environment) []Item {
	items := make([]Item, 0, len(envs))
	for _, env := range envs {
		items = append(items, FromEnvironment(env))
	}
	return items
}

// FromArtifacts wraps each artifact as an Item.
func FromArtifacts(list []artifacts.Artifact) []Item {
	items := make([]Item, 0, len(list))
	for _, a := range list {
		items = append(items, FromArtifact(a))
	}
	return items
}
