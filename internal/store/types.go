package store

import "time"

// Batch is one deletion run.
type Batch struct {
	ID            string
	CreatedAt     time.Time
	ScanRoot      string
	SelectedCount int
	DeletedCount  int
	FailedCount   int
	SkippedCount  int
	BytesFreed    int64
}

// Deletion records what happened to one path within a batch.
type Deletion struct {
	BatchID   string
	Path      string
	Kind      string // "environment" or "artifact"
	Label     string
	Outcome   string // "deleted", "failed" or "skipped"
	SizeBytes int64
	Error     string
}
