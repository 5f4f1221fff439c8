package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Batch operations

// CreateBatch starts a new batch rooted at scanRoot and returns it with a
// freshly generated ID. Counts are filled in later by CompleteBatch.
func (s *Store) CreateBatch(scanRoot string, createdAt time.Time) (*Batch, error) {
	b := &Batch{
		ID:        uuid.NewString(),
		CreatedAt: createdAt.UTC(),
		ScanRoot:  scanRoot,
	}

	query := `
		INSERT INTO batches (id, created_at, scan_root)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.Exec(query, b.ID, b.CreatedAt.Format(time.RFC3339), b.ScanRoot); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", notInitialized(err))
	}

	return b, nil
}

// CompleteBatch stores the final counts of a batch.
func (s *Store) CompleteBatch(b *Batch) error {
	query := `
		UPDATE batches
		SET selected_count = ?, deleted_count = ?, failed_count = ?, skipped_count = ?, bytes_freed = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query,
		b.SelectedCount,
		b.DeletedCount,
		b.FailedCount,
		b.SkippedCount,
		b.BytesFreed,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete batch %s: %w", b.ID, notInitialized(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("batch %s not found", b.ID)
	}

	return nil
}

// GetBatch retrieves a batch by ID.
func (s *Store) GetBatch(id string) (*Batch, error) {
	query := `
		SELECT id, created_at, scan_root, selected_count, deleted_count, failed_count, skipped_count, bytes_freed
		FROM batches
		WHERE id = ?
	`

	b, err := scanBatch(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch %s: %w", id, notInitialized(err))
	}

	return b, nil
}

// ListBatches returns the most recent batches first. A limit of zero or
// less returns every batch.
func (s *Store) ListBatches(limit int) ([]*Batch, error) {
	query := `
		SELECT id, created_at, scan_root, selected_count, deleted_count, failed_count, skipped_count, bytes_freed
		FROM batches
		ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", notInitialized(err))
	}
	defer rows.Close()

	var batches []*Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}

	return batches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*Batch, error) {
	var b Batch
	var createdAt string

	err := row.Scan(
		&b.ID,
		&createdAt,
		&b.ScanRoot,
		&b.SelectedCount,
		&b.DeletedCount,
		&b.FailedCount,
		&b.SkippedCount,
		&b.BytesFreed,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for batch %s: %w", b.ID, err)
	}

	return &b, nil
}

// Deletion operations

// InsertDeletion records the outcome for one path of a batch.
func (s *Store) InsertDeletion(d *Deletion) error {
	query := `
		INSERT INTO deletions (batch_id, path, kind, label, outcome, size_bytes, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, d.BatchID, d.Path, d.Kind, d.Label, d.Outcome, d.SizeBytes, d.Error)
	if err != nil {
		return fmt.Errorf("failed to record deletion of %s: %w", d.Path, notInitialized(err))
	}

	return nil
}

// GetDeletions returns the recorded items of a batch in insertion order.
func (s *Store) GetDeletions(batchID string) ([]*Deletion, error) {
	query := `
		SELECT batch_id, path, kind, label, outcome, size_bytes, error
		FROM deletions
		WHERE batch_id = ?
		ORDER BY id
	`

	rows, err := s.db.Query(query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deletions for batch %s: %w", batchID, notInitialized(err))
	}
	defer rows.Close()

	var deletions []*Deletion
	for rows.Next() {
		var d Deletion
		var label, errText sql.NullString

		if err := rows.Scan(&d.BatchID, &d.Path, &d.Kind, &label, &d.Outcome, &d.SizeBytes, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan deletion row: %w", err)
		}
		d.Label = label.String
		d.Error = errText.String

		deletions = append(deletions, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deletions: %w", err)
	}

	return deletions, nil
}

// TotalBytesFreed sums bytes freed across every recorded batch.
func (s *Store) TotalBytesFreed() (int64, error) {
	var total int64
	err := s.db.QueryRow("SELECT COALESCE(SUM(bytes_freed), 0) FROM batches").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum bytes freed: %w", notInitialized(err))
	}
	return total, nil
}
