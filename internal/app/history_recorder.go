package app

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/envoic/internal/cleaner"
	"github.com/blackwell-systems/envoic/internal/store"
)

// historyRecorder writes a deletion batch to the history database. A nil
// recorder does nothing, so callers never need to check whether history
// is enabled. Database failures are logged and never stop a deletion.
type historyRecorder struct {
	st    *store.Store
	batch *store.Batch
}

func openHistory(root string) *historyRecorder {
	if noHistory || !currentConfig().History {
		return nil
	}

	path, err := getDBPath()
	if err != nil {
		log.Warn().Err(err).Msg("deletion history disabled")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Warn().Err(err).Str("db", path).Msg("deletion history disabled")
		return nil
	}

	st, err := store.New(path)
	if err != nil {
		log.Warn().Err(err).Str("db", path).Msg("deletion history disabled")
		return nil
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		log.Warn().Err(err).Str("db", path).Msg("deletion history disabled")
		return nil
	}

	batch, err := st.CreateBatch(root, now())
	if err != nil {
		st.Close()
		log.Warn().Err(err).Str("db", path).Msg("deletion history disabled")
		return nil
	}

	return &historyRecorder{st: st, batch: batch}
}

func (h *historyRecorder) record(item cleaner.Item, outcome cleaner.Outcome, size int64, err error) {
	if h == nil {
		return
	}
	d := &store.Deletion{
		BatchID:   h.batch.ID,
		Path:      item.Path(),
		Kind:      item.Kind().String(),
		Label:     item.Label(),
		Outcome:   string(outcome),
		SizeBytes: size,
	}
	if err != nil {
		d.Error = err.Error()
	}
	if err := h.st.InsertDeletion(d); err != nil {
		log.Warn().Err(err).Str("path", d.Path).Msg("failed to record deletion")
	}
}

func (h *historyRecorder) finish(s cleaner.Summary) {
	if h == nil {
		return
	}
	h.batch.SelectedCount = s.SelectedCount
	h.batch.DeletedCount = s.DeletedCount
	h.batch.FailedCount = s.FailedCount
	h.batch.SkippedCount = s.SkippedCount
	h.batch.BytesFreed = s.BytesFreed
	if err := h.st.CompleteBatch(h.batch); err != nil {
		log.Warn().Err(err).Str("batch", h.batch.ID).Msg("failed to record deletion batch")
	}
}

func (h *historyRecorder) close() {
	if h == nil {
		return
	}
	if err := h.st.Close(); err != nil {
		log.Debug().Err(err).Msg("closing history database")
	}
}
