package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Helper function to create an in-memory store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestListBatches_NoSchema_ReturnsErrNotInitialized(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	_, err = s.ListBatches(10)
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ListBatches() error = %v; want ErrNotInitialized", err)
	}

	_, err = s.CreateBatch("/tmp", time.Now())
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("CreateBatch() error = %v; want ErrNotInitialized", err)
	}
}

func TestErrNotInitialized_ErrorMessage(t *testing.T) {
	if !strings.Contains(ErrNotInitialized.Error(), "envoic") {
		t.Errorf("ErrNotInitialized message %q should mention envoic", ErrNotInitialized.Error())
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateSchema(); err != nil {
		t.Errorf("second CreateSchema() failed: %v", err)
	}
}

func TestNew_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := s.CreateSchema(); err != nil {
		t.Fatal(err)
	}
	b, err := s.CreateBatch("/work", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if _, err := reopened.GetBatch(b.ID); err != nil {
		t.Errorf("batch did not persist: %v", err)
	}
}

func TestBatchLifecycle(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	b, err := s.CreateBatch("/work/projects", created)
	if err != nil {
		t.Fatalf("CreateBatch() error = %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected generated batch ID")
	}

	b.SelectedCount = 3
	b.DeletedCount = 2
	b.FailedCount = 1
	b.BytesFreed = 4096
	if err := s.CompleteBatch(b); err != nil {
		t.Fatalf("CompleteBatch() error = %v", err)
	}

	got, err := s.GetBatch(b.ID)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if got.ScanRoot != "/work/projects" || !got.CreatedAt.Equal(created) {
		t.Errorf("GetBatch() = %+v", got)
	}
	if got.SelectedCount != 3 || got.DeletedCount != 2 || got.FailedCount != 1 || got.SkippedCount != 0 {
		t.Errorf("counts = %+v", got)
	}
	if got.BytesFreed != 4096 {
		t.Errorf("BytesFreed = %d, want 4096", got.BytesFreed)
	}
}

func TestCompleteBatch_Unknown(t *testing.T) {
	s := newTestStore(t)
	if err := s.CompleteBatch(&Batch{ID: "missing"}); err == nil {
		t.Error("expected error for unknown batch")
	}
}

func TestGetBatch_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetBatch("nope"); err == nil {
		t.Error("expected error for unknown batch")
	}
}

func TestListBatches_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		b, err := s.CreateBatch("/root", base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, b.ID)
	}

	all, err := s.ListBatches(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("ListBatches(0) returned %d batches, want 4", len(all))
	}
	if all[0].ID != ids[3] || all[3].ID != ids[0] {
		t.Errorf("batches not newest first: %s ... %s", all[0].ID, all[3].ID)
	}

	limited, err := s.ListBatches(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].ID != ids[3] {
		t.Errorf("ListBatches(2) = %d batches", len(limited))
	}
}

func TestDeletions(t *testing.T) {
	s := newTestStore(t)
	b, err := s.CreateBatch("/root", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	records := []*Deletion{
		{BatchID: b.ID, Path: "/root/a/node_modules", Kind: "environment", Label: "npm", Outcome: "deleted", SizeBytes: 100},
		{BatchID: b.ID, Path: "/root/b/dist", Kind: "artifact", Label: "dist", Outcome: "failed", Error: "permission denied"},
	}
	for _, d := range records {
		if err := s.InsertDeletion(d); err != nil {
			t.Fatalf("InsertDeletion() error = %v", err)
		}
	}

	got, err := s.GetDeletions(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("GetDeletions() returned %d rows, want 2", len(got))
	}
	for i, want := range records {
		if *got[i] != *want {
			t.Errorf("deletion %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestInsertDeletion_UnknownBatch(t *testing.T) {
	s := newTestStore(t)
	err := s.InsertDeletion(&Deletion{BatchID: "ghost", Path: "/x", Kind: "artifact", Outcome: "deleted"})
	if err == nil {
		t.Error("expected foreign key violation for unknown batch")
	}
}

func TestTotalBytesFreed(t *testing.T) {
	s := newTestStore(t)

	total, err := s.TotalBytesFreed()
	if err != nil || total != 0 {
		t.Fatalf("empty TotalBytesFreed() = %d, %v", total, err)
	}

	for _, n := range []int64{100, 250} {
		b, err := s.CreateBatch("/root", time.Now())
		if err != nil {
			t.Fatal(err)
		}
		b.BytesFreed = n
		if err := s.CompleteBatch(b); err != nil {
			t.Fatal(err)
		}
	}

	total, err = s.TotalBytesFreed()
	if err != nil {
		t.Fatal(err)
	}
	if total != 350 {
		t.Errorf("TotalBytesFreed() = %d, want 350", total)
	}
}
