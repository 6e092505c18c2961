package journal_test

import (
	"context"
	"path/filepath"
	"testing"

	"tidy/internal/journal"
)

func openSQLite(t *testing.T, path string) *journal.SQLiteStore {
	t.Helper()
	store, err := journal.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tidy", "history.db")
	store := openSQLite(t, path)
	ctx := context.Background()

	want := sampleOperations()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(got))
	}
	if got[0].ID != "op-1" || got[1].ID != "op-2" {
		t.Fatalf("operation order wrong: %s, %s", got[0].ID, got[1].ID)
	}
	if len(got[0].Records) != 2 {
		t.Fatalf("expected 2 records in first operation, got %d", len(got[0].Records))
	}
	rec := got[0].Records[0]
	if rec.Source != "/target/a.jpg" || rec.Destination != "/target/images/a.jpg" {
		t.Fatalf("record paths wrong: %+v", rec)
	}
	if rec.CreatedDir != "/target/images" {
		t.Fatalf("created_dir lost: %+v", rec)
	}
	if got[0].Records[1].CreatedDir != "" {
		t.Fatalf("expected empty created_dir, got %q", got[0].Records[1].CreatedDir)
	}
	if !rec.MovedAt.Equal(want[0].Records[0].MovedAt) {
		t.Fatalf("timestamp drift: %v vs %v", rec.MovedAt, want[0].Records[0].MovedAt)
	}
}

func TestSQLiteStoreFreshDatabaseIsEmpty(t *testing.T) {
	store := openSQLite(t, filepath.Join(t.TempDir(), "history.db"))
	ops, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected empty history, got %d operations", len(ops))
	}
}

func TestSQLiteStoreSaveReplacesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store := openSQLite(t, path)
	ctx := context.Background()

	ops := sampleOperations()
	if err := store.Save(ctx, ops); err != nil {
		t.Fatal(err)
	}
	// Popping the newest operation rewrites the remainder.
	if err := store.Save(ctx, ops[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "op-1" {
		t.Fatalf("expected only op-1 to remain, got %+v", got)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first := openSQLite(t, path)
	if err := first.Save(ctx, sampleOperations()); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second := openSQLite(t, path)
	got, err := second.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected history to survive reopen, got %d operations", len(got))
	}
}
