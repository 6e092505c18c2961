package organizer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tidy/internal/testsupport"
)

func TestCleanupRemovesOnlyEmptyCategoryDirs(t *testing.T) {
	o, dir := newOrganizer(t)

	for _, name := range []string{"images", "documents", "projects"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// documents has contents, projects is not a known category.
	testsupport.SeedFiles(t, filepath.Join(dir, "documents"), "keep.pdf")

	removed, err := o.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != filepath.Join(dir, "images") {
		t.Fatalf("unexpected removals: %v", removed)
	}
	mustExist(t, filepath.Join(dir, "documents"))
	mustExist(t, filepath.Join(dir, "projects"))
	mustNotExist(t, filepath.Join(dir, "images"))
}

func TestCleanupIsIdempotent(t *testing.T) {
	o, dir := newOrganizer(t)

	if err := os.Mkdir(filepath.Join(dir, "misc"), 0o755); err != nil {
		t.Fatal(err)
	}

	first, err := o.Cleanup(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one removal, got %v", first)
	}

	second, err := o.Cleanup(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 0 {
		t.Fatalf("second cleanup must remove nothing, got %v", second)
	}
}

func TestCleanupNeverTouchesTargetRoot(t *testing.T) {
	o, dir := newOrganizer(t)

	if _, err := o.Cleanup(context.Background()); err != nil {
		t.Fatal(err)
	}
	mustExist(t, dir)
}
