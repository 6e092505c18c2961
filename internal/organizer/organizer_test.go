package organizer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tidy/internal/config"
	"tidy/internal/journal"
	"tidy/internal/logging"
	"tidy/internal/organizer"
	"tidy/internal/rules"
	"tidy/internal/testsupport"
)

func newOrganizer(t *testing.T, opts ...testsupport.ConfigOption) (*organizer.Organizer, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	return organizerForConfig(t, cfg), cfg.Paths.TargetDir
}

func organizerForConfig(t *testing.T, cfg *config.Config) *organizer.Organizer {
	t.Helper()
	table, err := rules.FromConfig(cfg)
	if err != nil {
		t.Fatalf("rules.FromConfig failed: %v", err)
	}
	store := journal.NewJSONStore(cfg.HistoryPath(cfg.Paths.TargetDir), logging.NewNop())
	j, err := journal.Open(context.Background(), store, logging.NewNop())
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}
	return organizer.New(cfg, table, j, logging.NewNop())
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected %s to be gone", path)
	}
}

func TestOrganizeFilesMovesByCategory(t *testing.T) {
	o, dir := newOrganizer(t)
	testsupport.SeedFiles(t, dir, "photo.JPG", "notes.pdf", "mystery.xyz")

	report, err := o.OrganizeFiles(context.Background())
	if err != nil {
		t.Fatalf("OrganizeFiles failed: %v", err)
	}
	if len(report.Moved) != 3 || len(report.Failures) != 0 {
		t.Fatalf("unexpected report: moved=%d failures=%d", len(report.Moved), len(report.Failures))
	}
	if report.OperationID == "" {
		t.Fatal("expected operation id on a pass that moved files")
	}

	mustExist(t, filepath.Join(dir, "images", "photo.JPG"))
	mustExist(t, filepath.Join(dir, "documents", "notes.pdf"))
	mustExist(t, filepath.Join(dir, "misc", "mystery.xyz"))
	mustNotExist(t, filepath.Join(dir, "photo.JPG"))

	if o.Operations() != 1 {
		t.Fatalf("expected 1 journaled operation, got %d", o.Operations())
	}
}

func TestOrganizeSkipsDirectoriesAndHiddenEntries(t *testing.T) {
	o, dir := newOrganizer(t)
	testsupport.SeedFiles(t, dir, "notes.txt", ".secret")
	if err := os.Mkdir(filepath.Join(dir, "existing"), 0o755); err != nil {
		t.Fatal(err)
	}

	report, err := o.OrganizeFiles(context.Background())
	if err != nil {
		t.Fatalf("OrganizeFiles failed: %v", err)
	}
	if len(report.Moved) != 1 {
		t.Fatalf("expected only notes.txt moved, got %d", len(report.Moved))
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("expected 2 skipped entries, got %v", report.Skipped)
	}
	mustExist(t, filepath.Join(dir, ".secret"))
	mustExist(t, filepath.Join(dir, "existing"))
}

func TestOrganizeEmptyTargetLeavesNoOperation(t *testing.T) {
	o, _ := newOrganizer(t)

	report, err := o.OrganizeFiles(context.Background())
	if err != nil {
		t.Fatalf("OrganizeFiles failed: %v", err)
	}
	if len(report.Moved) != 0 || report.OperationID != "" {
		t.Fatalf("unexpected report for empty target: %+v", report)
	}
	if o.Operations() != 0 {
		t.Fatalf("expected empty history, got %d operations", o.Operations())
	}
}

func TestOrganizeResolvesNameConflicts(t *testing.T) {
	o, dir := newOrganizer(t)

	testsupport.SeedFiles(t, filepath.Join(dir, "documents"), "notes.pdf", "notes_1.pdf")
	testsupport.WriteFile(t, filepath.Join(dir, "notes.pdf"), "incoming")

	report, err := o.OrganizeFiles(context.Background())
	if err != nil {
		t.Fatalf("OrganizeFiles failed: %v", err)
	}
	if len(report.Moved) != 1 {
		t.Fatalf("expected 1 move, got %+v", report)
	}
	if got := report.Moved[0].Destination; got != filepath.Join(dir, "documents", "notes_2.pdf") {
		t.Fatalf("unexpected destination %s", got)
	}
	// Pre-existing files keep their content.
	data, err := os.ReadFile(filepath.Join(dir, "documents", "notes.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "notes.pdf" {
		t.Fatalf("existing file clobbered: %q", data)
	}
}

func TestOrganizeAppliesCustomRulesBeforeExtensions(t *testing.T) {
	o, dir := newOrganizer(t, testsupport.WithRule(`^invoice`, "finance"))
	testsupport.SeedFiles(t, dir, "invoice-march.pdf", "letter.pdf")

	if _, err := o.OrganizeFiles(context.Background()); err != nil {
		t.Fatal(err)
	}
	mustExist(t, filepath.Join(dir, "finance", "invoice-march.pdf"))
	mustExist(t, filepath.Join(dir, "documents", "letter.pdf"))
}

func TestUndoRoundTripRestoresTarget(t *testing.T) {
	o, dir := newOrganizer(t)

	// documents/ exists before organizing; images/ does not.
	if err := os.Mkdir(filepath.Join(dir, "documents"), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.SeedFiles(t, dir, "photo.jpg", "notes.pdf")

	if _, err := o.OrganizeFiles(context.Background()); err != nil {
		t.Fatal(err)
	}

	result, err := o.UndoLast(context.Background())
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	if result == nil || result.Report.Failed() != 0 {
		t.Fatalf("unexpected undo result: %+v", result)
	}

	mustExist(t, filepath.Join(dir, "photo.jpg"))
	mustExist(t, filepath.Join(dir, "notes.pdf"))
	// Created during the pass, removed by the reconciler.
	mustNotExist(t, filepath.Join(dir, "images"))
	// Pre-existing, left alone.
	mustExist(t, filepath.Join(dir, "documents"))

	if len(result.RemovedDirs) != 1 || result.RemovedDirs[0] != filepath.Join(dir, "images") {
		t.Fatalf("unexpected removed dirs: %v", result.RemovedDirs)
	}
	if o.Operations() != 0 {
		t.Fatalf("expected empty history, got %d", o.Operations())
	}
}

func TestUndoLastEmptyHistory(t *testing.T) {
	o, _ := newOrganizer(t)
	result, err := o.UndoLast(context.Background())
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestUndoAllReversesEveryPass(t *testing.T) {
	o, dir := newOrganizer(t)
	ctx := context.Background()

	testsupport.SeedFiles(t, dir, "one.jpg")
	if _, err := o.OrganizeFiles(ctx); err != nil {
		t.Fatal(err)
	}
	testsupport.SeedFiles(t, dir, "two.jpg")
	if _, err := o.OrganizeFiles(ctx); err != nil {
		t.Fatal(err)
	}
	if o.Operations() != 2 {
		t.Fatalf("expected 2 operations, got %d", o.Operations())
	}

	results, err := o.UndoAll(ctx)
	if err != nil {
		t.Fatalf("UndoAll failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 undo results, got %d", len(results))
	}

	mustExist(t, filepath.Join(dir, "one.jpg"))
	mustExist(t, filepath.Join(dir, "two.jpg"))
	mustNotExist(t, filepath.Join(dir, "images"))
	if o.Operations() != 0 {
		t.Fatalf("expected empty history, got %d", o.Operations())
	}
}

func TestUndoKeepsDirectoryWithForeignFile(t *testing.T) {
	o, dir := newOrganizer(t)
	ctx := context.Background()

	testsupport.SeedFiles(t, dir, "photo.jpg")
	if _, err := o.OrganizeFiles(ctx); err != nil {
		t.Fatal(err)
	}
	// The user drops an unrelated file into the created directory.
	testsupport.SeedFiles(t, filepath.Join(dir, "images"), "manual.jpg")

	result, err := o.UndoLast(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.RemovedDirs) != 0 {
		t.Fatalf("non-empty directory must survive undo, removed: %v", result.RemovedDirs)
	}
	mustExist(t, filepath.Join(dir, "images", "manual.jpg"))
	mustExist(t, filepath.Join(dir, "photo.jpg"))
}

func TestHistorySurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := cfg.Paths.TargetDir
	ctx := context.Background()

	first := organizerForConfig(t, cfg)
	testsupport.SeedFiles(t, dir, "photo.jpg")
	if _, err := first.OrganizeFiles(ctx); err != nil {
		t.Fatal(err)
	}

	second := organizerForConfig(t, cfg)
	if second.Operations() != 1 {
		t.Fatalf("expected persisted operation, got %d", second.Operations())
	}

	result, err := second.UndoLast(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Report.Failed() != 0 {
		t.Fatalf("undo across processes failed: %+v", result.Report.Outcomes)
	}
	mustExist(t, filepath.Join(dir, "photo.jpg"))
}
