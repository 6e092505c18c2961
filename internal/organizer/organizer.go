package organizer

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"

	"tidy/internal/config"
	"tidy/internal/journal"
	"tidy/internal/logging"
	"tidy/internal/rules"
)

// Organizer coordinates the mover, the journal, and the reconciler over one
// target directory.
type Organizer struct {
	cfg        *config.Config
	table      *rules.Table
	journal    *journal.Journal
	logger     *slog.Logger
	mover      *mover
	reconciler *reconciler
}

// New constructs an organizer for the configured target directory.
func New(cfg *config.Config, table *rules.Table, j *journal.Journal, logger *slog.Logger) *Organizer {
	componentLogger := logging.NewComponentLogger(logger, "organizer")
	return &Organizer{
		cfg:        cfg,
		table:      table,
		journal:    j,
		logger:     componentLogger,
		mover:      newMover(cfg.Paths.TargetDir, componentLogger),
		reconciler: newReconciler(cfg.Paths.TargetDir, componentLogger),
	}
}

// OrganizeFiles runs one organize pass over the target's immediate entries.
// Subdirectories and hidden entries are skipped. Per-file failures land in
// the report; the pass keeps going. The journal operation is committed once
// the pass finishes, and an operation that moved nothing leaves no trace in
// the History.
func (o *Organizer) OrganizeFiles(ctx context.Context) (*OrganizeReport, error) {
	entries, err := os.ReadDir(o.cfg.Paths.TargetDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	report := &OrganizeReport{}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() || !entry.Type().IsRegular() {
			report.Skipped = append(report.Skipped, name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		o.logger.Info("nothing to organize", logging.String("target", o.cfg.Paths.TargetDir))
		return report, nil
	}

	report.OperationID = o.journal.Begin()
	o.logger.Info("organize pass started",
		logging.String("operation_id", report.OperationID),
		logging.Int("files", len(names)))

	for _, name := range names {
		category := o.table.CategoryFor(name)
		rec, err := o.mover.move(name, category)
		if err != nil {
			o.logger.Warn("file move failed",
				logging.String("file", name),
				logging.Error(err))
			report.Failures = append(report.Failures, Failure{File: name, Reason: err.Error()})
			continue
		}
		if err := o.journal.Record(rec); err != nil {
			return report, err
		}
		report.Moved = append(report.Moved, rec)
	}

	if err := o.journal.Commit(ctx); err != nil {
		return report, err
	}
	if len(report.Moved) == 0 {
		report.OperationID = ""
	}

	o.logger.Info("organize pass finished",
		logging.Int("moved", len(report.Moved)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Int("failed", len(report.Failures)))
	return report, nil
}

// UndoLast reverses the most recent operation and removes the category
// directories it created that are empty again. It returns (nil, nil) when
// the History is empty.
func (o *Organizer) UndoLast(ctx context.Context) (*UndoResult, error) {
	report, err := o.journal.UndoLast(ctx)
	if report == nil {
		return nil, err
	}
	result := &UndoResult{Report: *report}
	result.RemovedDirs = o.reconciler.removeEmptied(report.CreatedDirs())
	return result, err
}

// UndoAll reverses every operation in the History, newest first.
func (o *Organizer) UndoAll(ctx context.Context) ([]UndoResult, error) {
	var results []UndoResult
	for {
		result, err := o.UndoLast(ctx)
		if result != nil {
			results = append(results, *result)
		}
		if err != nil {
			return results, err
		}
		if result == nil {
			return results, nil
		}
	}
}

// Cleanup removes empty category directories from the target, regardless of
// whether organizing created them. Directory names outside the known
// category set are never touched.
func (o *Organizer) Cleanup(_ context.Context) ([]string, error) {
	return o.reconciler.cleanup(o.table.Categories())
}

// History exposes the journal's flattened audit view.
func (o *Organizer) History() []journal.HistoryEntry {
	return o.journal.History()
}

// Operations exposes the number of undoable operations.
func (o *Organizer) Operations() int {
	return o.journal.Operations()
}
