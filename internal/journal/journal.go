package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tidy/internal/faults"
	"tidy/internal/fileutil"
	"tidy/internal/logging"
)

// Journal owns the session History: the ordered operations that have been
// applied to the filesystem and can still be undone.
type Journal struct {
	store   Store
	logger  *slog.Logger
	ops     []Operation
	current *Operation
}

// Open loads the persisted History (if any) and returns a Journal bound to
// the given store.
func Open(ctx context.Context, store Store, logger *slog.Logger) (*Journal, error) {
	ops, err := store.Load(ctx)
	if err != nil {
		return nil, faults.Wrap(faults.ErrPersistence, "journal", "load", "failed to read history", err)
	}
	return &Journal{
		store:  store,
		logger: logging.NewComponentLogger(logger, "journal"),
		ops:    ops,
	}, nil
}

// Begin starts collecting a new operation and returns its id. Records are
// not durable until Commit succeeds.
func (j *Journal) Begin() string {
	j.current = &Operation{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	return j.current.ID
}

// Record appends a completed move to the in-progress operation.
func (j *Journal) Record(rec MoveRecord) error {
	if j.current == nil {
		return errors.New("no operation in progress")
	}
	j.current.Records = append(j.current.Records, rec)
	return nil
}

// Commit appends the in-progress operation to the History and persists it.
// An operation with no records is discarded: the History only reflects
// operations that touched the filesystem.
func (j *Journal) Commit(ctx context.Context) error {
	if j.current == nil {
		return errors.New("no operation in progress")
	}
	op := j.current
	j.current = nil

	if len(op.Records) == 0 {
		return nil
	}

	j.ops = append(j.ops, *op)
	if err := j.store.Save(ctx, j.ops); err != nil {
		return faults.Wrap(faults.ErrPersistence, "journal", "commit", "history not durable", err)
	}

	j.logger.Info("operation committed",
		logging.String("operation_id", op.ID),
		logging.Int("records", len(op.Records)))
	return nil
}

// Operations returns the number of undoable operations in the History.
func (j *Journal) Operations() int {
	return len(j.ops)
}

// UndoLast pops the most recent operation and reverses its records, newest
// first. It returns (nil, nil) when the History is empty. Per-record
// failures (destination gone, unwritable source parent) are reported in the
// outcomes and never abort the rest of the operation; only a persistence
// failure aborts.
func (j *Journal) UndoLast(ctx context.Context) (*UndoReport, error) {
	if len(j.ops) == 0 {
		return nil, nil
	}

	op := j.ops[len(j.ops)-1]
	report := &UndoReport{OperationID: op.ID}

	for i := len(op.Records) - 1; i >= 0; i-- {
		rec := op.Records[i]
		outcome := UndoOutcome{Record: rec, Restored: true}
		if err := j.reverse(rec); err != nil {
			outcome.Restored = false
			outcome.Reason = err.Error()
			j.logger.Warn("record reversal failed",
				logging.String("destination", rec.Destination),
				logging.Error(err))
		} else {
			j.logger.Info("restored file",
				logging.String("from", rec.Destination),
				logging.String("to", rec.Source))
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	j.ops = j.ops[:len(j.ops)-1]
	if err := j.store.Save(ctx, j.ops); err != nil {
		return report, faults.Wrap(faults.ErrPersistence, "journal", "undo", "history not durable", err)
	}

	j.logger.Info("operation undone",
		logging.String("operation_id", op.ID),
		logging.Int("restored", report.Restored()),
		logging.Int("failed", report.Failed()))
	return report, nil
}

// UndoAll repeats UndoLast until the History is empty, aggregating reports
// newest operation first.
func (j *Journal) UndoAll(ctx context.Context) ([]UndoReport, error) {
	var reports []UndoReport
	for {
		report, err := j.UndoLast(ctx)
		if report != nil {
			reports = append(reports, *report)
		}
		if err != nil {
			return reports, err
		}
		if report == nil {
			return reports, nil
		}
	}
}

// History returns the flattened audit view across all operations, oldest
// first.
func (j *Journal) History() []HistoryEntry {
	var entries []HistoryEntry
	for _, op := range j.ops {
		for _, rec := range op.Records {
			entries = append(entries, entry(op.ID, rec))
		}
	}
	return entries
}

// reverse moves one record's file back to its source, recreating the source
// parent directory if it no longer exists.
func (j *Journal) reverse(rec MoveRecord) error {
	if _, err := os.Stat(rec.Destination); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("destination missing: %s", rec.Destination)
		}
		return fmt.Errorf("stat destination: %w", err)
	}
	if err := fileutil.EnsureParent(rec.Source); err != nil {
		return fmt.Errorf("recreate source directory %s: %w", filepath.Dir(rec.Source), err)
	}
	if err := fileutil.MoveFile(rec.Destination, rec.Source); err != nil {
		return fmt.Errorf("move back: %w", err)
	}
	return nil
}
