package journal

import (
	"path/filepath"
	"time"
)

// MoveRecord identifies exactly one filesystem move. Immutable once created.
type MoveRecord struct {
	// Source is the file's path before organizing.
	Source string `json:"source"`
	// Destination is the conflict-free path the file was moved to.
	Destination string `json:"destination"`
	// Category is the bucket that determined the destination directory.
	Category string `json:"category"`
	// CreatedDir is the category directory the move created, empty when the
	// directory already existed. Undo removes it again once emptied.
	CreatedDir string `json:"created_dir,omitempty"`
	// MovedAt is when the move completed.
	MovedAt time.Time `json:"moved_at"`
}

// Operation is the ordered sequence of records produced by one organize pass.
type Operation struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"started_at"`
	Records   []MoveRecord `json:"records"`
}

// HistoryEntry is one row of the flattened, read-only audit view.
type HistoryEntry struct {
	OperationID string    `json:"operation_id"`
	File        string    `json:"file"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

// UndoOutcome reports the reversal attempt for a single record.
type UndoOutcome struct {
	Record   MoveRecord `json:"record"`
	Restored bool       `json:"restored"`
	// Reason explains a failed reversal; empty on success.
	Reason string `json:"reason,omitempty"`
}

// UndoReport aggregates the per-record outcomes of undoing one operation.
type UndoReport struct {
	OperationID string        `json:"operation_id"`
	Outcomes    []UndoOutcome `json:"outcomes"`
}

// Restored counts successfully reversed records.
func (r *UndoReport) Restored() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Restored {
			count++
		}
	}
	return count
}

// Failed counts records whose reversal failed.
func (r *UndoReport) Failed() int {
	return len(r.Outcomes) - r.Restored()
}

// CreatedDirs returns the unique category directories the undone operation
// had created, in record order. The reconciler removes the ones now empty.
func (r *UndoReport) CreatedDirs() []string {
	seen := map[string]struct{}{}
	var dirs []string
	for _, outcome := range r.Outcomes {
		dir := outcome.Record.CreatedDir
		if dir == "" {
			continue
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

// entry flattens a record into its audit view row.
func entry(opID string, rec MoveRecord) HistoryEntry {
	return HistoryEntry{
		OperationID: opID,
		File:        filepath.Base(rec.Source),
		From:        rec.Source,
		To:          rec.Destination,
		Category:    rec.Category,
		Timestamp:   rec.MovedAt,
	}
}
