package organizer

import "tidy/internal/journal"

// Failure reports a single file the pass could not move.
type Failure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// OrganizeReport summarizes one organize pass.
type OrganizeReport struct {
	OperationID string               `json:"operation_id,omitempty"`
	Moved       []journal.MoveRecord `json:"moved"`
	Skipped     []string             `json:"skipped,omitempty"`
	Failures    []Failure            `json:"failures,omitempty"`
}

// UndoResult pairs one undone operation with the directories the reconciler
// removed afterwards.
type UndoResult struct {
	Report      journal.UndoReport `json:"report"`
	RemovedDirs []string           `json:"removed_dirs,omitempty"`
}
