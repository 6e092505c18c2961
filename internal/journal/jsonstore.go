package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tidy/internal/logging"
)

// storedRecord is the JSON wire form: the flattened record list where the
// operation id acts as the boundary marker between operations.
type storedRecord struct {
	OperationID        string    `json:"operation_id"`
	OperationStartedAt time.Time `json:"operation_started_at"`
	Source             string    `json:"source"`
	Destination        string    `json:"destination"`
	Category           string    `json:"category"`
	CreatedDir         string    `json:"created_dir,omitempty"`
	MovedAt            time.Time `json:"moved_at"`
}

// JSONStore persists the History as one JSON array, rewritten atomically on
// every save so the file is always a complete, human-inspectable snapshot.
type JSONStore struct {
	path   string
	logger *slog.Logger
}

// NewJSONStore creates a store backed by the file at path. The file is
// created lazily on first save.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: logging.NewComponentLogger(logger, "history"),
	}
}

// Load reads the History from disk. A missing or empty file is a fresh start.
func (s *JSONStore) Load(_ context.Context) ([]Operation, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []storedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}

	var ops []Operation
	for _, rec := range records {
		if len(ops) == 0 || ops[len(ops)-1].ID != rec.OperationID {
			ops = append(ops, Operation{ID: rec.OperationID, StartedAt: rec.OperationStartedAt})
		}
		op := &ops[len(ops)-1]
		op.Records = append(op.Records, MoveRecord{
			Source:      rec.Source,
			Destination: rec.Destination,
			Category:    rec.Category,
			CreatedDir:  rec.CreatedDir,
			MovedAt:     rec.MovedAt,
		})
	}

	s.logger.Debug("loaded history",
		logging.Int("operations", len(ops)),
		logging.String("path", s.path))
	return ops, nil
}

// Save rewrites the History wholesale via a temp file rename.
func (s *JSONStore) Save(_ context.Context, ops []Operation) error {
	var records []storedRecord
	for _, op := range ops {
		for _, rec := range op.Records {
			records = append(records, storedRecord{
				OperationID:        op.ID,
				OperationStartedAt: op.StartedAt,
				Source:             rec.Source,
				Destination:        rec.Destination,
				Category:           rec.Category,
				CreatedDir:         rec.CreatedDir,
				MovedAt:            rec.MovedAt,
			})
		}
	}
	if records == nil {
		records = []storedRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp history file: %w", err)
	}
	return nil
}

// Close is a no-op for the JSON store.
func (s *JSONStore) Close() error { return nil }
