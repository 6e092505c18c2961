package organizer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tidy/internal/faults"
	"tidy/internal/fileutil"
	"tidy/internal/journal"
	"tidy/internal/logging"
)

// maxConflictAttempts bounds the numeric-suffix search for a free destination
// name before the move is reported as a conflict failure.
const maxConflictAttempts = 10000

// mover executes single-file moves into category subdirectories of the
// target, creating the category directory lazily and resolving name
// collisions with a numeric suffix.
type mover struct {
	targetDir string
	logger    *slog.Logger
}

func newMover(targetDir string, logger *slog.Logger) *mover {
	return &mover{targetDir: targetDir, logger: logger}
}

// move relocates the named file into its category directory and returns the
// record describing exactly what happened.
func (m *mover) move(name, category string) (journal.MoveRecord, error) {
	source := filepath.Join(m.targetDir, name)
	destDir := filepath.Join(m.targetDir, category)

	createdDir, err := m.ensureCategoryDir(destDir)
	if err != nil {
		return journal.MoveRecord{}, err
	}

	destination, err := m.resolveDestination(destDir, name)
	if err != nil {
		return journal.MoveRecord{}, err
	}

	if err := fileutil.MoveFile(source, destination); err != nil {
		return journal.MoveRecord{}, faults.Wrap(faults.ErrTransient, "organizer", "move file",
			fmt.Sprintf("failed to move %s", name), err)
	}

	m.logger.Info("moved file",
		logging.String("file", name),
		logging.String("category", category),
		logging.String("destination", destination))

	return journal.MoveRecord{
		Source:      source,
		Destination: destination,
		Category:    category,
		CreatedDir:  createdDir,
		MovedAt:     time.Now().UTC(),
	}, nil
}

// ensureCategoryDir creates the category directory when missing and reports
// the path it created, empty when the directory already existed.
func (m *mover) ensureCategoryDir(destDir string) (string, error) {
	if _, err := os.Stat(destDir); err == nil {
		return "", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat category directory %s: %w", destDir, err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create category directory %s: %w", destDir, err)
	}
	m.logger.Info("created category directory", logging.String("dir", destDir))
	return destDir, nil
}

// resolveDestination finds a free path for name inside destDir. On collision
// it appends _1, _2, ... before the extension.
func (m *mover) resolveDestination(destDir, name string) (string, error) {
	candidate := filepath.Join(destDir, name)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		return "", fmt.Errorf("stat destination %s: %w", candidate, err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for attempt := 1; attempt <= maxConflictAttempts; attempt++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, attempt, ext))
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", fmt.Errorf("stat destination %s: %w", candidate, err)
		}
	}
	return "", faults.Wrap(faults.ErrConflict, "organizer", "resolve destination",
		fmt.Sprintf("no free name for %s in %s", name, destDir), nil)
}
