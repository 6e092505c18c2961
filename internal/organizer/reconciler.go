package organizer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tidy/internal/logging"
)

// reconciler removes category directories that organizing created and that
// are empty again. It never touches the target root, pre-existing
// directories, or anything with contents.
type reconciler struct {
	targetDir string
	logger    *slog.Logger
}

func newReconciler(targetDir string, logger *slog.Logger) *reconciler {
	return &reconciler{targetDir: targetDir, logger: logger}
}

// removeEmptied deletes the given directories when they exist, are empty,
// and are not the target root. It returns the paths actually removed;
// everything else is left alone.
func (r *reconciler) removeEmptied(dirs []string) []string {
	var removed []string
	for _, dir := range dirs {
		if dir == "" || dir == r.targetDir {
			continue
		}
		ok, err := r.removeIfEmpty(dir)
		if err != nil {
			r.logger.Warn("directory removal failed",
				logging.String("dir", dir),
				logging.Error(err))
			continue
		}
		if ok {
			removed = append(removed, dir)
		}
	}
	return removed
}

// cleanup removes empty immediate subdirectories of the target whose names
// are known categories. Running it twice is a no-op the second time.
func (r *reconciler) cleanup(categories []string) ([]string, error) {
	var removed []string
	for _, category := range categories {
		dir := filepath.Join(r.targetDir, category)
		if dir == r.targetDir {
			continue
		}
		ok, err := r.removeIfEmpty(dir)
		if err != nil {
			return removed, fmt.Errorf("cleanup %s: %w", dir, err)
		}
		if ok {
			removed = append(removed, dir)
		}
	}
	return removed, nil
}

func (r *reconciler) removeIfEmpty(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}

	if err := os.Remove(dir); err != nil {
		return false, err
	}
	r.logger.Info("removed empty category directory", logging.String("dir", dir))
	return true, nil
}
