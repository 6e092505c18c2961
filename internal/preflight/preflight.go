package preflight

import (
	"context"

	"tidy/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preflight checks for the given config and target
// directory.
func RunAll(_ context.Context, cfg *config.Config, targetDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Target directory (always checked)
	results = append(results, CheckDirectoryAccess("Target directory", targetDir))

	// Log directory (when configured)
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	// History location: the store creates the file lazily, so only the
	// enclosing directory chain needs to be writable.
	results = append(results, CheckHistoryLocation("History location", cfg.HistoryPath(targetDir)))

	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
