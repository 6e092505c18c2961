// Package logging assembles the structured slog loggers used across tidy.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and appends every high-level action (moves, undo outcomes,
// directory changes) to a timestamped log file so a human can audit what the
// organizer did. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the tool.
package logging
