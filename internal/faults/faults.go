// Package faults defines the error classification markers shared across the
// organizer, journal, and CLI.
//
// Per-file and per-record failures are collected into outcome reports and
// never carry these markers; the markers classify failures that abort a whole
// call, so the CLI can distinguish bad input from a broken History store.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrPersistence   = errors.New("persistence error")
	ErrConflict      = errors.New("conflict resolution exhausted")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatalPersistence reports whether err indicates the History store could
// not be written, which voids the undo guarantee for the current call.
func IsFatalPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
