// Package preflight validates the environment before a pass touches the
// filesystem: the target directory must exist and be fully accessible, the
// log directory writable, and the history location usable. The status
// command renders the same results for diagnostics.
package preflight
