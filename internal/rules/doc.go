// Package rules maps filenames to category names.
//
// Resolution order: custom regex rules in registration order (first match
// wins), then the case-insensitive extension table, then the fixed fallback
// category. Lookup is pure with respect to a table snapshot; the table never
// touches the filesystem.
package rules
