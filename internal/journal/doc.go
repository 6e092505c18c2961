// Package journal records file moves as reversible operations and persists
// them so an organize pass can be undone after a process restart.
//
// A MoveRecord describes one relocation; an Operation groups the records of
// one organize pass; the Journal owns the ordered History of operations and
// is the only component that mutates it. Every mutating call (commit, undo)
// rewrites the History through a Store before it is considered durable; a
// store failure is surfaced to the caller because it voids the undo
// guarantee.
//
// Two Store encodings exist: a human-inspectable JSON file (default) and a
// SQLite database. Both persist the same flattened record list tagged with
// operation identifiers, so the encoding can change without touching Journal
// semantics.
//
// The journal assumes a single writer. Nothing here coordinates concurrent
// processes against the same target directory; that is a documented
// limitation, not an oversight.
package journal
