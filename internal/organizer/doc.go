// Package organizer drives the organize, undo, and cleanup passes over the
// target directory.
//
// OrganizeFiles scans the target's immediate entries, resolves each file's
// category through the rules table, and moves it into the category
// subdirectory with collision-safe naming, recording every move in the
// journal. Undo reverses the journal's operations and hands the directories
// an operation created to the reconciler, which removes only the ones that
// are empty again. Per-file failures are collected into the pass report and
// never abort the rest of the pass.
package organizer
