// Package main hosts the tidy CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into organize
// passes, undo and cleanup operations, history inspection, and rule and
// configuration maintenance. It centralizes configuration resolution, target
// directory selection, and logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
