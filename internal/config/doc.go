// Package config loads, normalizes, and validates tidy configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and rewrites the file when the CLI adds
// custom rules or extension mappings. The Config type centralizes every knob
// the CLI needs: target directory, history backend, category tables, and log
// routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
