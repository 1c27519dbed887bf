// Package config loads, normalizes, and validates Converso configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the host CLI and worker share: output directories, engine tuning, worker
// deadlines, and log settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, clamped engine values, and clear validation errors.
package config
