// Package history persists the outcome of worker download requests in a
// SQLite database so the host CLI can list what was fetched, where it went,
// and whether it succeeded.
package history
