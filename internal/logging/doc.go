// Package logging builds slog loggers for the host CLI and worker processes.
//
// It provides console and JSON handlers, attribute helpers, and a no-op
// logger for tests. Worker processes must log to stderr only: stdout is the
// wire-protocol channel and a stray log line there would corrupt the
// response stream.
package logging
