// Package protocol defines the newline-delimited JSON messages exchanged
// between the host CLI and a worker process.
//
// A worker reads exactly one Request line from stdin, then writes zero or
// more progress-carrying Response lines followed by exactly one terminal
// Response line to stdout. Every message is a whole JSON document on a
// single line; no partial writes cross the process boundary.
//
// The types here are value objects: they are copied across the boundary via
// serialization and never share mutable state between host and worker.
package protocol
