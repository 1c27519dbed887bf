// Package bridge owns the worker side of the line-oriented JSON channel.
// It reads exactly one request from the input stream, shape-checks the
// bearer credential, and serializes progress and terminal responses as
// whole JSON lines through a single writer.
package bridge
