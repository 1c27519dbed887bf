// Package download composes format selection, engine option assembly, and
// progress translation into the worker's download, list_formats, and info
// command handlers. One invocation owns its format listing and output
// directory lock for the lifetime of a single request.
package download
