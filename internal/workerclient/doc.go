// Package workerclient runs one worker process per command from the host
// side: it writes a single request line to the worker's stdin, streams
// progress responses from its stdout, and returns the terminal response.
package workerclient
