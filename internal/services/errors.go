package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks a bad or missing request argument.
	ErrValidation = errors.New("validation error")
	// ErrExternalTool marks a required external binary that is absent or broken.
	ErrExternalTool = errors.New("external tool error")
	// ErrEngine marks a failure reported by the retrieval engine itself.
	ErrEngine = errors.New("engine error")
	// ErrUnknownCommand marks a request for a command no handler serves.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrAuth marks a missing or malformed credential. Fatal to the process.
	ErrAuth = errors.New("authentication error")
	// ErrProtocol marks a malformed or missing request. Fatal to the process.
	ErrProtocol = errors.New("protocol error")
	// ErrTimeout marks an exceeded execution deadline. Fatal to the process.
	ErrTimeout = errors.New("timeout")
)

// Wrap tags err with marker and prefixes operation context. The marker should
// be one of the sentinels above so callers can classify with errors.Is.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrEngine
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether err must terminate the worker process instead of
// being reported as an application-level error Response.
func Fatal(err error) bool {
	return errors.Is(err, ErrProtocol) || errors.Is(err, ErrAuth) || errors.Is(err, ErrTimeout)
}

// Message strips the sentinel prefix from a wrapped error, leaving the
// user-facing text carried on the wire.
func Message(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	for _, marker := range []error{ErrValidation, ErrExternalTool, ErrEngine, ErrUnknownCommand, ErrAuth, ErrProtocol, ErrTimeout} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(text, prefix) {
			return strings.TrimPrefix(text, prefix)
		}
	}
	return text
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
