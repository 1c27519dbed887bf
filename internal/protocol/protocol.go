package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeoutSeconds is applied to requests that omit a timeout or carry a
// non-positive one, matching the host contract.
const DefaultTimeoutSeconds = 300

// Request is the single command sent from the host to a worker process.
type Request struct {
	Command     string         `json:"command"`
	Args        map[string]any `json:"args"`
	AuthToken   string         `json:"auth_token"`
	DeviceToken string         `json:"device_token"`
	Timeout     int            `json:"timeout"`
}

// Response is one line written from the worker back to the host. Intermediate
// lines carry a Progress payload with Success true and empty Data; the final
// line reflects the command outcome and never carries Progress.
type Response struct {
	Success  bool           `json:"success"`
	Data     map[string]any `json:"data"`
	Error    string         `json:"error,omitempty"`
	Progress *ProgressEvent `json:"progress,omitempty"`
}

// ProgressEvent reports incremental progress for a long-running command.
type ProgressEvent struct {
	Stage      string  `json:"stage"`
	Current    int64   `json:"current"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
	Timestamp  float64 `json:"timestamp"`
}

// timeNow is swapped in tests to pin progress timestamps.
var timeNow = time.Now

// NewProgress builds a ProgressEvent with the percentage derived from
// current/total and a unix-seconds timestamp. A non-positive total yields a
// zero percentage.
func NewProgress(stage string, current, total int64, message string) ProgressEvent {
	return ProgressEvent{
		Stage:      stage,
		Current:    current,
		Total:      total,
		Percentage: Percentage(current, total),
		Message:    message,
		Timestamp:  float64(timeNow().UnixNano()) / float64(time.Second),
	}
}

// Percentage computes current/total*100, or 0 when total is not positive.
func Percentage(current, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(current) / float64(total) * 100
}

// NewResult wraps handler output in a successful terminal Response.
func NewResult(data map[string]any) Response {
	if data == nil {
		data = map[string]any{}
	}
	return Response{Success: true, Data: data}
}

// NewError builds a terminal error Response.
func NewError(message string) Response {
	return Response{Success: false, Data: map[string]any{}, Error: message}
}

// NewProgressResponse wraps a ProgressEvent in an intermediate Response.
func NewProgressResponse(event ProgressEvent) Response {
	return Response{Success: true, Data: map[string]any{}, Progress: &event}
}

// Normalize fills request defaults after decoding.
func (r *Request) Normalize() {
	if r.Args == nil {
		r.Args = map[string]any{}
	}
	if r.Timeout <= 0 {
		r.Timeout = DefaultTimeoutSeconds
	}
}

// Validate reports the first structural problem with the request.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Command) == "" {
		return fmt.Errorf("command is required")
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// DecodeRequest parses one request line and applies defaults.
func DecodeRequest(line []byte) (Request, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return Request{}, fmt.Errorf("no input received")
	}
	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return Request{}, fmt.Errorf("parse request: %w", err)
	}
	req.Normalize()
	return req, nil
}

// EncodeLine serializes v as a single JSON line, newline included.
func EncodeLine(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return append(payload, '\n'), nil
}

// DecodeResponse parses one response line from a worker.
func DecodeResponse(line []byte) (Response, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return Response{}, fmt.Errorf("empty response line")
	}
	var resp Response
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return Response{}, fmt.Errorf("parse response: %w", err)
	}
	return resp, nil
}

// Terminal reports whether the response ends the exchange. Progress-carrying
// lines are intermediate; everything else is the single terminal message.
func (r Response) Terminal() bool {
	return r.Progress == nil
}
