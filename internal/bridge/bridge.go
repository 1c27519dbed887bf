package bridge

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
	"sync"

	"converso/internal/logging"
	"converso/internal/protocol"
	"converso/internal/services"
)

// Bridge mediates one request/response exchange over a pair of streams.
// All writes go through a single mutex so progress lines and the terminal
// line never interleave.
type Bridge struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger

	authToken   string
	deviceToken string
}

// New returns a Bridge reading requests from in and writing responses to
// out. The logger may be nil.
func New(in io.Reader, out io.Writer, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bridge{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// ReadRequest blocks until one line arrives on the input stream and parses
// it. The request's credentials are retained for ValidateAuth. Failures are
// protocol errors; the caller decides how to surface them.
func (b *Bridge) ReadRequest() (protocol.Request, error) {
	line, err := b.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return protocol.Request{}, services.Wrap(services.ErrProtocol, "read request", "", err)
	}
	req, err := protocol.DecodeRequest([]byte(line))
	if err != nil {
		return protocol.Request{}, services.Wrap(services.ErrProtocol, "", err.Error(), nil)
	}
	b.authToken = req.AuthToken
	b.deviceToken = req.DeviceToken
	return req, nil
}

// SendResponse writes one response as a whole JSON line.
func (b *Bridge) SendResponse(resp protocol.Response) error {
	payload, err := protocol.EncodeLine(resp)
	if err != nil {
		return services.Wrap(services.ErrProtocol, "encode response", "", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.out.Write(payload); err != nil {
		return services.Wrap(services.ErrProtocol, "write response", "", err)
	}
	if flusher, ok := b.out.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			return services.Wrap(services.ErrProtocol, "flush response", "", err)
		}
	}
	return nil
}

// SendProgress emits an intermediate progress line. The exchange stays open.
func (b *Bridge) SendProgress(stage string, current, total int64, message string) error {
	event := protocol.NewProgress(stage, current, total, message)
	return b.SendResponse(protocol.NewProgressResponse(event))
}

// SendError emits a terminal failure line carrying the given message.
func (b *Bridge) SendError(message string) error {
	return b.SendResponse(protocol.NewError(message))
}

// ValidateAuth shape-checks the credential captured by ReadRequest. Only
// presence and the bearer prefix are verified; signature validation happens
// upstream of this process.
func (b *Bridge) ValidateAuth() error {
	if strings.TrimSpace(b.authToken) == "" {
		return services.Wrap(services.ErrAuth, "", "Authentication required", nil)
	}
	if !strings.HasPrefix(b.authToken, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(b.authToken, "Bearer ")) == "" {
		return services.Wrap(services.ErrAuth, "", "Invalid token format", nil)
	}
	return nil
}

// DeviceToken returns the device identifier from the last request read.
func (b *Bridge) DeviceToken() string {
	return b.deviceToken
}
