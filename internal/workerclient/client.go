package workerclient

import (
	"bufio"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"converso/internal/logging"
	"converso/internal/protocol"
	"converso/internal/services"
)

var commandContext = exec.CommandContext

// Option configures the client.
type Option func(*Client)

// WithBinary overrides the default worker binary.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// Client spawns worker processes. One Execute call is one worker lifetime.
type Client struct {
	binary string
	logger *slog.Logger
}

// New constructs a client. The logger may be nil.
func New(logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	client := &Client{binary: "converso-worker", logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewDeviceToken returns a fresh identifier for tying worker responses back
// to this host invocation.
func NewDeviceToken() string {
	return uuid.NewString()
}

// Execute runs one request through a fresh worker process. Progress lines
// invoke onProgress as they arrive; the terminal response is returned once
// the process exits. The context deadline kills the worker outright, on top
// of the worker's own request timeout.
func (c *Client) Execute(ctx context.Context, req protocol.Request, onProgress func(protocol.ProgressEvent)) (*protocol.Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "", err.Error(), nil)
	}
	if req.DeviceToken == "" {
		req.DeviceToken = NewDeviceToken()
	}

	// Give the worker its own timeout plus a little slack to report it.
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Second+5*time.Second)
	defer cancel()

	cmd := commandContext(runCtx, c.binary) //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, "worker stdin", "", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, "worker stdout", "", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, "worker stderr", "", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrProtocol, "start worker", "", err)
	}

	line, err := protocol.EncodeLine(req)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}

	var terminal *protocol.Response
	group, _ := errgroup.WithContext(runCtx)

	group.Go(func() error {
		defer stdin.Close()
		if _, err := stdin.Write(line); err != nil {
			return services.Wrap(services.ErrProtocol, "write request", "", err)
		}
		return nil
	})

	group.Go(func() error {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			resp, err := protocol.DecodeResponse([]byte(text))
			if err != nil {
				c.logger.Warn("unparseable worker line", logging.String("line", text))
				continue
			}
			if resp.Terminal() {
				final := resp
				terminal = &final
				continue
			}
			if onProgress != nil && resp.Progress != nil {
				onProgress(*resp.Progress)
			}
		}
		if err := scanner.Err(); err != nil {
			return services.Wrap(services.ErrProtocol, "read worker output", "", err)
		}
		return nil
	})

	group.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			c.logger.Debug("worker stderr", logging.String("line", scanner.Text()))
		}
		return nil
	})

	pumpErr := group.Wait()
	waitErr := cmd.Wait()

	// Workers emit an error line before a non-zero exit, so a captured
	// terminal response wins over the exit status.
	if terminal != nil {
		return terminal, nil
	}
	if pumpErr != nil {
		return nil, pumpErr
	}
	if runCtx.Err() != nil {
		return nil, services.Wrap(services.ErrTimeout, "", "worker did not respond within the deadline", runCtx.Err())
	}
	if waitErr != nil {
		return nil, services.Wrap(services.ErrProtocol, "worker exited", "", waitErr)
	}
	return nil, services.Wrap(services.ErrProtocol, "", "worker produced no terminal response", nil)
}
