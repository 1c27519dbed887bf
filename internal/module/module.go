package module

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"converso/internal/bridge"
	"converso/internal/logging"
	"converso/internal/protocol"
	"converso/internal/services"
)

// Exit codes reported by Run. A well-formed terminal response, even one
// carrying an application-level error, exits zero. Only failures that break
// the protocol contract (malformed request, bad credential, deadline,
// interrupt) exit non-zero.
const (
	ExitOK       = 0
	ExitProtocol = 1
)

// Handler executes one command. The context is cancelled when the request
// deadline fires or the process is interrupted; handlers should pass it to
// anything that blocks. Returned errors become error responses, they never
// crash the process.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

type handlerResult struct {
	data map[string]any
	err  error
}

// Module routes the single request of a worker process to its handler.
type Module struct {
	bridge    *bridge.Bridge
	logger    *slog.Logger
	handlers  map[string]Handler
	interrupt <-chan os.Signal
}

// New returns a Module dispatching over b. The logger may be nil.
func New(b *bridge.Bridge, logger *slog.Logger) *Module {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Module{
		bridge:   b,
		logger:   logger,
		handlers: make(map[string]Handler),
	}
}

// Register binds a command name to its handler. Registration happens before
// Run; later calls replace the previous handler.
func (m *Module) Register(name string, handler Handler) {
	m.handlers[name] = handler
}

// SetInterrupt supplies the channel delivering host-initiated cancellation
// signals. Without one, interrupts are not observed.
func (m *Module) SetInterrupt(ch <-chan os.Signal) {
	m.interrupt = ch
}

// Run executes the request/response lifecycle exactly once and returns the
// process exit code. Every path emits one terminal response line first.
func (m *Module) Run(ctx context.Context) int {
	req, err := m.bridge.ReadRequest()
	if err != nil {
		return m.fatal(err)
	}
	if err := req.Validate(); err != nil {
		return m.fatal(services.Wrap(services.ErrProtocol, "", err.Error(), nil))
	}
	if err := m.bridge.ValidateAuth(); err != nil {
		return m.fatal(err)
	}

	m.logger.Info("dispatching command",
		logging.String("command", req.Command),
		logging.Int("timeout_seconds", req.Timeout))

	handler, ok := m.handlers[req.Command]
	if !ok {
		m.sendError(fmt.Sprintf("Unknown command: %s", req.Command))
		return ExitOK
	}

	deadline := time.Duration(req.Timeout) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	done := make(chan handlerResult, 1)
	go func() {
		data, err := handler(runCtx, req.Args)
		done <- handlerResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if services.Fatal(res.err) {
				return m.fatal(res.err)
			}
			m.sendError(services.Message(res.err))
			return ExitOK
		}
		if res.data == nil {
			res.data = map[string]any{}
		}
		if err := m.bridge.SendResponse(protocol.NewResult(res.data)); err != nil {
			m.logger.Error("send response failed", logging.Error(err))
			return ExitProtocol
		}
		return ExitOK
	case <-runCtx.Done():
		return m.fatal(services.Wrap(services.ErrTimeout, "", "Module execution timed out", nil))
	case <-m.interrupt:
		cancel()
		return m.fatal(services.Wrap(services.ErrProtocol, "", "Module execution interrupted", nil))
	}
}

func (m *Module) fatal(err error) int {
	m.logger.Error("request failed", logging.Error(err))
	m.sendError(services.Message(err))
	return ExitProtocol
}

func (m *Module) sendError(message string) {
	if err := m.bridge.SendError(message); err != nil {
		m.logger.Error("send error response failed", logging.Error(err))
	}
}
