// Command converso-worker handles exactly one command request: it reads a
// JSON request line from stdin, streams progress lines to stdout, emits one
// terminal response, and exits. Logs go to stderr so stdout stays a clean
// protocol channel.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"converso/internal/bridge"
	"converso/internal/config"
	"converso/internal/logging"
	"converso/internal/module"
	"converso/internal/protocol"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, _, _, err := config.Load(os.Getenv("CONVERSO_CONFIG"))
	if err != nil {
		// No usable config still owes the host a terminal line.
		emitStartupFailure("Worker configuration error: " + err.Error())
		return module.ExitProtocol
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		emitStartupFailure("Worker logging error: " + err.Error())
		return module.ExitProtocol
	}
	logger = logging.NewComponentLogger(logger, "worker")

	b := bridge.New(os.Stdin, os.Stdout, logger)
	m := module.New(b, logger)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	m.SetInterrupt(interrupt)

	registerHandlers(m, b, cfg, logger)

	return m.Run(context.Background())
}

func emitStartupFailure(message string) {
	if payload, err := protocol.EncodeLine(protocol.NewError(message)); err == nil {
		_, _ = os.Stdout.Write(payload)
	}
}
