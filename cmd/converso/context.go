package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"converso/internal/config"
	"converso/internal/logging"
	"converso/internal/protocol"
	"converso/internal/workerclient"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		if cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logging.NewComponentLogger(logger, "cli")
	})
	return c.logger
}

// runWorker executes one command against a fresh worker process, streaming
// progress events to onProgress.
func (c *commandContext) runWorker(ctx context.Context, command string, args map[string]any, onProgress func(protocol.ProgressEvent)) (*protocol.Response, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client := workerclient.New(c.ensureLogger(), workerclient.WithBinary(cfg.Worker.Binary))
	req := protocol.Request{
		Command:     command,
		Args:        args,
		AuthToken:   c.authToken(cfg),
		DeviceToken: workerclient.NewDeviceToken(),
		Timeout:     cfg.Worker.TimeoutSeconds,
	}
	return client.Execute(ctx, req, onProgress)
}

// authToken returns the configured bearer credential, minting an ephemeral
// one when none is configured. Workers shape-check the token only.
func (c *commandContext) authToken(cfg *config.Config) string {
	if token := cfg.BearerToken(); token != "" {
		return token
	}
	return "Bearer " + uuid.NewString()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
