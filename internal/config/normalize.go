package config

import (
	"fmt"
	"strings"
)

const (
	minConcurrency = 1
	maxConcurrency = 16
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDefaults()
	c.normalizeEngine()
	c.normalizeWorker()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Mode = strings.ToLower(strings.TrimSpace(c.Defaults.Mode))
	if c.Defaults.Mode == "" {
		c.Defaults.Mode = defaultMode
	}
	c.Defaults.Container = strings.ToLower(strings.TrimSpace(c.Defaults.Container))
	c.Defaults.Quality = strings.TrimSpace(c.Defaults.Quality)
	if c.Defaults.Quality == "" {
		c.Defaults.Quality = defaultQuality
	}
}

func (c *Config) normalizeEngine() {
	c.Engine.Binary = strings.TrimSpace(c.Engine.Binary)
	if c.Engine.Binary == "" {
		c.Engine.Binary = defaultEngineBinary
	}
	c.Engine.FFmpegBinary = strings.TrimSpace(c.Engine.FFmpegBinary)
	if c.Engine.FFmpegBinary == "" {
		c.Engine.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Engine.Concurrency < minConcurrency {
		c.Engine.Concurrency = minConcurrency
	}
	if c.Engine.Concurrency > maxConcurrency {
		c.Engine.Concurrency = maxConcurrency
	}
	if c.Engine.Retries < 0 {
		c.Engine.Retries = defaultRetries
	}
	if c.Engine.FragmentRetries < 0 {
		c.Engine.FragmentRetries = defaultFragmentRetries
	}
	if c.Engine.SocketTimeout <= 0 {
		c.Engine.SocketTimeout = defaultSocketTimeout
	}
}

func (c *Config) normalizeWorker() {
	c.Worker.Binary = strings.TrimSpace(c.Worker.Binary)
	if c.Worker.Binary == "" {
		c.Worker.Binary = defaultWorkerBinary
	}
	if c.Worker.TimeoutSeconds <= 0 {
		c.Worker.TimeoutSeconds = defaultWorkerTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
