package config

import "fmt"

var validModes = map[string]bool{
	"audio":       true,
	"video":       true,
	"merge":       true,
	"progressive": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if !validModes[c.Defaults.Mode] {
		return fmt.Errorf("defaults.mode must be one of audio, video, merge, or progressive (got %q)", c.Defaults.Mode)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
