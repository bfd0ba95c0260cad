package config

import (
	"os"

	"github.com/ccollicutt/pidshare/pkg/extractor"
)

// Default values for configuration.
const (
	DefaultLogFile = "system.log"
	DefaultProcess = 2
	DefaultOutput  = "text"
)

// Environment variable names.
const (
	EnvLogFile  = "PIDSHARE_LOG_FILE"
	EnvStrategy = "PIDSHARE_STRATEGY"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogFile: DefaultLogFile,
		Process: DefaultProcess,
		Extractor: ExtractorConfig{
			Strategy:       string(extractor.DefaultStrategy),
			StripAllSuffix: true,
		},
		Output: DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if path := os.Getenv(EnvLogFile); path != "" {
		c.LogFile = path
	}
	if strategy := os.Getenv(EnvStrategy); strategy != "" {
		c.Extractor.Strategy = strategy
	}
}
