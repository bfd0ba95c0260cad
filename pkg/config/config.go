package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pidshare/pkg/extractor"
	"github.com/ccollicutt/pidshare/pkg/output"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set, otherwise starts from
// DefaultConfig with environment overrides applied.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and resolves the extractor strategy.
func Validate(cfg *Config) error {
	if cfg.LogFile == "" {
		return errors.New("log_file: a log file is required")
	}

	if cfg.Process < 0 {
		return fmt.Errorf("process: must be >= 0, got %d", cfg.Process)
	}

	strategy, err := extractor.ParseStrategy(cfg.Extractor.Strategy)
	if err != nil {
		return fmt.Errorf("extractor.strategy: %w", err)
	}
	cfg.Extractor.strategy = strategy

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if !output.IsFormat(cfg.Output) {
		return fmt.Errorf("output: invalid format %q (must be one of %v)", cfg.Output, output.Formats())
	}

	return nil
}
