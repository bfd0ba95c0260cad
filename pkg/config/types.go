// Package config provides configuration loading and validation for pidshare.
package config

import (
	"github.com/ccollicutt/pidshare/pkg/extractor"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// LogFile is the log file to analyze.
	LogFile string `yaml:"log_file"`

	// Process is the PID whose share is reported.
	Process int `yaml:"process"`

	// Extractor selects and tunes the line extraction strategy.
	Extractor ExtractorConfig `yaml:"extractor"`

	// Output is the output format (text, json, table).
	Output string `yaml:"output"`

	// MetricsFile, when set, receives run counters in Prometheus text format.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// ExtractorConfig defines how samples are pulled from log lines.
type ExtractorConfig struct {
	// Strategy is pattern or split.
	Strategy string `yaml:"strategy"`

	// StripAllSuffix removes every trailing "s" from the split strategy's
	// time field instead of at most one.
	StripAllSuffix bool `yaml:"strip_all_suffix"`

	// strategy is the parsed strategy (populated during validation).
	strategy extractor.Strategy
}

// ParsedStrategy returns the validated strategy.
func (e *ExtractorConfig) ParsedStrategy() extractor.Strategy {
	if e.strategy == "" {
		return extractor.DefaultStrategy
	}
	return e.strategy
}

// Options returns the extractor options implied by the configuration.
func (e *ExtractorConfig) Options() []extractor.Option {
	return []extractor.Option{extractor.WithStripAllSuffix(e.StripAllSuffix)}
}

// NewExtractor builds the configured extractor.
func (e *ExtractorConfig) NewExtractor() (extractor.Extractor, error) {
	return extractor.New(e.ParsedStrategy(), e.Options()...)
}
