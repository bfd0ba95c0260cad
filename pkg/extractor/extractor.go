package extractor

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	pidGrammar     = regexp.MustCompile(`^\d+$`)
	secondsGrammar = regexp.MustCompile(`^\d+\.?\d*$`)
)

type options struct {
	stripAllSuffix bool
}

// Option configures an Extractor.
type Option func(*options)

// WithStripAllSuffix controls how the split strategy removes the "s" unit
// from the time field. When true every trailing "s" is removed ("1.5ss"
// parses as 1.5); when false at most one is removed. Defaults to true.
// The pattern strategy ignores this option.
func WithStripAllSuffix(v bool) Option {
	return func(o *options) {
		o.stripAllSuffix = v
	}
}

// New creates the Extractor for the given strategy.
func New(strategy Strategy, opts ...Option) (Extractor, error) {
	o := options{stripAllSuffix: true}
	for _, opt := range opts {
		opt(&o)
	}

	switch strategy {
	case StrategyPattern:
		return NewPatternExtractor(), nil
	case StrategySplit:
		return NewSplitExtractor(o.stripAllSuffix), nil
	default:
		return nil, fmt.Errorf("unknown extractor strategy %q (must be pattern or split)", strategy)
	}
}

// ParseStrategy validates a strategy name. An empty name selects DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "":
		return DefaultStrategy, nil
	case StrategyPattern, StrategySplit:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("unknown extractor strategy %q (must be pattern or split)", name)
	}
}

// Strategies lists the available strategy names.
func Strategies() []string {
	return []string{string(StrategyPattern), string(StrategySplit)}
}

// parsePID accepts one or more ASCII digits that fit in an int.
func parsePID(s string) (int, bool) {
	if !pidGrammar.MatchString(s) {
		return 0, false
	}
	pid, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return pid, true
}

// parseSeconds accepts digits with an optional decimal point and fraction.
// Signs, exponents, and a missing integer part are rejected.
func parseSeconds(s string) (float64, bool) {
	if !secondsGrammar.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
