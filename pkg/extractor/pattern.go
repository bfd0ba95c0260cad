package extractor

import (
	"regexp"
	"strings"
)

// samplePattern matches PID-<digits>,<digits>[.[digits]][s].
var samplePattern = regexp.MustCompile(`PID-(\d+),(\d+\.?\d*)s?`)

// PatternExtractor finds every non-overlapping sample occurrence in a line.
type PatternExtractor struct {
	pattern *regexp.Regexp
}

// NewPatternExtractor creates a pattern-strategy extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{pattern: samplePattern}
}

// Name returns the strategy name.
func (e *PatternExtractor) Name() string {
	return string(StrategyPattern)
}

// Extract returns one sample per occurrence. An occurrence whose numbers do
// not convert is dropped without affecting the others.
func (e *PatternExtractor) Extract(line string) []Sample {
	if !strings.Contains(line, Marker) {
		return nil
	}

	var samples []Sample
	for _, m := range e.pattern.FindAllStringSubmatch(line, -1) {
		pid, ok := parsePID(m[1])
		if !ok {
			continue
		}
		seconds, ok := parseSeconds(m[2])
		if !ok {
			continue
		}
		samples = append(samples, Sample{PID: pid, Seconds: seconds})
	}
	return samples
}
