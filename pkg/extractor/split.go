package extractor

import (
	"strings"
)

// SplitExtractor reads comma-delimited records of the form
// <anything>,PID-<n>,<seconds>[s][,...].
//
// A line with fewer than three fields, or whose PID or time field does not
// parse, contributes nothing.
type SplitExtractor struct {
	stripAllSuffix bool
}

// NewSplitExtractor creates a split-strategy extractor.
func NewSplitExtractor(stripAllSuffix bool) *SplitExtractor {
	return &SplitExtractor{stripAllSuffix: stripAllSuffix}
}

// Name returns the strategy name.
func (e *SplitExtractor) Name() string {
	return string(StrategySplit)
}

// Extract returns at most one sample for the line.
func (e *SplitExtractor) Extract(line string) []Sample {
	if !strings.Contains(line, Marker) {
		return nil
	}

	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 3 {
		return nil
	}

	pidText, ok := strings.CutPrefix(strings.TrimSpace(fields[1]), Marker)
	if !ok {
		return nil
	}
	pid, ok := parsePID(pidText)
	if !ok {
		return nil
	}

	seconds, ok := parseSeconds(e.trimUnit(strings.TrimSpace(fields[2])))
	if !ok {
		return nil
	}

	return []Sample{{PID: pid, Seconds: seconds}}
}

func (e *SplitExtractor) trimUnit(field string) string {
	if e.stripAllSuffix {
		return strings.TrimRight(field, "s")
	}
	return strings.TrimSuffix(field, "s")
}
