// Package extractor pulls per-process CPU time samples out of raw log lines.
//
// Two interchangeable strategies are provided. The split strategy expects
// comma-delimited records with the PID in the second field and the elapsed
// time in the third. The pattern strategy scans for every PID-<n>,<seconds>
// occurrence anywhere in the line.
package extractor

// Marker is the literal prefix of a process identifier in the log.
const Marker = "PID-"

// Sample is one (process, elapsed time) pair extracted from a log line.
type Sample struct {
	// PID is the non-negative process identifier.
	PID int

	// Seconds is the non-negative elapsed time attributed to the process.
	Seconds float64
}

// Extractor turns a single log line into zero or more samples.
// Implementations hold no state between lines.
type Extractor interface {
	// Name returns the strategy name (split, pattern).
	Name() string

	// Extract returns the samples found in line. Malformed input yields no
	// samples rather than an error.
	Extract(line string) []Sample
}

// Strategy selects an Extractor implementation.
type Strategy string

const (
	// StrategyPattern scans for every occurrence of the sample pattern.
	StrategyPattern Strategy = "pattern"

	// StrategySplit splits on commas and reads fixed field positions.
	StrategySplit Strategy = "split"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyPattern
