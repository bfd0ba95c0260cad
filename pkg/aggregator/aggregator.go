package aggregator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ccollicutt/pidshare/pkg/extractor"
	"github.com/ccollicutt/pidshare/pkg/parser"
)

// Aggregator runs a single pass over a line source, extracting samples from
// each line and summing them per PID.
type Aggregator struct {
	extractor extractor.Extractor

	logger *zap.Logger
	clock  clock.Clock
}

// Option configures aggregator behavior.
type Option func(*Aggregator)

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock sets the clock used to stamp run statistics.
func WithClock(c clock.Clock) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.clock = c
		}
	}
}

// New creates an aggregator that uses e for line extraction.
func New(e extractor.Extractor, opts ...Option) (*Aggregator, error) {
	if e == nil {
		return nil, fmt.Errorf("extractor is required")
	}

	a := &Aggregator{
		extractor: e,
		logger:    zap.NewNop(),
		clock:     clock.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Stats describes one aggregation pass.
type Stats struct {
	// Strategy is the extractor strategy that was used.
	Strategy string `json:"strategy"`

	// LinesRead is the number of lines read from the source.
	LinesRead int `json:"lines_read"`

	// MarkerLines is the number of lines containing the PID marker.
	MarkerLines int `json:"marker_lines"`

	// LinesMatched is the number of lines that yielded at least one sample.
	LinesMatched int `json:"lines_matched"`

	// LinesSkipped is the number of marker lines that yielded no sample.
	LinesSkipped int `json:"lines_skipped"`

	// Samples is the number of samples folded into the table.
	Samples int `json:"samples"`

	// StartTime is when the pass began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the pass completed.
	EndTime time.Time `json:"end_time"`
}

// Duration returns how long the pass took.
func (s Stats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Result is the output of one aggregation pass.
type Result struct {
	Table *Table
	Stats Stats
}

// Aggregate reads every line from source and returns the per-PID totals.
// The source is read to completion but not closed; the caller owns it.
func (a *Aggregator) Aggregate(ctx context.Context, source parser.LineSource) (*Result, error) {
	result := &Result{
		Table: NewTable(),
		Stats: Stats{
			Strategy:  a.extractor.Name(),
			StartTime: a.clock.Now(),
		},
	}

	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		result.Stats.LinesRead++
		a.processLine(line, result)
	}

	result.Stats.EndTime = a.clock.Now()

	a.logger.Debug("aggregation complete",
		zap.String("strategy", result.Stats.Strategy),
		zap.Int("lines_read", result.Stats.LinesRead),
		zap.Int("samples", result.Stats.Samples),
		zap.Int("lines_skipped", result.Stats.LinesSkipped),
		zap.Int("pids", result.Table.Len()),
		zap.Duration("duration", result.Stats.Duration()),
	)

	return result, nil
}

func (a *Aggregator) processLine(line *parser.LogLine, result *Result) {
	samples := a.extractor.Extract(line.Content)

	if len(samples) == 0 {
		if strings.Contains(line.Content, extractor.Marker) {
			result.Stats.MarkerLines++
			result.Stats.LinesSkipped++
			a.logger.Debug("skipping malformed line",
				zap.String("source", line.Source),
				zap.Int("line", line.LineNum),
			)
		}
		return
	}

	result.Stats.MarkerLines++
	result.Stats.LinesMatched++
	for _, s := range samples {
		result.Table.Add(s)
		result.Stats.Samples++
	}
}
