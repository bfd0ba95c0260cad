// Package output provides formatting for share reports and user-facing failures.
package output

import (
	"time"

	"github.com/ccollicutt/pidshare/pkg/aggregator"
	"github.com/ccollicutt/pidshare/pkg/report"
)

// Report is the complete result of one run.
type Report struct {
	// Target is the requested PID's share (single-PID reports only).
	Target *report.Share `json:"target,omitempty"`

	// Shares lists every PID's share (breakdown reports only).
	Shares []report.Share `json:"shares,omitempty"`

	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	Processes    int     `json:"processes"`
	TotalSeconds float64 `json:"total_seconds"`
	LinesRead    int     `json:"lines_read"`
	LinesSkipped int     `json:"lines_skipped"`
	Samples      int     `json:"samples"`
}

// Metadata provides context about the run.
type Metadata struct {
	LogFile    string        `json:"log_file"`
	Strategy   string        `json:"strategy"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// NewTargetReport creates a Report for a single PID's share.
func NewTargetReport(result *aggregator.Result, logFile string, share *report.Share) *Report {
	r := newReport(result, logFile)
	r.Target = share
	return r
}

// NewBreakdownReport creates a Report listing every PID's share.
func NewBreakdownReport(result *aggregator.Result, logFile string) *Report {
	r := newReport(result, logFile)
	r.Shares = report.Breakdown(result.Table)
	return r
}

func newReport(result *aggregator.Result, logFile string) *Report {
	return &Report{
		Summary: Summary{
			Processes:    result.Table.Len(),
			TotalSeconds: result.Table.Total(),
			LinesRead:    result.Stats.LinesRead,
			LinesSkipped: result.Stats.LinesSkipped,
			Samples:      result.Stats.Samples,
		},
		Metadata: Metadata{
			LogFile:    logFile,
			Strategy:   result.Stats.Strategy,
			AnalyzedAt: result.Stats.EndTime,
			Duration:   result.Stats.Duration(),
		},
	}
}
