// Package metrics exposes run counters in the Prometheus text format so a
// node exporter textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ccollicutt/pidshare/pkg/aggregator"
)

// RunCollector holds the counters for pidshare runs.
type RunCollector struct {
	LinesRead    *prometheus.CounterVec
	LinesSkipped *prometheus.CounterVec
	Samples      *prometheus.CounterVec
	Runs         *prometheus.CounterVec
	Duration     prometheus.Histogram

	registry *prometheus.Registry
}

// NewRunCollector creates the counters and registers them on a private registry.
func NewRunCollector() *RunCollector {
	c := &RunCollector{
		LinesRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidshare_lines_read_total",
				Help: "Total number of log lines read.",
			},
			[]string{"strategy"},
		),
		LinesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidshare_lines_skipped_total",
				Help: "Lines containing a PID marker that yielded no sample.",
			},
			[]string{"strategy"},
		),
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidshare_samples_total",
				Help: "Total number of samples folded into the process time table.",
			},
			[]string{"strategy"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidshare_runs_total",
				Help: "Runs by outcome.",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pidshare_aggregation_duration_seconds",
				Help:    "Time spent aggregating a log file.",
				Buckets: prometheus.DefBuckets,
			},
		),
		registry: prometheus.NewRegistry(),
	}
	c.Register(c.registry)
	return c
}

// Register adds the collectors to reg.
func (c *RunCollector) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.LinesRead,
		c.LinesSkipped,
		c.Samples,
		c.Runs,
		c.Duration,
	)
}

// ObserveStats records the counters from one aggregation pass.
func (c *RunCollector) ObserveStats(stats aggregator.Stats) {
	c.LinesRead.WithLabelValues(stats.Strategy).Add(float64(stats.LinesRead))
	c.LinesSkipped.WithLabelValues(stats.Strategy).Add(float64(stats.LinesSkipped))
	c.Samples.WithLabelValues(stats.Strategy).Add(float64(stats.Samples))
	c.Duration.Observe(stats.Duration().Seconds())
}

// ObserveOutcome counts a finished run. Outcome is "ok" or a failure kind.
func (c *RunCollector) ObserveOutcome(outcome string) {
	c.Runs.WithLabelValues(outcome).Inc()
}

// Gatherer returns the registry holding the run counters.
func (c *RunCollector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes the counters to path atomically.
func (c *RunCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
