package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ccollicutt/pidshare/pkg/aggregator"
	"github.com/ccollicutt/pidshare/pkg/config"
	"github.com/ccollicutt/pidshare/pkg/metrics"
	"github.com/ccollicutt/pidshare/pkg/output"
	"github.com/ccollicutt/pidshare/pkg/parser"
)

// GlobalOptions holds the flags shared by the report and breakdown commands.
type GlobalOptions struct {
	File           string
	Strategy       string
	StripAllSuffix bool
	Output         string
	ConfigPath     string
	MetricsFile    string
	Verbose        bool

	// clock stamps run statistics; tests replace it with a mock.
	clock clock.Clock
}

// Bind registers the shared flags as persistent flags on cmd.
func (o *GlobalOptions) Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.File, "file", "f", config.DefaultLogFile, "Log file to analyze")
	flags.StringVar(&o.Strategy, "strategy", "", "Line extraction strategy (pattern|split)")
	flags.BoolVar(&o.StripAllSuffix, "strip-all-suffix", true, "Split strategy: strip every trailing 's' from the time field")
	flags.StringVarP(&o.Output, "output", "o", config.DefaultOutput, "Output format (text|json|table)")
	flags.StringVar(&o.ConfigPath, "config", "", "Optional YAML configuration file")
	flags.StringVar(&o.MetricsFile, "metrics-file", "", "Write run counters to this Prometheus textfile")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Show run statistics and debug logging")
}

// Resolve loads the configuration and applies explicitly set flags on top.
func (o *GlobalOptions) Resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(commandContext(cmd), o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.LogFile = o.File
	}
	if flags.Changed("strategy") {
		cfg.Extractor.Strategy = o.Strategy
	}
	if flags.Changed("strip-all-suffix") {
		cfg.Extractor.StripAllSuffix = o.StripAllSuffix
	}
	if flags.Changed("output") {
		cfg.Output = o.Output
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.MetricsFile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// run carries everything one invocation needs.
type run struct {
	cfg       *config.Config
	logger    *zap.Logger
	formatter output.Formatter
	collector *metrics.RunCollector
	clock     clock.Clock
	stdout    io.Writer
}

func (o *GlobalOptions) prepare(cmd *cobra.Command) (*run, error) {
	cfg, err := o.Resolve(cmd)
	if err != nil {
		return nil, err
	}

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{Verbose: o.Verbose})
	if err != nil {
		return nil, err
	}

	r := &run{
		cfg:       cfg,
		logger:    newLogger(cmd.ErrOrStderr(), o.Verbose),
		formatter: formatter,
		clock:     o.clock,
		stdout:    cmd.OutOrStdout(),
	}
	if r.clock == nil {
		r.clock = clock.New()
	}
	if cfg.MetricsFile != "" {
		r.collector = metrics.NewRunCollector()
	}
	return r, nil
}

// aggregate performs the single pass over the configured log file.
func (r *run) aggregate(ctx context.Context) (*aggregator.Result, error) {
	e, err := r.cfg.Extractor.NewExtractor()
	if err != nil {
		return nil, err
	}

	a, err := aggregator.New(e, aggregator.WithLogger(r.logger), aggregator.WithClock(r.clock))
	if err != nil {
		return nil, err
	}

	source := parser.NewFileSource(r.cfg.LogFile)
	defer source.Close()

	r.logger.Debug("aggregating log file",
		zap.String("file", r.cfg.LogFile),
		zap.String("strategy", e.Name()),
	)

	result, err := a.Aggregate(ctx, source)
	if err != nil {
		return nil, err
	}

	if r.collector != nil {
		r.collector.ObserveStats(result.Stats)
	}
	return result, nil
}

// fail renders a user-facing failure. The run still ends normally.
func (r *run) fail(ctx context.Context, err error, pid int) error {
	failure := output.NewFailure(err, r.cfg.LogFile, pid)
	r.logger.Debug("run failed", zap.String("kind", string(failure.Kind)), zap.Error(err))

	if ferr := r.formatter.FormatFailure(ctx, failure, r.stdout); ferr != nil {
		return fmt.Errorf("formatting output: %w", ferr)
	}
	r.finish(string(failure.Kind))
	return nil
}

// finish records the outcome and writes the metrics textfile if configured.
// A metrics failure is logged, never surfaced as a run failure.
func (r *run) finish(outcome string) {
	if r.collector == nil {
		return
	}
	r.collector.ObserveOutcome(outcome)
	if err := r.collector.WriteTextfile(r.cfg.MetricsFile); err != nil {
		r.logger.Warn("metrics not written", zap.String("path", r.cfg.MetricsFile), zap.Error(err))
	}
}

// newLogger builds a console logger on w. Debug output is enabled by verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
