package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pidshare/pkg/aggregator"
	"github.com/ccollicutt/pidshare/pkg/config"
	"github.com/ccollicutt/pidshare/pkg/extractor"
	"github.com/ccollicutt/pidshare/pkg/parser"
)

// DefaultSampleLines is how many log lines diagnose inspects.
const DefaultSampleLines = 1000

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Sample  int
	Process int
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand(globals *GlobalOptions) *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose log file and extraction issues",
		Long: `Diagnose common problems before computing shares.

This command checks:
- Config file syntax, when --config is given
- Log file existence and accessibility
- Lines carrying the PID- marker
- Whether the pattern and split strategies agree on the sampled lines
- Whether the target process has any accumulated time

Example:
  pidshare diagnose -f system.log
  pidshare diagnose -f system.log --sample 50 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, globals, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Sample, "sample", DefaultSampleLines, "Number of log lines to inspect")
	cmd.Flags().IntVarP(&opts.Process, "process", "p", config.DefaultProcess, "Process number to look for")

	return cmd
}

func runDiagnose(cmd *cobra.Command, globals *GlobalOptions, opts *DiagnoseOptions) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	results := []DiagnosticResult{}

	cfg := config.DefaultConfig()
	if globals.ConfigPath != "" {
		result := checkConfigExists(globals.ConfigPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(out, results, globals.Verbose)
			return nil
		}

		var parsed *config.Config
		parsed, result = checkConfigParseable(ctx, globals.ConfigPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(out, results, globals.Verbose)
			return nil
		}
		cfg = parsed
	}

	logFile := cfg.LogFile
	if cmd.Flags().Changed("file") {
		logFile = globals.File
	}
	strategyName := cfg.Extractor.Strategy
	if cmd.Flags().Changed("strategy") {
		strategyName = globals.Strategy
	}
	stripAll := cfg.Extractor.StripAllSuffix
	if cmd.Flags().Changed("strip-all-suffix") {
		stripAll = globals.StripAllSuffix
	}
	pid := cfg.Process
	if cmd.Flags().Changed("process") {
		pid = opts.Process
	}

	result := checkLogFile(logFile)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(out, results, globals.Verbose)
		return nil
	}

	strategy, err := extractor.ParseStrategy(strategyName)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:    "Strategy",
			Status:   "error",
			Message:  err.Error(),
			Suggests: []string{fmt.Sprintf("Use one of: %s", strings.Join(extractor.Strategies(), ", "))},
		})
		printDiagnostics(out, results, globals.Verbose)
		return nil
	}

	results = append(results, checkExtraction(ctx, logFile, strategy, stripAll, pid, opts.Sample, globals.Verbose)...)

	printDiagnostics(out, results, globals.Verbose)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{"Check the file path is correct"}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Log file: %s", cfg.LogFile),
		fmt.Sprintf("Strategy: %s", cfg.Extractor.ParsedStrategy()),
	}
	return cfg, result
}

func checkLogFile(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Log File: %s", path),
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		result.Status = "error"
		result.Message = "File does not exist"
		result.Suggests = []string{
			"Check if the log file path is correct",
			"Pass the path with -f/--file",
		}
	case err != nil:
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
	case info.IsDir():
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
	case info.Size() == 0:
		result.Status = "warning"
		result.Message = "File is empty (0 bytes)"
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())
	}
	return result
}

// extractionSample is what both strategies made of the first lines of a log.
type extractionSample struct {
	lines       int
	markerLines int
	pattern     *aggregator.Table
	split       *aggregator.Table
	patternOnly []string
	splitOnly   []string
}

func sampleExtraction(ctx context.Context, path string, stripAll bool, limit int) (*extractionSample, error) {
	pattern := extractor.NewPatternExtractor()
	split := extractor.NewSplitExtractor(stripAll)

	s := &extractionSample{
		pattern: aggregator.NewTable(),
		split:   aggregator.NewTable(),
	}

	source := parser.NewFileSource(path)
	defer source.Close()

	for limit <= 0 || s.lines < limit {
		line, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		s.lines++

		if !strings.Contains(line.Content, extractor.Marker) {
			continue
		}
		s.markerLines++

		fromPattern := pattern.Extract(line.Content)
		fromSplit := split.Extract(line.Content)
		for _, sample := range fromPattern {
			s.pattern.Add(sample)
		}
		for _, sample := range fromSplit {
			s.split.Add(sample)
		}

		switch {
		case len(fromPattern) > 0 && len(fromSplit) == 0:
			s.patternOnly = append(s.patternOnly, line.Content)
		case len(fromSplit) > 0 && len(fromPattern) == 0:
			s.splitOnly = append(s.splitOnly, line.Content)
		}
	}
	return s, nil
}

func checkExtraction(ctx context.Context, path string, strategy extractor.Strategy, stripAll bool, pid, limit int, verbose bool) []DiagnosticResult {
	results := []DiagnosticResult{}

	s, err := sampleExtraction(ctx, path, stripAll, limit)
	if err != nil {
		return append(results, DiagnosticResult{
			Check:   "Log Read",
			Status:  "error",
			Message: fmt.Sprintf("Cannot read file: %v", err),
		})
	}

	markers := DiagnosticResult{Check: "PID Markers"}
	if s.markerLines == 0 {
		markers.Status = "warning"
		markers.Message = fmt.Sprintf("No %s markers in %d sampled line(s)", extractor.Marker, s.lines)
		markers.Suggests = []string{"Lines should look like: PID-2,0.5s"}
		return append(results, markers)
	}
	markers.Status = "ok"
	markers.Message = fmt.Sprintf("%d of %d sampled line(s) carry a %s marker", s.markerLines, s.lines, extractor.Marker)
	results = append(results, markers)

	chosen, other := s.pattern, s.split
	otherName := extractor.StrategySplit
	if strategy == extractor.StrategySplit {
		chosen, other = s.split, s.pattern
		otherName = extractor.StrategyPattern
	}

	agreement := DiagnosticResult{Check: fmt.Sprintf("Strategy: %s", strategy)}
	switch {
	case chosen.Len() == 0 && other.Len() > 0:
		agreement.Status = "error"
		agreement.Message = fmt.Sprintf("No samples extracted, but %s finds %d process(es)", otherName, other.Len())
		agreement.Suggests = []string{fmt.Sprintf("Try --strategy %s", otherName)}
	case chosen.Len() == 0:
		agreement.Status = "error"
		agreement.Message = "No samples extracted by either strategy"
	case len(s.patternOnly) > 0 || len(s.splitOnly) > 0:
		agreement.Status = "warning"
		agreement.Message = fmt.Sprintf("Strategies disagree on %d line(s)", len(s.patternOnly)+len(s.splitOnly))
		if len(s.patternOnly) > 0 {
			agreement.Details = append(agreement.Details,
				"Only pattern extracts from:", truncate(s.patternOnly[0], 80))
		}
		if len(s.splitOnly) > 0 {
			agreement.Details = append(agreement.Details,
				"Only split extracts from:", truncate(s.splitOnly[0], 80))
		}
	default:
		agreement.Status = "ok"
		agreement.Message = fmt.Sprintf("%d process(es) found, strategies agree", chosen.Len())
	}
	if verbose {
		for _, p := range chosen.PIDs() {
			seconds, _ := chosen.Get(p)
			agreement.Details = append(agreement.Details, fmt.Sprintf("PID-%d: %gs", p, seconds))
		}
	}
	results = append(results, agreement)

	target := DiagnosticResult{Check: fmt.Sprintf("Target: PID-%d", pid)}
	if seconds, ok := chosen.Get(pid); ok && seconds != 0 {
		target.Status = "ok"
		target.Message = fmt.Sprintf("%gs accumulated in sampled lines", seconds)
	} else {
		target.Status = "warning"
		target.Message = "No accumulated time in sampled lines"
		if limit > 0 && s.lines >= limit {
			target.Suggests = []string{"Increase --sample to inspect more of the file"}
		}
	}
	results = append(results, target)

	return results
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, verbose bool) {
	_, _ = fmt.Fprintln(w, "=== pidshare Diagnostics ===")
	_, _ = fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		_, _ = fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		_, _ = fmt.Fprintf(w, "    %s\n", r.Message)

		if verbose || r.Status != "ok" {
			for _, d := range r.Details {
				_, _ = fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			_, _ = fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, "---")
	_, _ = fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		_, _ = fmt.Fprintln(w, "\nFix the errors above before computing shares.")
	} else if warnCount > 0 {
		_, _ = fmt.Fprintln(w, "\nThe log is usable but has warnings.")
	} else {
		_, _ = fmt.Fprintln(w, "\nThe log looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
