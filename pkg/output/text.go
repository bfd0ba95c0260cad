package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/pidshare/pkg/report"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return FormatText
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, rep *Report, w io.Writer) error {
	if rep.Target != nil {
		if err := writeShare(w, rep.Target); err != nil {
			return err
		}
	}

	for i := range rep.Shares {
		if err := writeShare(w, &rep.Shares[i]); err != nil {
			return err
		}
	}

	if f.opts.Verbose {
		return writeStats(w, rep)
	}
	return nil
}

// FormatFailure renders the failure message on its own line.
func (f *TextFormatter) FormatFailure(ctx context.Context, failure *Failure, w io.Writer) error {
	_, err := fmt.Fprintln(w, failure.Message)
	return err
}

// ShareLine returns the one-line sentence describing a share.
func ShareLine(s *report.Share) string {
	return fmt.Sprintf("PID-%d consumed %.2f%% of the processor time", s.PID, s.Percent)
}

func writeShare(w io.Writer, s *report.Share) error {
	_, err := fmt.Fprintln(w, ShareLine(s))
	return err
}

func writeStats(w io.Writer, rep *Report) error {
	_, err := fmt.Fprintf(w, "Strategy: %s\nLines read: %d (%d skipped)\nSamples: %d across %d process(es), %.3fs total\nDuration: %s\n",
		rep.Metadata.Strategy,
		rep.Summary.LinesRead,
		rep.Summary.LinesSkipped,
		rep.Summary.Samples,
		rep.Summary.Processes,
		rep.Summary.TotalSeconds,
		rep.Metadata.Duration.Round(1e6))
	return err
}
