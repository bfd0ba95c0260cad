package output

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ccollicutt/pidshare/pkg/report"
)

// TableFormatter renders shares as an aligned table.
type TableFormatter struct {
	opts FormatOptions
}

// NewTableFormatter creates a new table formatter with the given options.
func NewTableFormatter(opts FormatOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return FormatTable
}

// Format renders the report as a table with one row per PID.
func (f *TableFormatter) Format(ctx context.Context, rep *Report, w io.Writer) error {
	var shares []report.Share
	if rep.Target != nil {
		shares = append(shares, *rep.Target)
	}
	shares = append(shares, rep.Shares...)

	table := tablewriter.NewWriter(w)
	table.Header("PID", "Seconds", "Share")
	for _, s := range shares {
		row := []string{
			fmt.Sprintf("PID-%d", s.PID),
			fmt.Sprintf("%.3f", s.Seconds),
			fmt.Sprintf("%.2f%%", s.Percent),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("appending table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	if f.opts.Verbose {
		return writeStats(w, rep)
	}
	return nil
}

// FormatFailure renders the failure message as plain text.
func (f *TableFormatter) FormatFailure(ctx context.Context, failure *Failure, w io.Writer) error {
	_, err := fmt.Fprintln(w, failure.Message)
	return err
}
