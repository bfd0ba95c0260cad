package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders results in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// FormatFailure renders a user-facing failure to the given writer.
	FormatFailure(ctx context.Context, failure *Failure, w io.Writer) error

	// Name returns the format name (text, json, table).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds run statistics to the output.
	Verbose bool
}

// Format names.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatTable}
}

// IsFormat reports whether name is a supported format.
func IsFormat(name string) bool {
	for _, f := range Formats() {
		if f == name {
			return true
		}
	}
	return false
}

// NewFormatter creates the formatter for the named format.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case FormatText:
		return NewTextFormatter(opts), nil
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatTable:
		return NewTableFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or table)", name)
	}
}
