package output

import (
	"errors"
	"fmt"

	"github.com/ccollicutt/pidshare/pkg/parser"
	"github.com/ccollicutt/pidshare/pkg/report"
)

// FailureKind classifies a user-facing failure.
type FailureKind string

const (
	// FailureFileNotFound means the log file could not be opened.
	FailureFileNotFound FailureKind = "file_not_found"

	// FailureTargetAbsentOrZero means the PID has no accumulated time.
	FailureTargetAbsentOrZero FailureKind = "target_absent_or_zero"

	// FailureNoSamples means the log held no usable samples at all.
	FailureNoSamples FailureKind = "no_samples"

	// FailureUnclassified covers any other failure while reading or parsing.
	FailureUnclassified FailureKind = "unclassified"
)

// Failure is an error rendered for the user.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// NewFailure classifies err for the run that analyzed path for pid.
func NewFailure(err error, path string, pid int) *Failure {
	var notFound *parser.FileNotFoundError

	switch {
	case errors.As(err, &notFound):
		return &Failure{
			Kind:    FailureFileNotFound,
			Message: fmt.Sprintf("Error: %s file not found", path),
		}
	case errors.Is(err, report.ErrTargetAbsentOrZero), errors.Is(err, report.ErrNotFound):
		return &Failure{
			Kind:    FailureTargetAbsentOrZero,
			Message: fmt.Sprintf("Error: PID-%d not found in the log file.", pid),
		}
	case errors.Is(err, report.ErrNoSamples):
		return &Failure{
			Kind:    FailureNoSamples,
			Message: fmt.Sprintf("Error: no PID samples found in %s", path),
		}
	default:
		return &Failure{
			Kind:    FailureUnclassified,
			Message: fmt.Sprintf("Error processing log file: %v", err),
		}
	}
}
