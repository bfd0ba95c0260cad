package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pidshare/pkg/config"
	"github.com/ccollicutt/pidshare/pkg/output"
	"github.com/ccollicutt/pidshare/pkg/report"
)

// ShareOptions holds the options specific to the single-PID report.
type ShareOptions struct {
	Process int
}

// BindShareFlags registers the report's local flags on cmd.
func BindShareFlags(cmd *cobra.Command, opts *ShareOptions) {
	cmd.Flags().IntVarP(&opts.Process, "process", "p", config.DefaultProcess, "Process number to analyze")
}

// RunShare aggregates the log file and prints the share of one PID.
//
// Missing files, absent PIDs, and read failures are printed as messages and
// the command still succeeds. Only option and configuration errors are
// returned.
func RunShare(cmd *cobra.Command, globals *GlobalOptions, opts *ShareOptions) error {
	r, err := globals.prepare(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	pid := r.cfg.Process
	if cmd.Flags().Changed("process") {
		pid = opts.Process
	}
	if pid < 0 {
		return fmt.Errorf("invalid process %d: must be >= 0", pid)
	}

	result, err := r.aggregate(ctx)
	if err != nil {
		return r.fail(ctx, err, pid)
	}

	share, err := report.Evaluate(result.Table, pid)
	if err != nil {
		return r.fail(ctx, err, pid)
	}

	rep := output.NewTargetReport(result, r.cfg.LogFile, share)
	if err := r.formatter.Format(ctx, rep, r.stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	r.finish("ok")
	return nil
}
