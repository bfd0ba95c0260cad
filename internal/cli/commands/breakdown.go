package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pidshare/pkg/output"
	"github.com/ccollicutt/pidshare/pkg/report"
)

// NewBreakdownCommand creates the breakdown command.
func NewBreakdownCommand(globals *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Show every process's share of processor time",
		Long: `Aggregate the log file and report the share of processor time for
every process found, largest first.

Example:
  pidshare breakdown -f system.log
  pidshare breakdown -f system.log -o table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreakdown(cmd, globals)
		},
	}
}

func runBreakdown(cmd *cobra.Command, globals *GlobalOptions) error {
	r, err := globals.prepare(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	result, err := r.aggregate(ctx)
	if err != nil {
		return r.fail(ctx, err, -1)
	}

	if result.Table.Len() == 0 || result.Table.Total() == 0 {
		return r.fail(ctx, report.ErrNoSamples, -1)
	}

	rep := output.NewBreakdownReport(result, r.cfg.LogFile)
	if err := r.formatter.Format(ctx, rep, r.stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	r.finish("ok")
	return nil
}
