// Package cli provides the command-line interface for pidshare.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pidshare/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself.
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	globals := &commands.GlobalOptions{}
	shareOpts := &commands.ShareOptions{}

	rootCmd := &cobra.Command{
		Use:   "pidshare",
		Short: "Report a process's share of processor time from a log file",
		Long: `pidshare reads a log of per-process CPU time samples and reports what
percentage of the total measured time one process consumed.

Sample lines carry a PID- marker followed by the process number and the
seconds of processor time, for example:

  PID-2,0.5s
  2024-01-15 10:00:00,PID-3,1.25s

Missing files and absent processes are reported as messages on standard
output. Only invalid options and configuration exit with status 2.

Example:
  pidshare -p 2 -f system.log
  pidshare breakdown -f system.log -o table`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunShare(cmd, globals, shareOpts)
		},
	}

	globals.Bind(rootCmd)
	commands.BindShareFlags(rootCmd, shareOpts)

	rootCmd.AddCommand(commands.NewBreakdownCommand(globals))
	rootCmd.AddCommand(commands.NewDiagnoseCommand(globals))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
