package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pidshare/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a pidshare configuration file without reading the log.

Checks:
  - YAML syntax
  - Process number
  - Extraction strategy name
  - Output format name
  - Log file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration valid!\n")
	_, _ = fmt.Fprintf(out, "  Log file:  %s\n", cfg.LogFile)
	_, _ = fmt.Fprintf(out, "  Process:   %d\n", cfg.Process)
	_, _ = fmt.Fprintf(out, "  Strategy:  %s\n", cfg.Extractor.ParsedStrategy())
	_, _ = fmt.Fprintf(out, "  Output:    %s\n", cfg.Output)
	if cfg.MetricsFile != "" {
		_, _ = fmt.Fprintf(out, "  Metrics:   %s\n", cfg.MetricsFile)
	}

	if _, err := os.Stat(cfg.LogFile); err != nil {
		_, _ = fmt.Fprintf(out, "\nWarning: log file %s is not accessible: %v\n", cfg.LogFile, err)
	}

	return nil
}
