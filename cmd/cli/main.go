// pidshare - Processor Time Share Reporter
//
// pidshare reads per-process CPU time samples from a log file and reports
// the share of total processor time a process consumed.
package main

import (
	"os"

	"github.com/ccollicutt/pidshare/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
