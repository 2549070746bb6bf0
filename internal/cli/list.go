/*
PURPOSE:
  Defines the 'list' subcommand.
  Shows which files in the report directory would be merged.

REQUIREMENTS:
  User-specified:
  - Quick check of the report directory before a merge.

  Implementation-discovered:
  - Useful for spotting misnamed files, which merge only logs.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Discover(), internal/report.ParseFilename()

ERROR HANDLING:
  - Returns error if the directory cannot be read.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  bench-merge list --dir ./results

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-merge/internal/engine"
	"github.com/daryltucker/bench-merge/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List report files and their benchmark configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		names, err := engine.New(cfg).Discover()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range names {
			rc, err := report.ParseFilename(name)
			if err != nil {
				fmt.Fprintf(out, "- %s (skipped: name does not match)\n", name)
				continue
			}
			fmt.Fprintf(out, "- %s concurrency=%s input=%s output=%s\n", name, rc.Concurrency, rc.InputLength, rc.OutputLength)
		}
		fmt.Fprintf(out, "%d file(s) in %s\n", len(names), cfg.ReportDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
