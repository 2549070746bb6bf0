/*
PURPOSE:
  Defines the 'merge' subcommand.
  Aggregates every report in the directory into the summary CSV.

REQUIREMENTS:
  User-specified:
  - Write benchmark_summary_fixed.csv from the report directory.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or the summary cannot be written.
  - "No data" is not an error.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  bench-merge merge --dir ./results -o summary.csv

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-merge/internal/config"
	"github.com/daryltucker/bench-merge/internal/engine"
)

var (
	outputOverride  string
	metricsOverride string
	jsonOutput      bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge all reports into a summary CSV",
	Long: `Parses every concurrency_<n>_input_<n>_output_<n>.txt report in the report
directory and writes one CSV row per valid report.

Files with an unexpected name, without the result markers, or that cannot be
read are skipped with a warning. Missing metrics leave an empty cell. If no
report is valid, nothing is written.`,
	Example: `  # Run with defaults (uses bench_merge.yaml if present)
  bench-merge

  # Another results directory and output file
  bench-merge merge --dir ./sglang_bench_results -o ./summary.csv

  # Only a few metrics, plus a JSON Lines copy
  bench-merge merge --metrics "Backend,Concurrency,Median TTFT (ms)" --json`,
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputOverride != "" {
		cfg.OutputFile = outputOverride
	}
	if metricsOverride != "" {
		cfg.Metrics = config.SplitMetrics(metricsOverride)
	}
	if jsonOutput {
		cfg.JSONOutput = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return engine.Run(cfg)
}

func addMergeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputOverride, "output", "o", "", "output CSV file")
	cmd.Flags().StringVar(&metricsOverride, "metrics", "", "comma-separated list of report metrics to extract")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "also write a JSON Lines summary")
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	addMergeFlags(mergeCmd)
}
