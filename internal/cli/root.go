/*
PURPOSE:
  Defines the root Cobra command for the Bench Merge CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Running the binary with no arguments performs the merge with the
    built-in defaults.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Logging flags must be applied before any subcommand runs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/bench-merge/main.go
  - Calls: Child commands (merge, list, show, metrics)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Root RunE is the merge itself, so `bench-merge` == `bench-merge merge`.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/bench-merge/main.go
  - internal/cli/merge.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-merge/internal/config"
	"github.com/daryltucker/bench-merge/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	logLevel string
	logJSON  bool

	// dirOverride replaces the configured report directory.
	dirOverride string

	rootCmd = &cobra.Command{
		Use:   "bench-merge",
		Short: "Merge sglang serving benchmark reports into one CSV",
		Long: `Scans a directory of concurrency_<n>_input_<n>_output_<n>.txt reports,
extracts the "Serving Benchmark Result" metrics from each and writes one
summary CSV. Without a subcommand it runs 'merge'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return output.Configure(cmd.OutOrStdout(), logLevel, logJSON)
		},
		RunE: runMerge,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file and applies the shared flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dirOverride != "" {
		cfg.ReportDir = dirOverride
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bench_merge.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&dirOverride, "dir", "d", "", "directory containing the benchmark reports")

	addMergeFlags(rootCmd)
}
