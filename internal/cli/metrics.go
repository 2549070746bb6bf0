package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-merge/internal/model"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the metrics that will be extracted and the CSV columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Metrics:")
		for _, m := range cfg.Metrics {
			if col := model.ColumnFor(m); col != m {
				fmt.Fprintf(out, "  %s (as %q)\n", m, col)
				continue
			}
			fmt.Fprintf(out, "  %s\n", m)
		}

		fmt.Fprintln(out, "Columns:")
		for i, c := range model.Columns(cfg.Metrics) {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
