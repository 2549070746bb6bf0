package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/bench-merge/internal/engine"
	"github.com/daryltucker/bench-merge/internal/output"
)

var (
	showGraph   bool
	graphHeight int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary table of the reports without writing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		records, err := engine.New(cfg).Aggregate()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No valid data found")
			return nil
		}

		fmt.Fprintln(out, output.RenderTable(records))
		if showGraph {
			if g := output.RenderGraph(records, graphHeight); g != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, g)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVarP(&showGraph, "graph", "g", false, "plot output token throughput")
	showCmd.Flags().IntVar(&graphHeight, "height", 10, "graph height in rows")
}
