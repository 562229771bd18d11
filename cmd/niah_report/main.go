package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   "niah_report",
		Short: "Aggregate Needle-in-a-Haystack results into a heatmap report",
		Long: `niah_report reads the per-trial *.json result files produced by a
Needle-in-a-Haystack evaluation run, pivots them into a document-depth by
context-length table of mean scores, and renders the table as a heatmap PNG
and, optionally, a PDF report with marginal-mean plots and tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return newApp(logger.Sugar()).Run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ResultsDir, "results", "results", "directory containing per-trial *.json result files")
	cmd.Flags().StringVar(&opts.HeatmapPath, "out", "heatmap.png", "output path for the heatmap PNG")
	cmd.Flags().StringVar(&opts.PDFPath, "pdf", "", "optional output path for a PDF report")
	cmd.Flags().StringVar(&opts.Title, "title", "Fact Retrieval Across Context Lengths", "plot and report title")
	cmd.Flags().Float64Var(&opts.ScoreMin, "score-min", 1, "bottom of the score color scale")
	cmd.Flags().Float64Var(&opts.ScoreMax, "score-max", 10, "top of the score color scale")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
