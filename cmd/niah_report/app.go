package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Jianzhao-Huang/JFK-NIAH/internal/analysis"
	"github.com/Jianzhao-Huang/JFK-NIAH/internal/report"
	"github.com/Jianzhao-Huang/JFK-NIAH/internal/results"
)

type appOptions struct {
	ResultsDir  string
	HeatmapPath string
	PDFPath     string
	Title       string
	ScoreMin    float64
	ScoreMax    float64
}

// app orchestrates the load, aggregate and render stages.
type app struct {
	log *zap.SugaredLogger
}

func newApp(log *zap.SugaredLogger) *app {
	return &app{log: log}
}

func (a *app) Run(opts appOptions) error {
	a.log.Infow("Loading results", "dir", opts.ResultsDir)
	loaded, err := results.LoadDir(opts.ResultsDir)
	if err != nil {
		return err
	}
	for _, warning := range loaded.Warnings {
		a.log.Warn(warning)
	}
	a.log.Infow("Loaded results",
		"files", loaded.Files, "records", len(loaded.Records), "skipped", loaded.Skipped)
	if len(loaded.Records) == 0 {
		return fmt.Errorf("no usable trial records in %s", opts.ResultsDir)
	}

	table := analysis.Aggregate(loaded.Records)
	grid := analysis.ToGrid(table)
	a.log.Infow("Aggregated trials",
		"cells", len(table.Cells),
		"depths", len(grid.Depths),
		"context_lengths", len(grid.ContextLengths),
		"overall_mean", grid.OverallMean())

	plotOpts := report.HeatmapOptions{
		Title:    opts.Title,
		ScoreMin: opts.ScoreMin,
		ScoreMax: opts.ScoreMax,
	}

	heatmap, err := report.RenderHeatmap(grid, plotOpts)
	if err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	if err := os.WriteFile(opts.HeatmapPath, heatmap, 0o644); err != nil {
		return fmt.Errorf("failed to write heatmap: %w", err)
	}
	a.log.Infow("Wrote heatmap", "path", opts.HeatmapPath)

	if opts.PDFPath == "" {
		return nil
	}

	images := report.Images{Heatmap: heatmap}
	if images.ColorBar, err = report.RenderColorBar(plotOpts); err != nil {
		a.log.Warnw("Skipping color bar", "error", err)
	}
	if images.MarginalDepth, err = report.RenderMarginalPlot(grid, report.MarginalByDepth, plotOpts); err != nil {
		a.log.Warnw("Skipping depth marginal plot", "error", err)
	}
	if images.MarginalContext, err = report.RenderMarginalPlot(grid, report.MarginalByContextLength, plotOpts); err != nil {
		a.log.Warnw("Skipping context-length marginal plot", "error", err)
	}

	summary := report.Summary{
		Title:        opts.Title,
		Model:        modelName(loaded.Records),
		FilesScanned: loaded.Files,
		Trials:       table.Trials,
		Skipped:      loaded.Skipped + table.Skipped,
		OverallMean:  grid.OverallMean(),
	}
	if err := report.BuildPDFReport(opts.PDFPath, summary, grid, images); err != nil {
		return fmt.Errorf("failed to build PDF report: %w", err)
	}
	a.log.Infow("Wrote PDF report", "path", opts.PDFPath)
	return nil
}

// modelName returns the model named by the records when they agree on one,
// empty otherwise.
func modelName(records []results.TrialRecord) string {
	name := ""
	for _, rec := range records {
		switch {
		case rec.Model == "":
		case name == "":
			name = rec.Model
		case name != rec.Model:
			return ""
		}
	}
	return name
}
