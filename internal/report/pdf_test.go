package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPDFReport(t *testing.T) {
	grid := testGrid()
	opts := HeatmapOptions{Title: "Fact Retrieval", ScoreMin: 1, ScoreMax: 10}

	heatmap, err := RenderHeatmap(grid, opts)
	require.NoError(t, err)
	colorBar, err := RenderColorBar(opts)
	require.NoError(t, err)
	byDepth, err := RenderMarginalPlot(grid, MarginalByDepth, opts)
	require.NoError(t, err)
	byContext, err := RenderMarginalPlot(grid, MarginalByContextLength, opts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.pdf")
	summary := Summary{
		Title:        "Fact Retrieval",
		Model:        "gpt-4",
		FilesScanned: 9,
		Trials:       9,
		Skipped:      1,
		OverallMean:  grid.OverallMean(),
	}
	images := Images{
		Heatmap:         heatmap,
		ColorBar:        colorBar,
		MarginalDepth:   byDepth,
		MarginalContext: byContext,
	}
	require.NoError(t, BuildPDFReport(path, summary, grid, images))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBuildPDFReportNoResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	summary := Summary{OverallMean: math.NaN()}

	require.NoError(t, BuildPDFReport(path, summary, nil, Images{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
