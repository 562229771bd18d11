package report

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Jianzhao-Huang/JFK-NIAH/internal/analysis"
)

// MarginalAxis selects which marginal-mean sequence to plot.
type MarginalAxis int

const (
	// MarginalByDepth plots the mean score per depth row.
	MarginalByDepth MarginalAxis = iota
	// MarginalByContextLength plots the mean score per context-length column.
	MarginalByContextLength
)

// RenderMarginalPlot draws one of the grid's marginal-mean sequences as a
// line plot and returns the PNG bytes. Undefined means (rows or columns with
// no defined cells) are left out of the line rather than plotted as zero.
// A dashed reference line marks the overall mean when it is defined.
func RenderMarginalPlot(grid *analysis.Grid, axis MarginalAxis, opts HeatmapOptions) ([]byte, error) {
	if grid == nil || len(grid.Depths) == 0 || len(grid.ContextLengths) == 0 {
		return nil, fmt.Errorf("empty grid, nothing to plot")
	}
	opts.applyDefaults()

	var means []float64
	var ticks []plot.Tick
	var xLabel, title string
	switch axis {
	case MarginalByDepth:
		means = analysis.RowMeans(grid)
		ticks = make([]plot.Tick, len(grid.Depths))
		for i, depth := range grid.Depths {
			ticks[i] = plot.Tick{Value: float64(i), Label: formatDepth(depth)}
		}
		xLabel = "Needle Depth (%)"
		title = "Mean Score by Needle Depth"
	case MarginalByContextLength:
		means = analysis.ColMeans(grid)
		ticks = make([]plot.Tick, len(grid.ContextLengths))
		for i, ctx := range grid.ContextLengths {
			ticks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(ctx)}
		}
		xLabel = "Context Length (tokens)"
		title = "Mean Score by Context Length"
	default:
		return nil, fmt.Errorf("unknown marginal axis: %d", axis)
	}

	pts := make(plotter.XYs, 0, len(means))
	for i, mean := range means {
		if math.IsNaN(mean) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: mean})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no defined marginal means to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Mean Score"
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = float64(len(means)) - 0.5
	p.Y.Min = opts.ScoreMin
	p.Y.Max = opts.ScoreMax
	p.Add(plotter.NewGrid())

	if overall := grid.OverallMean(); !math.IsNaN(overall) {
		ref, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: overall},
			{X: float64(len(means)) - 0.5, Y: overall},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create reference line: %w", err)
		}
		ref.Color = color.Gray{Y: 128}
		ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(ref)
		p.Legend.Add(fmt.Sprintf("Overall mean %.2f", overall), ref)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create marginal line: %w", err)
	}
	line.Color = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	return writePNG(p, vg.Points(800), vg.Points(400))
}
