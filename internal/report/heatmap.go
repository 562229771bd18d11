package report

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Jianzhao-Huang/JFK-NIAH/internal/analysis"
)

// Shades sampled from the color map for the heatmap palette.
const heatmapShades = 64

// missingCellColor fills grid cells that had no trials. Light gray, distinct
// from every score color and from zero.
var missingCellColor = color.Gray{Y: 200}

// HeatmapOptions controls the rendered plots. The zero value picks the 1-10
// scoring scale and a default size.
type HeatmapOptions struct {
	Title    string
	ScoreMin float64
	ScoreMax float64
	Width    vg.Length
	Height   vg.Length
}

func (o *HeatmapOptions) applyDefaults() {
	if o.ScoreMin == 0 && o.ScoreMax == 0 {
		o.ScoreMin, o.ScoreMax = 1, 10
	}
	if o.Width == 0 {
		o.Width = vg.Points(1000)
	}
	if o.Height == 0 {
		o.Height = vg.Points(500)
	}
}

// gridXYZ adapts analysis.Grid to gonum's plotter.GridXYZ. Columns map to
// context lengths and rows to depths, both as categorical indices; tick
// labels carry the real axis values.
type gridXYZ struct {
	grid *analysis.Grid
}

func (g gridXYZ) Dims() (c, r int)   { return len(g.grid.ContextLengths), len(g.grid.Depths) }
func (g gridXYZ) Z(c, r int) float64 { return g.grid.Scores[r][c] }
func (g gridXYZ) X(c int) float64    { return float64(c) }
func (g gridXYZ) Y(r int) float64    { return float64(r) }

// RenderHeatmap draws the depth × context-length grid as a heatmap and
// returns the PNG bytes. Missing cells are drawn in gray.
func RenderHeatmap(grid *analysis.Grid, opts HeatmapOptions) ([]byte, error) {
	if grid == nil || len(grid.Depths) == 0 || len(grid.ContextLengths) == 0 {
		return nil, fmt.Errorf("empty grid, nothing to render")
	}
	opts.applyDefaults()

	colorMap := NewScoreColorMap(opts.ScoreMin, opts.ScoreMax)

	hm := plotter.NewHeatMap(gridXYZ{grid: grid}, colorMap.Palette(heatmapShades))
	hm.Min = opts.ScoreMin
	hm.Max = opts.ScoreMax
	hm.NaN = missingCellColor
	hm.Underflow = scoreStops[0]
	hm.Overflow = scoreStops[len(scoreStops)-1]

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Context Length (tokens)"
	p.Y.Label.Text = "Needle Depth (%)"
	p.Add(hm)

	xTicks := make([]plot.Tick, len(grid.ContextLengths))
	for i, ctx := range grid.ContextLengths {
		xTicks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(ctx)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.5
	p.X.Max = float64(len(grid.ContextLengths)) - 0.5

	yTicks := make([]plot.Tick, len(grid.Depths))
	for i, depth := range grid.Depths {
		yTicks[i] = plot.Tick{Value: float64(i), Label: formatDepth(depth)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Min = -0.5
	p.Y.Max = float64(len(grid.Depths)) - 0.5

	return writePNG(p, opts.Width, opts.Height)
}

// RenderColorBar draws a horizontal legend for the score scale, for embedding
// next to the heatmap in reports.
func RenderColorBar(opts HeatmapOptions) ([]byte, error) {
	opts.applyDefaults()

	bar := &plotter.ColorBar{ColorMap: NewScoreColorMap(opts.ScoreMin, opts.ScoreMax)}

	p := plot.New()
	p.HideY()
	p.X.Label.Text = "Mean Score"
	p.Add(bar)

	return writePNG(p, opts.Width, vg.Points(70))
}

func formatDepth(depth float64) string {
	return strconv.FormatFloat(depth, 'f', -1, 64) + "%"
}

func writePNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
