package report

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

var (
	errColorMapRange = errors.New("report: value outside color map range")
	errColorMapNaN   = errors.New("report: color requested for NaN value")
)

// scoreStops are the anchor colors of the retrieval-score scale: red for a
// failed retrieval, through yellow, to green for a perfect one.
var scoreStops = []color.NRGBA{
	{R: 0xf0, G: 0x49, B: 0x6e, A: 0xff},
	{R: 0xeb, G: 0xb8, B: 0x39, A: 0xff},
	{R: 0x0c, G: 0xd7, B: 0x9f, A: 0xff},
}

// ScoreColorMap linearly interpolates the red/yellow/green score scale over
// [min, max]. It implements palette.ColorMap so the same scale drives both
// the heatmap and the color bar.
type ScoreColorMap struct {
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*ScoreColorMap)(nil)

// NewScoreColorMap returns a score color map spanning [min, max].
func NewScoreColorMap(min, max float64) *ScoreColorMap {
	return &ScoreColorMap{min: min, max: max, alpha: 1}
}

// At returns the interpolated color for v. Values outside [Min, Max] and NaN
// are errors; callers that want clamping must clamp first.
func (m *ScoreColorMap) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, errColorMapNaN
	}
	if v < m.min || v > m.max {
		return nil, errColorMapRange
	}

	span := m.max - m.min
	t := 0.0
	if span > 0 {
		t = (v - m.min) / span
	}

	// Position within the stop sequence.
	scaled := t * float64(len(scoreStops)-1)
	i := int(scaled)
	if i >= len(scoreStops)-1 {
		i = len(scoreStops) - 2
	}
	frac := scaled - float64(i)

	lo, hi := scoreStops[i], scoreStops[i+1]
	c := color.NRGBA{
		R: lerpByte(lo.R, hi.R, frac),
		G: lerpByte(lo.G, hi.G, frac),
		B: lerpByte(lo.B, hi.B, frac),
		A: uint8(m.alpha*255 + 0.5),
	}
	return c, nil
}

func (m *ScoreColorMap) Min() float64       { return m.min }
func (m *ScoreColorMap) SetMin(v float64)   { m.min = v }
func (m *ScoreColorMap) Max() float64       { return m.max }
func (m *ScoreColorMap) SetMax(v float64)   { m.max = v }
func (m *ScoreColorMap) Alpha() float64     { return m.alpha }
func (m *ScoreColorMap) SetAlpha(a float64) { m.alpha = a }

// Palette samples the map at n evenly spaced values.
func (m *ScoreColorMap) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	colors := make([]color.Color, n)
	step := (m.max - m.min) / float64(n-1)
	for i := range colors {
		c, err := m.At(m.min + float64(i)*step)
		if err != nil {
			// Sampling stays inside [min, max]; only float rounding past max
			// can land here.
			c, _ = m.At(m.max)
		}
		colors[i] = c
	}
	return scorePalette(colors)
}

type scorePalette []color.Color

func (p scorePalette) Colors() []color.Color { return p }

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
