package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Jianzhao-Huang/JFK-NIAH/internal/results"
)

// Aggregate groups trial records by (depth, context length) and computes the
// arithmetic mean of the scores in each group. Input order is irrelevant:
// sums are accumulated per key and divided once, so the result is identical
// for any permutation of records. Records missing a required field or
// carrying a NaN/Inf score are counted in Skipped and excluded. Empty input
// yields an empty table.
func Aggregate(records []results.TrialRecord) *Table {
	table := &Table{Cells: make(map[Key]float64)}

	sums := make(map[Key]float64)
	counts := make(map[Key]int)
	for _, rec := range records {
		if !rec.Complete() {
			table.Skipped++
			continue
		}
		score := *rec.Score
		if math.IsNaN(score) || math.IsInf(score, 0) {
			table.Skipped++
			continue
		}

		key := Key{DepthPercent: *rec.DepthPercent, ContextLength: *rec.ContextLength}
		sums[key] += score
		counts[key]++
		table.Trials++
	}

	for key, sum := range sums {
		table.Cells[key] = sum / float64(counts[key])
	}
	return table
}

// ToGrid reshapes a table into a dense grid. Rows are the distinct depths and
// columns the distinct context lengths present in the table, both sorted
// ascending. Combinations absent from the table stay NaN; no interpolation is
// performed.
func ToGrid(table *Table) *Grid {
	depthSet := make(map[float64]struct{})
	ctxSet := make(map[int]struct{})
	for key := range table.Cells {
		depthSet[key.DepthPercent] = struct{}{}
		ctxSet[key.ContextLength] = struct{}{}
	}

	grid := &Grid{
		Depths:         make([]float64, 0, len(depthSet)),
		ContextLengths: make([]int, 0, len(ctxSet)),
	}
	for depth := range depthSet {
		grid.Depths = append(grid.Depths, depth)
	}
	for ctx := range ctxSet {
		grid.ContextLengths = append(grid.ContextLengths, ctx)
	}
	sort.Float64s(grid.Depths)
	sort.Ints(grid.ContextLengths)

	grid.Scores = make([][]float64, len(grid.Depths))
	for r, depth := range grid.Depths {
		row := make([]float64, len(grid.ContextLengths))
		for c, ctx := range grid.ContextLengths {
			if mean, ok := table.Cells[Key{DepthPercent: depth, ContextLength: ctx}]; ok {
				row[c] = mean
			} else {
				row[c] = math.NaN()
			}
		}
		grid.Scores[r] = row
	}
	return grid
}

// RowMeans returns the mean of the defined cells in each row, one entry per
// depth. A row with no defined cells yields NaN, never zero.
func RowMeans(grid *Grid) []float64 {
	means := make([]float64, len(grid.Depths))
	for r := range grid.Scores {
		means[r] = meanDefined(grid.Scores[r])
	}
	return means
}

// ColMeans returns the mean of the defined cells in each column, one entry
// per context length. A column with no defined cells yields NaN, never zero.
func ColMeans(grid *Grid) []float64 {
	means := make([]float64, len(grid.ContextLengths))
	for c := range grid.ContextLengths {
		col := make([]float64, 0, len(grid.Depths))
		for r := range grid.Depths {
			col = append(col, grid.Scores[r][c])
		}
		means[c] = meanDefined(col)
	}
	return means
}

// OverallMean is the mean of every defined cell, NaN when the grid has none.
func (g *Grid) OverallMean() float64 {
	all := make([]float64, 0, len(g.Depths)*len(g.ContextLengths))
	for _, row := range g.Scores {
		all = append(all, row...)
	}
	return meanDefined(all)
}

// ScoreRange returns the smallest and largest defined cell values,
// (NaN, NaN) when the grid has no defined cells.
func (g *Grid) ScoreRange() (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, row := range g.Scores {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(min) || v < min {
				min = v
			}
			if math.IsNaN(max) || v > max {
				max = v
			}
		}
	}
	return min, max
}

func meanDefined(values []float64) float64 {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return math.NaN()
	}
	return stat.Mean(defined, nil)
}
