package analysis

// Key identifies one cell of the pivot: how deep the needle was inserted and
// how long the haystack was.
type Key struct {
	DepthPercent  float64
	ContextLength int
}

// Table maps each (depth, context length) pair to the mean score across every
// trial recorded at that pair. Duplicate keys in the input are merged by
// averaging; a key present in the input appears in Cells exactly once.
type Table struct {
	Cells   map[Key]float64
	Trials  int // records that contributed to Cells
	Skipped int // records dropped as malformed (missing field, NaN/Inf score)
}

// Grid is a Table reshaped into a dense depth × context-length matrix.
// Depths (rows) and ContextLengths (columns) are the distinct axis values seen
// in the table, sorted ascending. Scores[r][c] holds the mean score for
// (Depths[r], ContextLengths[c]) and is NaN when that combination never
// occurred. NaN is the only missing-cell sentinel; cells are never defaulted
// to zero.
type Grid struct {
	Depths         []float64
	ContextLengths []int
	Scores         [][]float64
}
