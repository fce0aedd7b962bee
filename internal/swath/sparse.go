package swath

// Cell addresses one grid cell by its (time, x, y) bin indices.
type Cell struct {
	Time int
	X    int
	Y    int
}

// CellStats is the accumulator record for one cell: how many observations
// landed in it and the running sum of their values. After Normalize, Sum
// holds the cell mean instead.
type CellStats struct {
	Count uint32
	Sum   float64
}

// SparseGrid accumulates per-cell statistics in a map keyed by bin index
// triples. Use it when the touched cell set is much smaller than the full
// grid; Materialize converts it to dense arrays afterwards.
type SparseGrid struct {
	geom  *Geometry
	cells map[Cell]*CellStats
}

// NewSparseGrid returns an empty sparse accumulator over geom.
func NewSparseGrid(geom *Geometry) *SparseGrid {
	return &SparseGrid{geom: geom, cells: make(map[Cell]*CellStats)}
}

// Geometry returns the grid geometry the accumulator was built over.
func (g *SparseGrid) Geometry() *Geometry { return g.geom }

// Len returns the number of touched cells.
func (g *SparseGrid) Len() int { return len(g.cells) }

// Stats returns the accumulated record for cell c, if the cell was ever
// touched.
func (g *SparseGrid) Stats(c Cell) (CellStats, bool) {
	st, ok := g.cells[c]
	if !ok {
		return CellStats{}, false
	}
	return *st, true
}

// Visit calls fn for every touched cell, in no particular order.
func (g *SparseGrid) Visit(fn func(Cell, CellStats)) {
	for c, st := range g.cells {
		fn(c, *st)
	}
}

// Accumulate folds one observation batch into the grid. Rows whose every
// value is NaN are skipped before their time bin is computed; individual
// NaN pixels are skipped. Out-of-range coordinates clamp into the nearest
// edge bin. May be called repeatedly across batches.
func (g *SparseGrid) Accumulate(s *Swath) {
	for i := 0; i < s.Rows; i++ {
		if s.rowAllMissing(i) {
			continue
		}
		// Time is a per-row quantity; bin it once for the whole scan line.
		it := g.geom.Time.Bin(s.Time[i])
		base := i * s.Cols
		for j := 0; j < s.Cols; j++ {
			v := s.Data[base+j]
			if v != v { // NaN
				continue
			}
			c := Cell{
				Time: it,
				X:    g.geom.X.Bin(s.X[base+j]),
				Y:    g.geom.Y.Bin(s.Y[base+j]),
			}
			if st, ok := g.cells[c]; ok {
				st.Count++
				st.Sum += v
			} else {
				g.cells[c] = &CellStats{Count: 1, Sum: v}
			}
		}
	}
}

// Merge folds another pre-normalization accumulator over the same geometry
// into g by elementwise summation of counts and sums. Intended for
// combining worker-local partial grids before a single Normalize.
func (g *SparseGrid) Merge(other *SparseGrid) error {
	if !g.geom.Equal(other.geom) {
		return ErrShapeMismatch
	}
	for c, st := range other.cells {
		if mine, ok := g.cells[c]; ok {
			mine.Count += st.Count
			mine.Sum += st.Sum
		} else {
			g.cells[c] = &CellStats{Count: st.Count, Sum: st.Sum}
		}
	}
	return nil
}

// Normalize converts accumulated sums to means in place. Every touched
// cell has count >= 1, so no division by zero can occur. Call exactly
// once: normalizing twice divides means by counts again and produces
// invalid cell ratios.
func (g *SparseGrid) Normalize() {
	normalizeCells(g)
}

// visitCells implements the accumulated-state view for normalizeCells:
// touched cells only, so the zero-count branch never fires here.
func (g *SparseGrid) visitCells(fn func(count uint32, sum *float64)) {
	for _, st := range g.cells {
		fn(st.Count, &st.Sum)
	}
}
