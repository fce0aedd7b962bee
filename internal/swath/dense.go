package swath

import "fmt"

// DenseGrid accumulates per-cell statistics directly into pre-allocated
// flat arrays with time-major index arithmetic. Use it when the full grid
// is already materialized or most cells are expected to be touched.
type DenseGrid struct {
	geom *Geometry

	// Counts holds per-cell observation counts, Sums the running value
	// sums (cell means after Normalize). Both have length
	// geom.NumCells(), indexed via Idx.
	Counts []uint32
	Sums   []float64
}

// NewDenseGrid allocates a zeroed dense accumulator over geom.
func NewDenseGrid(geom *Geometry) *DenseGrid {
	n := geom.NumCells()
	return &DenseGrid{
		geom:   geom,
		Counts: make([]uint32, n),
		Sums:   make([]float64, n),
	}
}

// NewDenseGridFrom wraps caller-provided count and sum arrays. The arrays
// must be zero-initialized before first use and their length must match
// the edge-derived grid shape.
func NewDenseGridFrom(geom *Geometry, counts []uint32, sums []float64) (*DenseGrid, error) {
	n := geom.NumCells()
	if len(counts) != n || len(sums) != n {
		return nil, fmt.Errorf("%w: grid wants %d cells, got counts=%d sums=%d",
			ErrShapeMismatch, n, len(counts), len(sums))
	}
	return &DenseGrid{geom: geom, Counts: counts, Sums: sums}, nil
}

// Geometry returns the grid geometry the accumulator was built over.
func (g *DenseGrid) Geometry() *Geometry { return g.geom }

// Idx converts (time, x, y) bin indices into the flat array offset.
func (g *DenseGrid) Idx(it, ix, iy int) int { return g.geom.Idx(it, ix, iy) }

// CountAt returns the observation count of cell (it, ix, iy).
func (g *DenseGrid) CountAt(it, ix, iy int) uint32 { return g.Counts[g.Idx(it, ix, iy)] }

// ValueAt returns the running sum (or, after Normalize, the mean) of cell
// (it, ix, iy).
func (g *DenseGrid) ValueAt(it, ix, iy int) float64 { return g.Sums[g.Idx(it, ix, iy)] }

// Accumulate folds one observation batch into the grid. Same traversal and
// skip semantics as SparseGrid.Accumulate; no key-existence branch is
// needed since every cell already exists.
func (g *DenseGrid) Accumulate(s *Swath) {
	for i := 0; i < s.Rows; i++ {
		if s.rowAllMissing(i) {
			continue
		}
		it := g.geom.Time.Bin(s.Time[i])
		base := i * s.Cols
		for j := 0; j < s.Cols; j++ {
			v := s.Data[base+j]
			if v != v { // NaN
				continue
			}
			idx := g.geom.Idx(it, g.geom.X.Bin(s.X[base+j]), g.geom.Y.Bin(s.Y[base+j]))
			g.Counts[idx]++
			g.Sums[idx] += v
		}
	}
}

// Merge folds another pre-normalization accumulator over the same geometry
// into g by elementwise summation.
func (g *DenseGrid) Merge(other *DenseGrid) error {
	if !g.geom.Equal(other.geom) {
		return ErrShapeMismatch
	}
	for i := range g.Counts {
		g.Counts[i] += other.Counts[i]
		g.Sums[i] += other.Sums[i]
	}
	return nil
}

// Normalize converts accumulated sums to means in place. Cells with zero
// count get NaN so "no data" is never confused with a zero mean. Call
// exactly once; see SparseGrid.Normalize.
func (g *DenseGrid) Normalize() {
	normalizeCells(g)
}

// visitCells implements the accumulated-state view for normalizeCells:
// every cell, including untouched ones.
func (g *DenseGrid) visitCells(fn func(count uint32, sum *float64)) {
	for i := range g.Sums {
		fn(g.Counts[i], &g.Sums[i])
	}
}
