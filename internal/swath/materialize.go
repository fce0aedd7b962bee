package swath

import "math"

// CountValue constrains the numeric type of materialized count arrays.
type CountValue interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// DataValue constrains the numeric type of materialized data arrays.
type DataValue interface {
	~float32 | ~float64
}

// MaterializeAs converts a sparse accumulator into flat, time-major dense
// arrays with caller-chosen numeric types, to control the memory footprint
// of large grids. Counts fill with zero and data with NaN; only touched
// cells are written, so absent cells stay distinguishable from cells whose
// value happens to be zero.
func MaterializeAs[C CountValue, D DataValue](g *SparseGrid) (counts []C, data []D) {
	n := g.geom.NumCells()
	counts = make([]C, n)
	data = make([]D, n)
	nan := D(math.NaN())
	for i := range data {
		data[i] = nan
	}
	g.Visit(func(c Cell, st CellStats) {
		idx := g.geom.Idx(c.Time, c.X, c.Y)
		counts[idx] = C(st.Count)
		data[idx] = D(st.Sum)
	})
	return counts, data
}

// Materialize is MaterializeAs with the default types: unsigned 32-bit
// counts and 32-bit floating point data.
func Materialize(g *SparseGrid) ([]uint32, []float32) {
	return MaterializeAs[uint32, float32](g)
}
