package swath

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a normalized grid: how much of it is covered and how
// the cell means are distributed.
type Summary struct {
	Cells        int     // total grid cells
	Covered      int     // cells with at least one observation
	Coverage     float64 // Covered / Cells
	Observations uint64  // total accumulated observation count

	// Distribution of cell means over covered cells. NaN when no cell is
	// covered.
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes coverage and cell-mean statistics for a normalized
// dense grid.
func Summarize(g *DenseGrid) Summary {
	means := make([]float64, 0, len(g.Sums))
	var obs uint64
	for i, c := range g.Counts {
		if c == 0 {
			continue
		}
		obs += uint64(c)
		means = append(means, g.Sums[i])
	}
	return summarize(g.geom.NumCells(), obs, means)
}

// SummarizeSparse computes the same statistics for a normalized sparse
// grid without materializing it.
func SummarizeSparse(g *SparseGrid) Summary {
	means := make([]float64, 0, g.Len())
	var obs uint64
	g.Visit(func(_ Cell, st CellStats) {
		obs += uint64(st.Count)
		means = append(means, st.Sum)
	})
	return summarize(g.geom.NumCells(), obs, means)
}

func summarize(cells int, obs uint64, means []float64) Summary {
	s := Summary{
		Cells:        cells,
		Covered:      len(means),
		Observations: obs,
		Min:          math.NaN(),
		Max:          math.NaN(),
		Mean:         math.NaN(),
		StdDev:       math.NaN(),
	}
	if cells > 0 {
		s.Coverage = float64(s.Covered) / float64(cells)
	}
	if len(means) == 0 {
		return s
	}
	s.Min = floats.Min(means)
	s.Max = floats.Max(means)
	s.Mean = stat.Mean(means, nil)
	if len(means) > 1 {
		s.StdDev = stat.StdDev(means, nil)
	} else {
		s.StdDev = 0
	}
	return s
}
