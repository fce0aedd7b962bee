package swath

import "math"

// accumulatedCells is the view shared by both grid representations for
// normalization: visit accumulated cells and rewrite each sum in place.
// The sparse grid visits only touched cells; the dense grid visits all.
type accumulatedCells interface {
	visitCells(fn func(count uint32, sum *float64))
}

// normalizeCells turns running sums into means. Zero-count cells become
// NaN. The result is independent of cell visitation order.
func normalizeCells(g accumulatedCells) {
	g.visitCells(func(count uint32, sum *float64) {
		if count == 0 {
			*sum = math.NaN()
			return
		}
		*sum /= float64(count)
	})
}
