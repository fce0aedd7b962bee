// Package monitor renders gridded swath products for visual inspection:
// static PNG heatmaps via gonum/plot and interactive HTML heatmaps via
// go-echarts.
package monitor

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/swath.report/internal/swath"
)

// timeSlice adapts one time bin of a normalized dense grid to the
// plotter.GridXYZ interface. Columns map to the x axis, rows to y; cell
// centers position the heatmap rectangles in data coordinates.
type timeSlice struct {
	g  *swath.DenseGrid
	it int
}

func (s timeSlice) Dims() (c, r int) {
	_, nx, ny := s.g.Geometry().Shape()
	return nx, ny
}

func (s timeSlice) X(c int) float64 { return s.g.Geometry().X.Center(c) }
func (s timeSlice) Y(r int) float64 { return s.g.Geometry().Y.Center(r) }

func (s timeSlice) Z(c, r int) float64 { return s.g.ValueAt(s.it, c, r) }

// sliceRange returns the finite min/max of a time slice. ok is false when
// the slice holds no data at all.
func sliceRange(g *swath.DenseGrid, it int) (lo, hi float64, ok bool) {
	_, nx, ny := g.Geometry().Shape()
	lo, hi = math.Inf(1), math.Inf(-1)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			v := g.ValueAt(it, ix, iy)
			if math.IsNaN(v) {
				continue
			}
			ok = true
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi, ok
}

// SaveSliceHeatmap renders time slice it of a normalized dense grid as a
// PNG heatmap. Cells without data are left blank.
func SaveSliceHeatmap(g *swath.DenseGrid, it int, title, path string) error {
	nt, _, _ := g.Geometry().Shape()
	if it < 0 || it >= nt {
		return fmt.Errorf("monitor: time slice %d out of range [0,%d)", it, nt)
	}

	lo, hi, ok := sliceRange(g, it)
	if !ok {
		return fmt.Errorf("monitor: time slice %d holds no data", it)
	}
	if lo == hi {
		// HeatMap needs a non-degenerate range
		hi = lo + 1
	}

	h := plotter.NewHeatMap(timeSlice{g: g, it: it}, moreland.SmoothBlueRed().Palette(255))
	h.Min, h.Max = lo, hi

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(h)

	if err := p.Save(16*vg.Centimeter, 12*vg.Centimeter, path); err != nil {
		return fmt.Errorf("monitor: save heatmap: %w", err)
	}
	return nil
}
