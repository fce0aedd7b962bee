package monitor

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/swath.report/internal/swath"
)

// viridis is the color ramp used for the visual map, matching the static
// heatmap's low-to-high reading.
var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// RenderSliceHTML writes an interactive HTML heatmap of time slice it of a
// normalized dense grid. Cells without data render as gaps.
func RenderSliceHTML(g *swath.DenseGrid, it int, title string, w io.Writer) error {
	nt, nx, ny := g.Geometry().Shape()
	if it < 0 || it >= nt {
		return fmt.Errorf("monitor: time slice %d out of range [0,%d)", it, nt)
	}

	lo, hi, ok := sliceRange(g, it)
	if !ok {
		return fmt.Errorf("monitor: time slice %d holds no data", it)
	}

	xLabels := make([]string, nx)
	for ix := 0; ix < nx; ix++ {
		xLabels[ix] = fmt.Sprintf("%g", g.Geometry().X.Center(ix))
	}
	yLabels := make([]string, ny)
	for iy := 0; iy < ny; iy++ {
		yLabels[iy] = fmt.Sprintf("%g", g.Geometry().Y.Center(iy))
	}

	data := make([]opts.HeatMapData, 0, nx*ny)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			v := g.ValueAt(it, ix, iy)
			if math.IsNaN(v) {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{ix, iy, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("time bin %d of %d, %d covered cells", it, nt, len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "y", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("mean", data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("monitor: render chart: %w", err)
	}
	return nil
}
