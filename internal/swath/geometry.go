package swath

import (
	"fmt"
	"math"
	"sort"
)

// uniformTol is the relative tolerance used to decide whether an axis is
// uniformly spaced. Uniform axes take the closed-form index path.
const uniformTol = 1e-9

// Axis is one gridded dimension: its bin edges plus the derived bin count
// and nominal bin width (edges[1]-edges[0]).
type Axis struct {
	Edges []float64
	Bins  int
	Width float64

	uniform bool
}

func newAxis(name string, edges []float64) (Axis, error) {
	if len(edges) < 2 {
		return Axis{}, fmt.Errorf("%w: %s axis has %d edges, need at least 2", ErrInvalidGeometry, name, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return Axis{}, fmt.Errorf("%w: %s axis edges not strictly increasing at index %d (%g >= %g)",
				ErrInvalidGeometry, name, i-1, edges[i-1], edges[i])
		}
	}
	width := edges[1] - edges[0]
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return Axis{}, fmt.Errorf("%w: %s axis has non-positive bin width %g", ErrInvalidGeometry, name, width)
	}

	own := make([]float64, len(edges))
	copy(own, edges)

	uniform := true
	for i := 1; i < len(own)-1; i++ {
		if math.Abs((own[i+1]-own[i])-width) > uniformTol*math.Abs(width) {
			uniform = false
			break
		}
	}

	return Axis{
		Edges:   own,
		Bins:    len(own) - 1,
		Width:   width,
		uniform: uniform,
	}, nil
}

// Uniform reports whether the axis edges are uniformly spaced.
func (a Axis) Uniform() bool { return a.uniform }

// Bin maps a coordinate onto the axis and clamps the result to
// [0, Bins-1]. Bins are half-open [edge_k, edge_k+1): a value exactly on
// an interior edge belongs to the bin whose lower edge equals it. Values
// outside the grid fold into the nearest edge bin rather than being
// dropped.
func (a Axis) Bin(v float64) int {
	var i int
	if a.uniform {
		i = int(math.Floor((v - a.Edges[0]) / a.Width))
	} else {
		// First edge >= v; an exact edge hit keeps its own bin,
		// otherwise v sits in the preceding interval.
		i = sort.SearchFloat64s(a.Edges, v)
		if i >= len(a.Edges) || a.Edges[i] != v {
			i--
		}
	}
	if i < 0 {
		return 0
	}
	if i >= a.Bins {
		return a.Bins - 1
	}
	return i
}

// Center returns the midpoint of bin i.
func (a Axis) Center(i int) float64 {
	return (a.Edges[i] + a.Edges[i+1]) / 2
}

// equal reports whether two axes share the same edge array.
func (a Axis) equal(b Axis) bool {
	if len(a.Edges) != len(b.Edges) {
		return false
	}
	for i := range a.Edges {
		if a.Edges[i] != b.Edges[i] {
			return false
		}
	}
	return true
}

// Geometry defines the full (time, x, y) grid. Construct with NewGeometry;
// a zero Geometry is not usable.
type Geometry struct {
	Time Axis
	X    Axis
	Y    Axis
}

// NewGeometry validates the three edge arrays and derives per-axis bin
// counts and widths. Validation failures return ErrInvalidGeometry before
// any accumulation can begin.
func NewGeometry(timeEdges, xEdges, yEdges []float64) (*Geometry, error) {
	t, err := newAxis("time", timeEdges)
	if err != nil {
		return nil, err
	}
	x, err := newAxis("x", xEdges)
	if err != nil {
		return nil, err
	}
	y, err := newAxis("y", yEdges)
	if err != nil {
		return nil, err
	}
	return &Geometry{Time: t, X: x, Y: y}, nil
}

// Shape returns the grid dimensions (n_time, n_x, n_y).
func (g *Geometry) Shape() (nt, nx, ny int) {
	return g.Time.Bins, g.X.Bins, g.Y.Bins
}

// NumCells returns the total cell count n_time * n_x * n_y.
func (g *Geometry) NumCells() int {
	return g.Time.Bins * g.X.Bins * g.Y.Bins
}

// Idx converts (time, x, y) bin indices into a flat, time-major array
// offset. Indices must already be clamped to the grid.
func (g *Geometry) Idx(it, ix, iy int) int {
	return (it*g.X.Bins+ix)*g.Y.Bins + iy
}

// Equal reports whether two geometries have identical edges on all axes.
func (g *Geometry) Equal(o *Geometry) bool {
	return g.Time.equal(o.Time) && g.X.equal(o.X) && g.Y.equal(o.Y)
}
