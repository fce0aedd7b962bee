package swath

import (
	"fmt"
	"math"
)

// Swath is one batch of observations: a 2-D block of pixels where each row
// is a time-ordered scan line and each column a cross-track pixel. Time is
// per row; X, Y and Data are per pixel, stored row-major in flat slices.
// Missing values are NaN.
type Swath struct {
	Rows int
	Cols int

	// Time holds one scan time per row (len Rows).
	Time []float64
	// X, Y, Data hold per-pixel coordinates and values (len Rows*Cols).
	X    []float64
	Y    []float64
	Data []float64
}

// NewSwath validates the batch extents and wraps the slices without
// copying. len(time) fixes the row count; x, y and data must each hold
// rows*cols values.
func NewSwath(time, x, y, data []float64, cols int) (*Swath, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%w: swath needs a positive column count, got %d", ErrShapeMismatch, cols)
	}
	rows := len(time)
	n := rows * cols
	if len(x) != n || len(y) != n || len(data) != n {
		return nil, fmt.Errorf("%w: swath extents disagree: %d rows x %d cols wants %d pixels, got x=%d y=%d data=%d",
			ErrShapeMismatch, rows, cols, n, len(x), len(y), len(data))
	}
	return &Swath{Rows: rows, Cols: cols, Time: time, X: x, Y: y, Data: data}, nil
}

// at returns the flat offset of pixel (row i, column j).
func (s *Swath) at(i, j int) int { return i*s.Cols + j }

// DataAt returns the measured value at (row i, column j).
func (s *Swath) DataAt(i, j int) float64 { return s.Data[s.at(i, j)] }

// rowAllMissing reports whether every value in row i is NaN. Used as the
// row fast path: such rows are skipped before their time bin is computed.
func (s *Swath) rowAllMissing(i int) bool {
	base := i * s.Cols
	for j := 0; j < s.Cols; j++ {
		if !math.IsNaN(s.Data[base+j]) {
			return false
		}
	}
	return true
}

// TimeWindow returns a new Swath holding only the scan lines whose time
// falls in [t0, t1). Column structure is preserved; pixel data is copied so
// the subset is independent of the source batch. The result may have zero
// rows.
func (s *Swath) TimeWindow(t0, t1 float64) *Swath {
	keep := make([]int, 0, s.Rows)
	for i := 0; i < s.Rows; i++ {
		if s.Time[i] >= t0 && s.Time[i] < t1 {
			keep = append(keep, i)
		}
	}

	out := &Swath{
		Rows: len(keep),
		Cols: s.Cols,
		Time: make([]float64, len(keep)),
		X:    make([]float64, len(keep)*s.Cols),
		Y:    make([]float64, len(keep)*s.Cols),
		Data: make([]float64, len(keep)*s.Cols),
	}
	for oi, i := range keep {
		out.Time[oi] = s.Time[i]
		src := i * s.Cols
		dst := oi * s.Cols
		copy(out.X[dst:dst+s.Cols], s.X[src:src+s.Cols])
		copy(out.Y[dst:dst+s.Cols], s.Y[src:src+s.Cols])
		copy(out.Data[dst:dst+s.Cols], s.Data[src:src+s.Cols])
	}
	return out
}
