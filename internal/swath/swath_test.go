package swath

import (
	"errors"
	"math"
	"testing"
)

var nan = math.NaN()

// helper to build a swath or fail the test
func mustSwath(t *testing.T, time, x, y, data []float64, cols int) *Swath {
	t.Helper()
	s, err := NewSwath(time, x, y, data, cols)
	if err != nil {
		t.Fatalf("NewSwath failed: %v", err)
	}
	return s
}

func TestNewSwath_RejectsMismatchedExtents(t *testing.T) {
	time := []float64{0, 1}
	good := []float64{1, 2, 3, 4}
	short := []float64{1, 2, 3}

	if _, err := NewSwath(time, short, good, good, 2); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for short x, got %v", err)
	}
	if _, err := NewSwath(time, good, good, short, 2); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for short data, got %v", err)
	}
	if _, err := NewSwath(time, good, good, good, 0); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for zero cols, got %v", err)
	}
	if _, err := NewSwath(time, good, good, good, 2); err != nil {
		t.Fatalf("valid swath rejected: %v", err)
	}
}

func TestRowAllMissing(t *testing.T) {
	s := mustSwath(t,
		[]float64{0, 1, 2},
		make([]float64, 6), make([]float64, 6),
		[]float64{nan, nan, 1, nan, nan, nan},
		2)
	if !s.rowAllMissing(0) {
		t.Fatal("row 0 should be all missing")
	}
	if s.rowAllMissing(1) {
		t.Fatal("row 1 has data in column 0")
	}
	if !s.rowAllMissing(2) {
		t.Fatal("row 2 should be all missing")
	}
}

func TestTimeWindow(t *testing.T) {
	s := mustSwath(t,
		[]float64{0, 1, 2, 3},
		[]float64{10, 11, 20, 21, 30, 31, 40, 41},
		[]float64{50, 51, 60, 61, 70, 71, 80, 81},
		[]float64{1, 2, 3, 4, 5, 6, 7, 8},
		2)

	// half-open: row at t=1 is kept, row at t=3 is not
	w := s.TimeWindow(1, 3)
	if w.Rows != 2 || w.Cols != 2 {
		t.Fatalf("expected 2x2 subset, got %dx%d", w.Rows, w.Cols)
	}
	if w.Time[0] != 1 || w.Time[1] != 2 {
		t.Fatalf("unexpected subset times: %v", w.Time)
	}
	if w.DataAt(0, 0) != 3 || w.DataAt(1, 1) != 6 {
		t.Fatalf("unexpected subset data: %v", w.Data)
	}
	if w.X[0] != 20 || w.Y[3] != 71 {
		t.Fatalf("coordinates not carried over: x=%v y=%v", w.X, w.Y)
	}

	// subset is a copy, not a view
	w.Data[0] = 99
	if s.DataAt(1, 0) != 3 {
		t.Fatal("mutating the subset changed the source swath")
	}

	if empty := s.TimeWindow(100, 200); empty.Rows != 0 {
		t.Fatalf("expected empty window, got %d rows", empty.Rows)
	}
}
