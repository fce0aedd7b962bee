package sqlite

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swath.report/internal/db"
	"github.com/banshee-data/swath.report/internal/monitoring"
	"github.com/banshee-data/swath.report/internal/swath"
)

func newTestStore(t *testing.T) *GridStore {
	t.Helper()
	t.Cleanup(monitoring.Mute())

	database, err := db.OpenDB(t.TempDir() + "/grids.db")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.MigrateUp())

	return NewGridStore(database.DB)
}

// gridded scenario shared by the store tests: one pixel each in cells
// (0,0,0) and (0,1,1) of a 2x2x2 grid.
func testSparseGrid(t *testing.T) *swath.SparseGrid {
	t.Helper()
	geom, err := swath.NewGeometry([]float64{0, 1, 2}, []float64{0, 10, 20}, []float64{0, 5, 10})
	require.NoError(t, err)
	s, err := swath.NewSwath([]float64{0.5}, []float64{5, 15}, []float64{2, 8}, []float64{10, 20}, 2)
	require.NoError(t, err)
	g := swath.NewSparseGrid(geom)
	g.Accumulate(s)
	g.Normalize()
	return g
}

func TestGridStore_InsertAndGet(t *testing.T) {
	store := newTestStore(t)

	snap, err := SnapshotFromSparse("run-a", testSparseGrid(t), "granule 1")
	require.NoError(t, err)
	require.NoError(t, store.Insert(snap))
	require.NotEmpty(t, snap.SnapshotID, "insert should assign a snapshot id")
	require.NotZero(t, snap.CreatedUnixNanos)

	got, err := store.GetByID(snap.SnapshotID)
	require.NoError(t, err)
	require.Equal(t, "run-a", got.RunID)
	require.Equal(t, "granule 1", got.Note)
	require.Equal(t, int64(2), got.Observations)
	require.Equal(t, 2, got.TimeBins)
	require.Equal(t, 2, got.XBins)
	require.Equal(t, 2, got.YBins)

	geom, err := got.Geometry()
	require.NoError(t, err)

	counts, err := got.Counts()
	require.NoError(t, err)
	values, err := got.Values()
	require.NoError(t, err)
	require.Len(t, counts, geom.NumCells())
	require.Len(t, values, geom.NumCells())

	require.Equal(t, uint32(1), counts[geom.Idx(0, 0, 0)])
	require.Equal(t, float32(10), values[geom.Idx(0, 0, 0)])
	require.Equal(t, uint32(1), counts[geom.Idx(0, 1, 1)])
	require.Equal(t, float32(20), values[geom.Idx(0, 1, 1)])

	// untouched cells survive the round trip as count 0 / NaN
	require.Equal(t, uint32(0), counts[geom.Idx(1, 0, 0)])
	require.True(t, math.IsNaN(float64(values[geom.Idx(1, 0, 0)])))
}

func TestGridStore_DenseSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)

	geom, err := swath.NewGeometry([]float64{0, 1}, []float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)
	s, err := swath.NewSwath([]float64{0.5}, []float64{0.5, 0.5}, []float64{0.5, 0.5}, []float64{4, 6}, 2)
	require.NoError(t, err)
	d := swath.NewDenseGrid(geom)
	d.Accumulate(s)
	d.Normalize()

	snap, err := SnapshotFromDense("run-b", d, "")
	require.NoError(t, err)
	require.NoError(t, store.Insert(snap))

	got, err := store.GetLatest("run-b")
	require.NoError(t, err)
	counts, err := got.Counts()
	require.NoError(t, err)
	values, err := got.Values()
	require.NoError(t, err)
	require.Equal(t, uint32(2), counts[0])
	require.Equal(t, float32(5), values[0])
}

func TestGridStore_ListByRunOrdering(t *testing.T) {
	store := newTestStore(t)
	g := testSparseGrid(t)

	ts := time.Unix(1000, 0)
	store.now = func() time.Time { return ts }

	var ids []string
	for i := 0; i < 3; i++ {
		snap, err := SnapshotFromSparse("run-c", g, "")
		require.NoError(t, err)
		require.NoError(t, store.Insert(snap))
		ids = append(ids, snap.SnapshotID)
		ts = ts.Add(time.Minute)
	}

	list, err := store.ListByRun("run-c")
	require.NoError(t, err)
	require.Len(t, list, 3)
	// newest first
	require.Equal(t, ids[2], list[0].SnapshotID)
	require.Equal(t, ids[0], list[2].SnapshotID)

	latest, err := store.GetLatest("run-c")
	require.NoError(t, err)
	require.Equal(t, ids[2], latest.SnapshotID)
}

func TestGridStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetByID("no-such-snapshot")
	require.Error(t, err)
}
