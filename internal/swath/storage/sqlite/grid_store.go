package sqlite

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/swath.report/internal/monitoring"
	"github.com/banshee-data/swath.report/internal/swath"
)

// GridSnapshot matches the grid_snapshots table structure. CountBlob and
// DataBlob hold the materialized count (uint32) and mean (float32) arrays,
// gob-encoded and gzip-compressed, in time-major order.
type GridSnapshot struct {
	SnapshotID       string
	RunID            string
	CreatedUnixNanos int64
	TimeBins         int
	XBins            int
	YBins            int
	EdgesJSON        string
	CountBlob        []byte
	DataBlob         []byte
	Observations     int64
	Note             string
}

// gridEdges is the serialized form of the three edge arrays.
type gridEdges struct {
	Time []float64 `json:"time"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// Geometry reconstructs the grid geometry from the snapshot's edge JSON.
func (s *GridSnapshot) Geometry() (*swath.Geometry, error) {
	var e gridEdges
	if err := json.Unmarshal([]byte(s.EdgesJSON), &e); err != nil {
		return nil, fmt.Errorf("decode edges json: %w", err)
	}
	return swath.NewGeometry(e.Time, e.X, e.Y)
}

// Counts decodes the per-cell observation counts.
func (s *GridSnapshot) Counts() ([]uint32, error) {
	var counts []uint32
	if err := decodeBlob(s.CountBlob, &counts); err != nil {
		return nil, fmt.Errorf("decode count blob: %w", err)
	}
	return counts, nil
}

// Values decodes the per-cell means.
func (s *GridSnapshot) Values() ([]float32, error) {
	var values []float32
	if err := decodeBlob(s.DataBlob, &values); err != nil {
		return nil, fmt.Errorf("decode data blob: %w", err)
	}
	return values, nil
}

// SnapshotFromSparse materializes a normalized sparse grid into a snapshot
// ready for insertion.
func SnapshotFromSparse(runID string, g *swath.SparseGrid, note string) (*GridSnapshot, error) {
	counts, values := swath.Materialize(g)
	var obs int64
	for _, c := range counts {
		obs += int64(c)
	}
	return buildSnapshot(runID, g.Geometry(), counts, values, obs, note)
}

// SnapshotFromDense converts a normalized dense grid into a snapshot,
// narrowing means to float32 for storage.
func SnapshotFromDense(runID string, g *swath.DenseGrid, note string) (*GridSnapshot, error) {
	values := make([]float32, len(g.Sums))
	var obs int64
	for i, v := range g.Sums {
		values[i] = float32(v)
		obs += int64(g.Counts[i])
	}
	counts := make([]uint32, len(g.Counts))
	copy(counts, g.Counts)
	return buildSnapshot(runID, g.Geometry(), counts, values, obs, note)
}

func buildSnapshot(runID string, geom *swath.Geometry, counts []uint32, values []float32, obs int64, note string) (*GridSnapshot, error) {
	countBlob, err := encodeBlob(counts)
	if err != nil {
		return nil, fmt.Errorf("encode count blob: %w", err)
	}
	dataBlob, err := encodeBlob(values)
	if err != nil {
		return nil, fmt.Errorf("encode data blob: %w", err)
	}
	edges, err := json.Marshal(gridEdges{Time: geom.Time.Edges, X: geom.X.Edges, Y: geom.Y.Edges})
	if err != nil {
		return nil, fmt.Errorf("encode edges json: %w", err)
	}
	nt, nx, ny := geom.Shape()
	return &GridSnapshot{
		RunID:        runID,
		TimeBins:     nt,
		XBins:        nx,
		YBins:        ny,
		EdgesJSON:    string(edges),
		CountBlob:    countBlob,
		DataBlob:     dataBlob,
		Observations: obs,
		Note:         note,
	}, nil
}

// encodeBlob compresses a numeric slice using gob encoding and gzip.
func encodeBlob(v any) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(v); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeBlob decompresses and decodes a blob written by encodeBlob.
func decodeBlob(blob []byte, out any) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()
	return gob.NewDecoder(gz).Decode(out)
}

// GridStore provides persistence for grid snapshots.
type GridStore struct {
	db *sql.DB

	// now is the snapshot timestamp source, replaceable in tests.
	now func() time.Time
}

// NewGridStore creates a GridStore backed by the given database.
func NewGridStore(db *sql.DB) *GridStore {
	return &GridStore{db: db, now: time.Now}
}

// Insert persists a snapshot. An empty SnapshotID gets a generated UUID;
// a zero CreatedUnixNanos gets the current time.
func (s *GridStore) Insert(snap *GridSnapshot) error {
	if snap.SnapshotID == "" {
		snap.SnapshotID = uuid.New().String()
	}
	if snap.RunID == "" {
		snap.RunID = uuid.New().String()
	}
	if snap.CreatedUnixNanos == 0 {
		snap.CreatedUnixNanos = s.now().UnixNano()
	}

	err := retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO grid_snapshots (
				snapshot_id, run_id, created_unix_nanos,
				time_bins, x_bins, y_bins,
				edges_json, count_blob, data_blob, observations, note
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.SnapshotID, snap.RunID, snap.CreatedUnixNanos,
			snap.TimeBins, snap.XBins, snap.YBins,
			snap.EdgesJSON, snap.CountBlob, snap.DataBlob, snap.Observations, snap.Note,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert grid snapshot: %w", err)
	}

	monitoring.Logf("[GridStore] Persisted snapshot %s run=%s shape=(%d,%d,%d) obs=%d blob=%dB",
		snap.SnapshotID, snap.RunID, snap.TimeBins, snap.XBins, snap.YBins,
		snap.Observations, len(snap.CountBlob)+len(snap.DataBlob))
	return nil
}

// GetByID returns the snapshot with the given ID.
func (s *GridStore) GetByID(snapshotID string) (*GridSnapshot, error) {
	row := s.db.QueryRow(selectCols+` WHERE snapshot_id = ?`, snapshotID)
	return scanSnapshot(row)
}

// GetLatest returns the most recent snapshot for a run.
func (s *GridStore) GetLatest(runID string) (*GridSnapshot, error) {
	row := s.db.QueryRow(selectCols+`
		WHERE run_id = ?
		ORDER BY created_unix_nanos DESC
		LIMIT 1`, runID)
	return scanSnapshot(row)
}

// ListByRun returns all snapshots for a run, newest first.
func (s *GridStore) ListByRun(runID string) ([]*GridSnapshot, error) {
	rows, err := s.db.Query(selectCols+`
		WHERE run_id = ?
		ORDER BY created_unix_nanos DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query grid snapshots: %w", err)
	}
	defer rows.Close()

	var out []*GridSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

const selectCols = `
	SELECT snapshot_id, run_id, created_unix_nanos,
	       time_bins, x_bins, y_bins,
	       edges_json, count_blob, data_blob, observations, note
	FROM grid_snapshots`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*GridSnapshot, error) {
	var snap GridSnapshot
	var note sql.NullString
	err := row.Scan(
		&snap.SnapshotID, &snap.RunID, &snap.CreatedUnixNanos,
		&snap.TimeBins, &snap.XBins, &snap.YBins,
		&snap.EdgesJSON, &snap.CountBlob, &snap.DataBlob, &snap.Observations, &note,
	)
	if err != nil {
		return nil, fmt.Errorf("scan grid snapshot: %w", err)
	}
	snap.Note = note.String
	return &snap, nil
}

// retryOnBusy retries a write a few times when sqlite reports the database
// is locked by another writer.
func retryOnBusy(fn func() error) error {
	const attempts = 5
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		msg := err.Error()
		if !strings.Contains(msg, "locked") && !strings.Contains(msg, "busy") {
			return err
		}
		time.Sleep(time.Duration(i+1) * 10 * time.Millisecond)
	}
	return err
}
