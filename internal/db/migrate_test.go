package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrateUpDown(t *testing.T) {
	database := openTestDB(t)

	if err := database.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	version, dirty, err := database.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if dirty {
		t.Fatal("schema reported dirty after clean migration")
	}
	if version == 0 {
		t.Fatal("expected a nonzero version after MigrateUp")
	}

	// schema must actually exist
	var name string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='grid_snapshots'`).Scan(&name)
	if err != nil {
		t.Fatalf("grid_snapshots table missing after MigrateUp: %v", err)
	}

	// up is idempotent
	if err := database.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}

	if err := database.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='grid_snapshots'`).Scan(&name)
	if err == nil {
		t.Fatal("grid_snapshots table still present after MigrateDown")
	}
}

func TestMigrateVersion_Fresh(t *testing.T) {
	database := openTestDB(t)

	version, dirty, err := database.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion on fresh db failed: %v", err)
	}
	if version != 0 || dirty {
		t.Fatalf("fresh db reported version=%d dirty=%v", version, dirty)
	}
}
