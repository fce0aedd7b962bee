package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"time": {"start": 0, "stop": 120, "bins": 2},
		"x":    {"start": -10, "stop": 10, "bins": 4},
		"y":    {"start": 0, "stop": 5, "bins": 5},
		"run_id": "run-1",
		"note": "granule 42"
	}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.RunID != "run-1" || c.Note != "granule 42" {
		t.Fatalf("metadata not loaded: %+v", c)
	}

	g, err := c.Geometry()
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	nt, nx, ny := g.Shape()
	if nt != 2 || nx != 4 || ny != 5 {
		t.Fatalf("shape = (%d,%d,%d), want (2,4,5)", nt, nx, ny)
	}
	if g.Time.Width != 60 {
		t.Fatalf("time width = %g, want 60", g.Time.Width)
	}
	if !g.X.Uniform() {
		t.Fatal("config-built axes should be uniform")
	}
}

func TestAxisSpecEdges(t *testing.T) {
	edges := AxisSpec{Start: 0, Stop: 10, Bins: 2}.Edges()
	want := []float64{0, 5, 10}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("edges = %v, want %v", edges, want)
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero bins", `{"time":{"start":0,"stop":1,"bins":0},"x":{"start":0,"stop":1,"bins":1},"y":{"start":0,"stop":1,"bins":1}}`},
		{"empty range", `{"time":{"start":0,"stop":1,"bins":1},"x":{"start":5,"stop":5,"bins":1},"y":{"start":0,"stop":1,"bins":1}}`},
		{"bad json", `{"time":`},
	}
	for _, tc := range cases {
		if _, err := Load(writeConfig(t, tc.body)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
