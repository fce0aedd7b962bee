// Package main provides the swathgrid CLI. It reads swath observation
// batches from CSV, bins them onto the configured (time x x x y) grid,
// prints a coverage summary, persists the gridded product as a database
// snapshot and optionally renders heatmaps of a time slice.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/swath.report/internal/config"
	"github.com/banshee-data/swath.report/internal/db"
	"github.com/banshee-data/swath.report/internal/swath"
	"github.com/banshee-data/swath.report/internal/swath/monitor"
	storage "github.com/banshee-data/swath.report/internal/swath/storage/sqlite"
)

// cliConfig holds configuration for one gridding run.
type cliConfig struct {
	ConfigPath  string
	InputPath   string
	DBPath      string
	HeatmapPath string
	ReportPath  string
	Slice       int
	Dense       bool

	T0, T1    float64
	HasWindow bool
}

func main() {
	// migrate subcommand, dispatched before flag parsing
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		dbPath := "grids.db"
		args := os.Args[2:]
		if len(args) >= 2 && args[0] == "-db" {
			dbPath = args[1]
			args = args[2:]
		}
		db.RunMigrateCommand(args, dbPath)
		return
	}

	var cfg cliConfig
	flag.StringVar(&cfg.ConfigPath, "config", "grid.json", "grid definition JSON file")
	flag.StringVar(&cfg.InputPath, "in", "", "swath observations CSV file (required)")
	flag.StringVar(&cfg.DBPath, "db", "", "sqlite database for snapshot persistence (empty: skip)")
	flag.StringVar(&cfg.HeatmapPath, "heatmap", "", "PNG heatmap output path (empty: skip)")
	flag.StringVar(&cfg.ReportPath, "report", "", "HTML heatmap report output path (empty: skip)")
	flag.IntVar(&cfg.Slice, "slice", 0, "time bin index to render")
	flag.BoolVar(&cfg.Dense, "dense", false, "use the dense accumulator instead of the sparse one")
	t0 := flag.Float64("t0", 0, "window start time (inclusive)")
	t1 := flag.Float64("t1", 0, "window end time (exclusive)")
	flag.Parse()

	if cfg.InputPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg.T0, cfg.T1 = *t0, *t1
	cfg.HasWindow = *t1 > *t0

	if err := run(cfg); err != nil {
		log.Fatalf("[swathgrid] %v", err)
	}
}

func run(cfg cliConfig) error {
	conf, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}
	geom, err := conf.Geometry()
	if err != nil {
		return err
	}

	sw, err := readSwathCSV(cfg.InputPath)
	if err != nil {
		return err
	}
	log.Printf("[swathgrid] Loaded %d scan lines x %d pixels from %s", sw.Rows, sw.Cols, cfg.InputPath)

	if cfg.HasWindow {
		sw = sw.TimeWindow(cfg.T0, cfg.T1)
		log.Printf("[swathgrid] Window [%g, %g) keeps %d scan lines", cfg.T0, cfg.T1, sw.Rows)
	}

	var (
		dense *swath.DenseGrid
		snap  *storage.GridSnapshot
		sum   swath.Summary
	)
	if cfg.Dense {
		dense = swath.NewDenseGrid(geom)
		dense.Accumulate(sw)
		dense.Normalize()
		sum = swath.Summarize(dense)
		snap, err = storage.SnapshotFromDense(conf.RunID, dense, conf.Note)
	} else {
		sp := swath.NewSparseGrid(geom)
		sp.Accumulate(sw)
		sp.Normalize()
		sum = swath.SummarizeSparse(sp)
		if dense, err = denseFromSparse(sp); err != nil {
			return err
		}
		snap, err = storage.SnapshotFromSparse(conf.RunID, sp, conf.Note)
	}
	if err != nil {
		return err
	}

	printSummary(os.Stdout, geom, sum)

	if cfg.DBPath != "" {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.MigrateUp(); err != nil {
			return err
		}
		if err := storage.NewGridStore(database.DB).Insert(snap); err != nil {
			return err
		}
		log.Printf("[swathgrid] Snapshot %s written to %s", snap.SnapshotID, cfg.DBPath)
	}

	if cfg.HeatmapPath != "" {
		title := fmt.Sprintf("cell means, time bin %d", cfg.Slice)
		if err := monitor.SaveSliceHeatmap(dense, cfg.Slice, title, cfg.HeatmapPath); err != nil {
			return err
		}
		log.Printf("[swathgrid] Heatmap written to %s", cfg.HeatmapPath)
	}
	if cfg.ReportPath != "" {
		f, err := os.Create(cfg.ReportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		title := fmt.Sprintf("cell means, time bin %d", cfg.Slice)
		if err := monitor.RenderSliceHTML(dense, cfg.Slice, title, f); err != nil {
			return err
		}
		log.Printf("[swathgrid] Report written to %s", cfg.ReportPath)
	}

	return nil
}

// denseFromSparse materializes a normalized sparse grid into a dense one
// for rendering.
func denseFromSparse(sp *swath.SparseGrid) (*swath.DenseGrid, error) {
	counts, values := swath.Materialize(sp)
	sums := make([]float64, len(values))
	for i, v := range values {
		sums[i] = float64(v)
	}
	return swath.NewDenseGridFrom(sp.Geometry(), counts, sums)
}

func printSummary(w io.Writer, geom *swath.Geometry, sum swath.Summary) {
	nt, nx, ny := geom.Shape()
	fmt.Fprintf(w, "grid shape:    (%d, %d, %d)\n", nt, nx, ny)
	fmt.Fprintf(w, "observations:  %d\n", sum.Observations)
	fmt.Fprintf(w, "coverage:      %d/%d cells (%.1f%%)\n", sum.Covered, sum.Cells, 100*sum.Coverage)
	if sum.Covered > 0 {
		fmt.Fprintf(w, "cell means:    min=%.4g max=%.4g mean=%.4g stddev=%.4g\n",
			sum.Min, sum.Max, sum.Mean, sum.StdDev)
	}
}
