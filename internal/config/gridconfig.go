// Package config loads the JSON grid definition consumed by the swathgrid
// CLI. The schema describes the three grid axes plus run metadata so the
// same file can drive repeated gridding runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/swath.report/internal/swath"
)

// AxisSpec defines one uniform grid axis by its range and bin count. The
// generated edge array has Bins+1 uniformly spaced boundaries spanning
// [Start, Stop].
type AxisSpec struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
	Bins  int     `json:"bins"`
}

// Edges materializes the axis boundary array.
func (a AxisSpec) Edges() []float64 {
	return floats.Span(make([]float64, a.Bins+1), a.Start, a.Stop)
}

func (a AxisSpec) validate(name string) error {
	if a.Bins < 1 {
		return fmt.Errorf("config: %s axis needs at least 1 bin, got %d", name, a.Bins)
	}
	if a.Stop <= a.Start {
		return fmt.Errorf("config: %s axis range [%g, %g] is empty", name, a.Start, a.Stop)
	}
	return nil
}

// GridConfig is the root configuration for one gridding run.
type GridConfig struct {
	Time AxisSpec `json:"time"`
	X    AxisSpec `json:"x"`
	Y    AxisSpec `json:"y"`

	// RunID groups the snapshots of related runs in the store. Optional;
	// the store generates one when empty.
	RunID string `json:"run_id,omitempty"`

	// Note is free-form text carried onto persisted snapshots.
	Note string `json:"note,omitempty"`
}

// Load reads and validates a GridConfig from a JSON file.
func Load(path string) (*GridConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c GridConfig
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the axis definitions.
func (c *GridConfig) Validate() error {
	if err := c.Time.validate("time"); err != nil {
		return err
	}
	if err := c.X.validate("x"); err != nil {
		return err
	}
	return c.Y.validate("y")
}

// Geometry builds the grid geometry described by the config.
func (c *GridConfig) Geometry() (*swath.Geometry, error) {
	return swath.NewGeometry(c.Time.Edges(), c.X.Edges(), c.Y.Edges())
}
