package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/swath.report/internal/swath"
)

// readSwathCSV loads a swath batch from a CSV file with the header
// scan,pixel,time,x,y,value. scan/pixel are zero-based indices; the batch
// extent is taken from the largest seen index. Pixels absent from the file
// and values written as "nan" or left empty load as missing.
func readSwathCSV(path string) (*swath.Swath, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = 6

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	if strings.ToLower(header[0]) != "scan" || strings.ToLower(header[1]) != "pixel" {
		return nil, fmt.Errorf("%s: expected header scan,pixel,time,x,y,value, got %v", path, header)
	}

	type sample struct {
		scan, pixel int
		time        float64
		x, y, value float64
	}
	var samples []sample
	maxScan, maxPixel := -1, -1

	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var sm sample
		if sm.scan, err = strconv.Atoi(rec[0]); err != nil || sm.scan < 0 {
			return nil, fmt.Errorf("%s:%d: bad scan index %q", path, line, rec[0])
		}
		if sm.pixel, err = strconv.Atoi(rec[1]); err != nil || sm.pixel < 0 {
			return nil, fmt.Errorf("%s:%d: bad pixel index %q", path, line, rec[1])
		}
		if sm.time, err = parseField(rec[2]); err != nil {
			return nil, fmt.Errorf("%s:%d: bad time %q", path, line, rec[2])
		}
		if sm.x, err = parseField(rec[3]); err != nil {
			return nil, fmt.Errorf("%s:%d: bad x %q", path, line, rec[3])
		}
		if sm.y, err = parseField(rec[4]); err != nil {
			return nil, fmt.Errorf("%s:%d: bad y %q", path, line, rec[4])
		}
		if sm.value, err = parseField(rec[5]); err != nil {
			return nil, fmt.Errorf("%s:%d: bad value %q", path, line, rec[5])
		}

		if sm.scan > maxScan {
			maxScan = sm.scan
		}
		if sm.pixel > maxPixel {
			maxPixel = sm.pixel
		}
		samples = append(samples, sm)
	}
	if maxScan < 0 {
		return nil, fmt.Errorf("%s: no observation records", path)
	}

	rows, cols := maxScan+1, maxPixel+1
	time := make([]float64, rows)
	x := make([]float64, rows*cols)
	y := make([]float64, rows*cols)
	data := make([]float64, rows*cols)
	for i := range data {
		x[i] = math.NaN()
		y[i] = math.NaN()
		data[i] = math.NaN()
	}

	for _, sm := range samples {
		idx := sm.scan*cols + sm.pixel
		time[sm.scan] = sm.time
		x[idx] = sm.x
		y[idx] = sm.y
		data[idx] = sm.value
	}

	return swath.NewSwath(time, x, y, data, cols)
}

// parseField parses a float field, mapping empty and "nan" to NaN.
func parseField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
