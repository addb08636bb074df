package meterdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Meter CSV format: a header row with a "datetime" column followed by one
// numeric column per channel, e.g.
//
//	datetime,electricity_imported,electricity_exported
//	01/01/2018 00:00,0.5,0.0
var csvTimeLayouts = []string{
	"2/1/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// LoadCSV reads a meter data file into a series.
func LoadCSV(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return Series{}, fmt.Errorf("read meter csv: %w", err)
	}
	if len(records) < 2 {
		return Series{}, fmt.Errorf("meter csv %s: need a header and at least one row", path)
	}

	header := records[0]
	timeCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "datetime") {
			timeCol = i
			break
		}
	}
	if timeCol < 0 {
		return Series{}, fmt.Errorf("meter csv %s: no datetime column", path)
	}

	readings := make([]Reading, 0, len(records)-1)
	for n, rec := range records[1:] {
		ts, err := parseCSVTime(rec[timeCol])
		if err != nil {
			return Series{}, fmt.Errorf("meter csv %s row %d: %w", path, n+2, err)
		}
		values := make(map[string]float64, len(rec)-1)
		for i, cell := range rec {
			if i == timeCol {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Series{}, fmt.Errorf("meter csv %s row %d column %q: %w", path, n+2, header[i], err)
			}
			values[strings.TrimSpace(header[i])] = v
		}
		readings = append(readings, Reading{Timestamp: ts, Values: values})
	}
	return New(readings), nil
}

func parseCSVTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range csvTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}
