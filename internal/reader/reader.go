package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/meterreport/pkg/models"
)

const (
	timestampColumn = "timestamp"
	kwhColumn       = "kwh"
)

// ErrMissingColumn is returned when a file lacks the timestamp or kwh column
var ErrMissingColumn = errors.New("missing required column")

// timestampLayouts are tried in order; the first successful parse wins
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// Stats counts what happened to the rows of one file during cleaning
type Stats struct {
	Rows         int
	Kept         int
	BadTimestamp int
	BadKWh       int
	Negative     int
}

// Dropped returns the number of rows discarded
func (s Stats) Dropped() int {
	return s.Rows - s.Kept
}

// ReadFile loads and cleans a single meter export
func ReadFile(path string) ([]models.Reading, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	readings, stats, err := Clean(f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return readings, stats, nil
}

// Clean parses CSV data with timestamp and kwh columns and returns the valid
// readings sorted by timestamp. Rows with an unparseable timestamp, an
// unparseable kwh value or a negative kwh value are dropped.
func Clean(r io.Reader) ([]models.Reading, Stats, error) {
	var stats Stats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, timestampColumn)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	tsIdx, kwhIdx := -1, -1
	for i, name := range header {
		switch normalizeColumn(name) {
		case timestampColumn:
			if tsIdx < 0 {
				tsIdx = i
			}
		case kwhColumn:
			if kwhIdx < 0 {
				kwhIdx = i
			}
		}
	}
	if tsIdx < 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, timestampColumn)
	}
	if kwhIdx < 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, kwhColumn)
	}

	var readings []models.Reading
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		ts, ok := ParseTimestamp(field(record, tsIdx))
		if !ok {
			stats.BadTimestamp++
			continue
		}
		kwh, ok := ParseKWh(field(record, kwhIdx))
		if !ok {
			stats.BadKWh++
			continue
		}
		if kwh < 0 {
			stats.Negative++
			continue
		}

		readings = append(readings, models.Reading{Timestamp: ts, KWh: kwh})
	}

	SortReadings(readings)
	stats.Kept = len(readings)
	return readings, stats, nil
}

// SortReadings orders readings by timestamp, keeping file order for equal timestamps
func SortReadings(readings []models.Reading) {
	slices.SortStableFunc(readings, func(a, b models.Reading) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}

// ParseTimestamp parses a timestamp cell, reporting false when it is not a
// date-time. Values carrying an offset are converted to UTC; values without
// one are taken as UTC, so ordering and rendering share one frame.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseKWh parses an energy cell, reporting false for empty, non-numeric, NaN or infinite values
func ParseKWh(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
