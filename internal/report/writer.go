package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jgoulah/meterreport/internal/aggregate"
	"github.com/jgoulah/meterreport/pkg/models"
)

const (
	cleanedDirName   = "cleaned"
	summariesDirName = "summaries"
	campusCleaned    = "campus_cleaned.csv"
	campusSummary    = "campus_summary.csv"
)

var (
	cleanedHeader = []string{"timestamp", "kwh", "building"}
	summaryHeader = []string{"building", "total_readings", "total_kwh", "avg_kwh", "peak_kwh", "peak_timestamp"}
)

// Layout resolves artifact paths under an output directory
type Layout struct {
	Root string
}

func (l Layout) CleanedDir() string   { return filepath.Join(l.Root, cleanedDirName) }
func (l Layout) SummariesDir() string { return filepath.Join(l.Root, summariesDirName) }

// CleanedPath is the per-building cleaned-data artifact
func (l Layout) CleanedPath(building string) string {
	return filepath.Join(l.CleanedDir(), building+"_cleaned.csv")
}

// SummaryPath is the per-building summary artifact
func (l Layout) SummaryPath(building string) string {
	return filepath.Join(l.SummariesDir(), building+"_summary.csv")
}

func (l Layout) CampusCleanedPath() string { return filepath.Join(l.Root, campusCleaned) }
func (l Layout) CampusSummaryPath() string { return filepath.Join(l.Root, campusSummary) }

// EnsureDirs creates the output, cleaned and summaries directories
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{l.Root, l.CleanedDir(), l.SummariesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteCleaned writes readings with a building column. An empty slice
// produces a header-only file.
func WriteCleaned(path string, buildings ...*aggregate.Building) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(cleanedHeader); err != nil {
			return err
		}
		for _, b := range buildings {
			for _, r := range b.Readings {
				if err := w.Write(cleanedRow(b.Name, r)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteSummaries writes one row per summary
func WriteSummaries(path string, summaries ...models.Summary) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(summaryHeader); err != nil {
			return err
		}
		for _, s := range summaries {
			if err := w.Write(summaryRow(s)); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func cleanedRow(building string, r models.Reading) []string {
	return []string{
		models.FormatTimestamp(r.Timestamp),
		formatKWh(r.KWh),
		building,
	}
}

func summaryRow(s models.Summary) []string {
	return []string{
		s.Building,
		strconv.Itoa(s.TotalReadings),
		strconv.FormatFloat(s.TotalKWh, 'f', 2, 64),
		strconv.FormatFloat(s.AvgKWh, 'f', 2, 64),
		strconv.FormatFloat(s.PeakKWh, 'f', 2, 64),
		s.PeakTime(),
	}
}

// formatKWh writes the shortest exact representation, always with a decimal
// point so the column reads as floating point
func formatKWh(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// PrintBuilding writes the human-readable block for one building
func PrintBuilding(w io.Writer, s models.Summary) {
	fmt.Fprintf(w, "Building: %s\n", s.Building)
	fmt.Fprintf(w, "Total Readings: %d\n", s.TotalReadings)
	fmt.Fprintf(w, "Total Energy Consumed: %.2f kWh\n", s.TotalKWh)
	fmt.Fprintf(w, "Average Consumption: %.2f kWh per hour\n", s.AvgKWh)
	fmt.Fprintf(w, "Peak Reading: %.2f kWh at %s\n", s.PeakKWh, s.PeakTime())
	fmt.Fprintln(w, strings.Repeat("-", 45))
}
