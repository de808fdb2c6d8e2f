package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/meterreport/internal/aggregate"
	"github.com/jgoulah/meterreport/internal/log"
	"github.com/jgoulah/meterreport/internal/reader"
	"github.com/jgoulah/meterreport/pkg/models"
)

const banner = "========== CAMPUS ENERGY REPORT =========="

// Load reads every export in dataDir into a campus, one building per file,
// in file name order when sorted is set. A file missing a required column
// aborts the load.
func Load(ctx context.Context, dataDir string, sorted bool) (*aggregate.Campus, error) {
	files, err := reader.Discover(dataDir, sorted)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).DebugContext(ctx, "discovered meter exports",
		slog.String("dir", dataDir),
		slog.Int("files", len(files)))

	campus := aggregate.NewCampus()
	for _, path := range files {
		readings, stats, err := reader.ReadFile(path)
		if err != nil {
			return nil, err
		}

		b := aggregate.NewBuilding(reader.BuildingName(path))
		for _, r := range readings {
			b.AddReading(r)
		}
		campus.Add(b)

		log.Ctx(ctx).DebugContext(ctx, "loaded building",
			slog.String("file", filepath.Base(path)),
			slog.String("building", b.Name),
			slog.Int("rows", stats.Rows),
			slog.Int("kept", stats.Kept),
			slog.Int("dropped", stats.Dropped()),
			slog.Int("bad_timestamp", stats.BadTimestamp),
			slog.Int("bad_kwh", stats.BadKWh),
			slog.Int("negative", stats.Negative))
	}
	return campus, nil
}

// Write persists every artifact for campus under layout and prints the
// per-building blocks to out.
func Write(ctx context.Context, layout Layout, campus *aggregate.Campus, out io.Writer) error {
	if err := layout.EnsureDirs(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n\n", banner)

	var (
		rows     []models.Summary
		withData []*aggregate.Building
	)
	for _, b := range campus.Buildings() {
		if err := WriteCleaned(layout.CleanedPath(b.Name), b); err != nil {
			return err
		}

		s := b.Summary()
		if s == nil {
			log.Ctx(ctx).InfoContext(ctx, "building has no valid readings", slog.String("building", b.Name))
			continue
		}

		if err := WriteSummaries(layout.SummaryPath(b.Name), *s); err != nil {
			return err
		}
		PrintBuilding(out, *s)

		rows = append(rows, *s)
		withData = append(withData, b)
	}

	if len(withData) > 0 {
		if err := WriteCleaned(layout.CampusCleanedPath(), withData...); err != nil {
			return err
		}
	}
	if err := WriteSummaries(layout.CampusSummaryPath(), rows...); err != nil {
		return err
	}

	totals := campus.Totals()
	log.Ctx(ctx).InfoContext(ctx, "report written",
		slog.String("output", layout.Root),
		slog.Int("buildings", len(campus.Buildings())),
		slog.Int("summarized", totals.Buildings),
		slog.Int("readings", totals.Readings))

	fmt.Fprintf(out, "\nCampus total: %s kWh over %s readings from %d buildings.\n",
		humanize.CommafWithDigits(totals.KWh, 2),
		humanize.Comma(int64(totals.Readings)),
		totals.Buildings)
	fmt.Fprintf(out, "Cleaned and summarized CSV files generated in '%s/' folder.\n\n", layout.Root)
	return nil
}
