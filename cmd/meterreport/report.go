package main

import (
	"fmt"

	"github.com/jgoulah/meterreport/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate cleaned data and summaries",
	Long: `Reads every *.csv export in the data directory, cleans it and writes
cleaned/<Building>_cleaned.csv, summaries/<Building>_summary.csv,
campus_cleaned.csv and campus_summary.csv to the output directory.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	campus, err := report.Load(ctx, cfg.GetDataDir(), cfg.GetSortFiles())
	if err != nil {
		return fmt.Errorf("loading meter data: %w", err)
	}

	layout := report.Layout{Root: cfg.GetOutputDir()}
	if err := report.Write(ctx, layout, campus, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
