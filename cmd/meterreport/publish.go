package main

import (
	"fmt"
	"log/slog"

	"github.com/jgoulah/meterreport/internal/log"
	"github.com/jgoulah/meterreport/internal/publisher"
	"github.com/jgoulah/meterreport/internal/report"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish building summaries to MQTT",
	Long:  `Summarizes the meter exports in memory and publishes one retained message per building plus a campus rollup to the MQTT broker from config.yaml.`,
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	campus, err := report.Load(ctx, cfg.GetDataDir(), cfg.GetSortFiles())
	if err != nil {
		return fmt.Errorf("loading meter data: %w", err)
	}

	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	summaries := campus.Summaries()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No buildings with valid readings to publish")
	}

	published := 0
	for i, s := range summaries {
		fmt.Fprintf(out, "[%d/%d] Publishing %s (%.2f kWh)... ", i+1, len(summaries), s.Building, s.TotalKWh)
		if err := pub.PublishSummary(s); err != nil {
			fmt.Fprintf(out, "FAILED: %v\n", err)
			log.Ctx(ctx).WarnContext(ctx, "publish failed",
				slog.String("building", s.Building),
				slog.String("topic", pub.SummaryTopic(s.Building)),
				slog.Any("error", err))
			continue
		}
		fmt.Fprintln(out, "✓")
		published++
	}

	if err := pub.PublishCampus(campus.Totals()); err != nil {
		return fmt.Errorf("publishing campus summary: %w", err)
	}

	fmt.Fprintf(out, "Successfully published %d/%d building summaries\n", published, len(summaries))
	return nil
}
