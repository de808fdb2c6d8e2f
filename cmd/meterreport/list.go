package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/meterreport/internal/reader"
	"github.com/spf13/cobra"
)

var listRule = strings.Repeat("-", 84)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List meter exports and their building names",
	Long:  `Displays every CSV export in the data directory with its derived building name and how many rows survive cleaning. Nothing is written.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := reader.Discover(cfg.GetDataDir(), cfg.GetSortFiles())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "No CSV files found in %s\n", cfg.GetDataDir())
		return nil
	}

	fmt.Fprintln(out, listRule)
	fmt.Fprintf(out, "%-30s  %-20s  %8s  %10s  %8s\n", "File", "Building", "Size", "Valid", "Dropped")
	fmt.Fprintln(out, listRule)

	var rows, kept int
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		_, stats, err := reader.ReadFile(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%-30s  %-20s  %8s  %10s  %8s\n",
			filepath.Base(path),
			reader.BuildingName(path),
			humanize.Bytes(uint64(info.Size())),
			fmt.Sprintf("%s/%s", humanize.Comma(int64(stats.Kept)), humanize.Comma(int64(stats.Rows))),
			humanize.Comma(int64(stats.Dropped())))
		rows += stats.Rows
		kept += stats.Kept
	}

	fmt.Fprintln(out, listRule)
	fmt.Fprintf(out, "Total: %s of %s rows valid (%d files)\n", humanize.Comma(int64(kept)), humanize.Comma(int64(rows)), len(files))
	return nil
}
