package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jgoulah/meterreport/internal/config"
	"github.com/jgoulah/meterreport/internal/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	dataDir   string
	outputDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "meterreport",
	Short: "Clean and summarize building electricity meter exports",
	Long: `MeterReport reads per-building electricity meter CSV exports, drops malformed
readings and writes per-building and campus-wide kWh summaries.

Run without a subcommand to generate the full report.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runReport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory of meter CSV exports (default is ./data)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "report output directory (default is ./output)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	return cfg, nil
}

// saveConfig saves the configuration file
func saveConfig(cfg *config.Config) error {
	return config.Save(getConfigPath(), cfg)
}

// setupLogging attaches a stderr logger at the configured level to the command context
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := log.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	log.SetDefaultLogLevel(level)

	cmd.SetContext(log.With(cmd.Context(), log.New(os.Stderr, level)))
	return nil
}
