package main

import (
	"context"
	"os"

	_ "time/tzdata"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "market-pulse",
	Short: "Market snapshot and price series service with synthetic fallback",
	Long: `market-pulse serves a categorized market snapshot and per-symbol price
series from Yahoo Finance. When the provider fails, or an intraday series is
too thin to chart, it answers with plausible synthetic data instead.`,
	SilenceUsage: true,
}

// -----------------------------------------------------------------------------

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file (defaults are used when empty)")
	rootCmd.AddCommand(serveCmd, snapshotCmd, seriesCmd)
}

// -----------------------------------------------------------------------------

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
