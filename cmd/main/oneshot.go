package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

var timeframe string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one market snapshot as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(configPath)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), a.Service.Snapshot(cmd.Context()))
	},
}

var seriesCmd = &cobra.Command{
	Use:   "series <SYMBOL>",
	Short: "Print the price series of one symbol as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(configPath)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), a.Service.Series(cmd.Context(), args[0], timeframe))
	},
}

func init() {
	seriesCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "1D", "1D, 1W, 1M, 6M, 1Y, 5Y or MAX")
}

// -----------------------------------------------------------------------------

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
