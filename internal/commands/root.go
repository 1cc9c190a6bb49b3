package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "giza-dash",
	Short: "GIZA Token Analytics Dashboard Backend",
	Long: `Backend for the GIZA token analytics dashboard.

Fetches market metrics and price history for the tracked token from the
CoinGecko price index, caches responses for a bounded TTL, and falls back
to a deterministic demo dataset when the upstream is unavailable. Serves
snapshots, derived financial ratios, and protocol statistics over a JSON
REST API for the browser dashboard.`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
