package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "backsim",
	Short: "A bar-driven trading strategy backtester",
	Long: `Backsim simulates trading strategies against historical or synthetic
price bars and reports the resulting trade log and performance statistics.

It provides:
  - SMA crossover and RSI mean-reversion strategies
  - A solvent, long-only execution ledger with proportional commission
  - Trade and equity journaling to SQLite or CSV
  - Deterministic synthetic data for demos and regression runs`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
