package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stocksim",
	Short: "A discretionary stock trading simulator over historical daily prices",
	Long: `Stocksim replays a historical daily price series one day at a time and
lets you trade it by hand.

It provides tools for:
  - Opening and closing long/short positions against a cash ledger
  - Moving averages and RSI computed over the replayed window
  - Break-even offset points for mixed long/short position sets
  - End-of-run performance analytics (win rate, drawdown, profit factor)
  - Journaling trades and daily equity to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
