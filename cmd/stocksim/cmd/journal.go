package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stocksim/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded simulation runs",
	Long: `Query and display trade records from a SQLite journal.

Subcommands:
  runs   - List recorded run IDs
  run    - List the trades of a specific run
  day    - List trades dated on a specific day

Examples:
  stocksim journal runs
  stocksim journal run <run-id>
  stocksim journal day 2024-01-15`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded run IDs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "List the trades of a specific run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades dated on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./stocksim.sqlite", "path to SQLite journal DB")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	for _, id := range runs {
		fmt.Println(id)
	}
	return nil
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesByRun(args[0])
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	printTrades(recs)
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	day, err := time.ParseInLocation("2006-01-02", args[0], time.UTC)
	if err != nil {
		return fmt.Errorf("bad date %q (want YYYY-MM-DD)", args[0])
	}

	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesBetween(day, day.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	printTrades(recs)
	return nil
}

func printTrades(recs []journal.TradeRecord) {
	for _, rec := range recs {
		closing := ""
		if rec.IsClosing {
			closing = fmt.Sprintf("  close, profit %.2f", rec.Profit)
		}
		fmt.Printf("%s  %-4s %-7s %6d @ %.2f  %s%s\n",
			rec.Date.Format("2006-01-02"), rec.Action, rec.Label,
			rec.Quantity, rec.Price, rec.Side, closing)
	}
}
