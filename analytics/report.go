package analytics

import (
	"fmt"
	"io"
	"time"
)

// RunInfo carries the identifying details printed at the top of a
// report.
type RunInfo struct {
	RunID       string
	Symbol      string
	Start       time.Time
	End         time.Time
	InitialCash float64
	FinalCash   float64
	TradingDays int
}

// WriteReport prints a plain-text summary of a finished run.
func WriteReport(w io.Writer, info RunInfo, m Metrics) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Simulation Result")
	fmt.Fprintln(w, "==================================================")

	if info.RunID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", info.RunID)
	}
	fmt.Fprintf(w, "Symbol:        %s\n", info.Symbol)
	fmt.Fprintf(w, "Start:         %s\n", info.Start.Format("2006-01-02"))
	fmt.Fprintf(w, "End:           %s\n", info.End.Format("2006-01-02"))
	fmt.Fprintf(w, "Trading Days:  %d\n", info.TradingDays)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Closed:        %d\n", m.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", m.WinTrades)
	fmt.Fprintf(w, "Losses:        %d\n", m.LoseTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", m.WinRate)
	fmt.Fprintf(w, "Avg Profit:    %.2f\n", m.AvgProfit)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", m.AvgLoss)
	fmt.Fprintf(w, "Expected Val:  %.2f\n", m.ExpectedValue)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Cash:    %.2f\n", info.InitialCash)
	fmt.Fprintf(w, "End Cash:      %.2f\n", info.FinalCash)
	fmt.Fprintf(w, "Total Profit:  %.2f\n", m.TotalProfit)
	fmt.Fprintf(w, "Total Loss:    %.2f\n", m.TotalLoss)
	fmt.Fprintf(w, "Return:        %.2f%%\n", m.ProfitRate)

	if m.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", m.ProfitFactor)
	}
	if m.MaxDrawdown > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f\n", m.MaxDrawdown)
	}

	fmt.Fprintln(w)
}
