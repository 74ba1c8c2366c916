package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stocksim/config"
	"stocksim/journal"
	"stocksim/ledger"
	"stocksim/logging"
	"stocksim/market"
	"stocksim/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive simulation from a config file",
	Long: `Run an interactive trading simulation using settings from a
configuration file. The price series is replayed one day at a time;
commands are read from stdin.

Commands:
  buy                open a long sized by the trade notional
  sell               open a short sized by the trade notional
  close <id>...      close positions by id at the current price
  closelongs         close every open long
  closeshorts        close every open short
  offsets            list break-even offset points
  status             cash, positions, indicators
  amount <value>     change the trade notional
  next               advance one trading day
  finish             end the run and print the report

Example:
  stocksim run -f examples/configs/basic.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.File)

	series, err := market.LoadCSV(cfg.Simulation.DataFile)
	if err != nil {
		return fmt.Errorf("load price data: %w", err)
	}

	var j journal.Journal
	switch cfg.Journal.Type {
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		j = journal.Nop{}
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	runner, err := sim.NewRunner(cfg.Simulation, series, j, log)
	if err != nil {
		return err
	}

	return interact(runner, os.Stdin, os.Stdout)
}

// interact drives the runner from line commands until the run finishes
// or input ends.
func interact(r *sim.Runner, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	printDay(r, out)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "buy":
			reportOp(out, r, func() (ledger.OpResult, error) { return r.OpenLong() })

		case "sell":
			reportOp(out, r, func() (ledger.OpResult, error) { return r.OpenShort() })

		case "close":
			ids, err := parseIDs(fields[1:])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			n, profit := r.Settle(ids)
			fmt.Fprintf(out, "settled %d position(s), net %.2f\n", n, profit)

		case "closelongs":
			fmt.Fprintf(out, "closed %d long(s)\n", r.CloseAllLongs())

		case "closeshorts":
			fmt.Fprintf(out, "closed %d short(s)\n", r.CloseAllShorts())

		case "offsets":
			printOffsets(r, out)

		case "status":
			printDay(r, out)

		case "amount":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: amount <value>")
				continue
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || v <= 0 {
				fmt.Fprintln(out, "amount must be a positive number")
				continue
			}
			r.SetTradeNotional(v)
			fmt.Fprintf(out, "trade notional set to %.0f\n", v)

		case "next", "n":
			if !r.NextDay() {
				fmt.Fprintln(out, "simulation period complete")
				r.WriteReport(out)
				return nil
			}
			printDay(r, out)

		case "finish", "quit", "q":
			r.WriteReport(out)
			return nil

		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}

		if r.Done() {
			r.WriteReport(out)
			return nil
		}
	}

	return sc.Err()
}

func parseIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: close <id>...")
	}
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad position id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func reportOp(out io.Writer, r *sim.Runner, op func() (ledger.OpResult, error)) {
	res, err := op()
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if !res.Filled {
		fmt.Fprintf(out, "rejected: %s\n", res.Reason)
		return
	}
	t := res.Trade
	fmt.Fprintf(out, "%s %s: %d @ %.2f (cash %.2f)\n",
		t.Action, t.Label, t.Quantity, t.Price, r.State().Cash)
}

func printDay(r *sim.Runner, out io.Writer) {
	st := r.State()
	fmt.Fprintf(out, "%s  close %.2f  cash %.2f  portfolio %.2f  equity %.2f\n",
		st.CurrentDate.Format("2006-01-02"), r.CurrentPrice(),
		st.Cash, r.PortfolioValue(), r.Equity())

	chart := r.ChartData()
	if len(chart) > 0 {
		c := chart[len(chart)-1]
		fmt.Fprintf(out, "MA5 %s  MA20 %s  MA60 %s  RSI %s\n",
			fmtNA(c.MA5), fmtNA(c.MA20), fmtNA(c.MA60), fmtNA(c.RSI))
	}

	for _, p := range st.Positions {
		fmt.Fprintf(out, "  [%d] %s %s %d @ %.2f\n", p.ID, p.Label, p.Side, p.Quantity, p.EntryPrice)
	}
}

func printOffsets(r *sim.Runner, out io.Writer) {
	points := r.OffsetPoints()
	if len(points) == 0 {
		fmt.Fprintln(out, "no offsettable position sets")
		return
	}
	for _, p := range points {
		fmt.Fprintf(out, "%s: offset %.2f, net %d (%s)\n",
			strings.Join(p.Labels, "+"), p.OffsetPrice, p.NetQuantity, p.Direction)
	}
}

func fmtNA(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
