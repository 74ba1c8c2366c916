// Package sim drives a day-by-day simulation over a price window,
// applying operator actions to the ledger and journaling the results.
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"stocksim/analytics"
	"stocksim/config"
	"stocksim/indicators"
	"stocksim/journal"
	"stocksim/ledger"
	"stocksim/market"
	"stocksim/offset"
)

const (
	// ChartDisplayDays is how much history the chart window shows.
	ChartDisplayDays = 90

	// PreloadDays is how much extra history is loaded before the start
	// date so the longest moving average has data on day one:
	// MA(300) warmup plus the chart window.
	PreloadDays = indicators.MAYearPlus + ChartDisplayDays
)

// ErrMaxPositions is returned when the open-position cap blocks a new
// position. The cap is a runner policy: the ledger itself never rejects
// an open for this reason.
var ErrMaxPositions = errors.New("max open positions reached")

// Runner owns one simulation run: the price window, the ledger, and
// the journal. It is single-actor; calls are applied one at a time and
// run to completion.
type Runner struct {
	cfg     config.SimulationConfig
	series  market.Series // preload + simulation window
	preload int           // index of simulation day 0 within series
	state   *ledger.State
	jrnl    journal.Journal
	runID   string
	log     zerolog.Logger
	done    bool
}

// NewRunner slices the price window for cfg out of the full series and
// sets up a fresh ledger. The journal may be journal.Nop{}.
func NewRunner(cfg config.SimulationConfig, series market.Series, j journal.Journal, log zerolog.Logger) (*Runner, error) {
	start, err := cfg.ParseStartDate()
	if err != nil {
		return nil, err
	}

	window, preload, err := series.WindowWithPreload(start, cfg.PeriodDays, PreloadDays)
	if err != nil {
		return nil, err
	}
	if preload >= len(window) {
		return nil, fmt.Errorf("sim: no trading days at or after %s", cfg.StartDate)
	}

	state := ledger.New(cfg.InitialCash)
	state.CurrentDate = window[preload].Date

	r := &Runner{
		cfg:     cfg,
		series:  window,
		preload: preload,
		state:   state,
		jrnl:    j,
		runID:   journal.NewRunID(),
		log:     log,
	}

	r.log.Info().
		Str("run_id", r.runID).
		Str("symbol", cfg.Symbol).
		Str("start", state.CurrentDate.Format("2006-01-02")).
		Int("period_days", cfg.PeriodDays).
		Float64("cash", state.Cash).
		Msg("simulation started")

	return r, nil
}

func (r *Runner) RunID() string          { return r.runID }
func (r *Runner) State() *ledger.State   { return r.state }
func (r *Runner) Done() bool             { return r.done }
func (r *Runner) TradeNotional() float64 { return r.cfg.TradeNotional }

// SetTradeNotional changes the cash budget used to size new positions.
func (r *Runner) SetTradeNotional(amount float64) {
	if amount > 0 {
		r.cfg.TradeNotional = amount
	}
}

func (r *Runner) dataIndex() int { return r.preload + r.state.DayIndex }

// CurrentPrice is the close of the current simulated day. Fills and
// valuations all use it.
func (r *Runner) CurrentPrice() float64 {
	return r.series[r.dataIndex()].Close
}

// PortfolioValue marks the open positions to the current price.
func (r *Runner) PortfolioValue() float64 {
	return ledger.PortfolioValue(r.state.Positions, r.CurrentPrice())
}

// Equity is cash plus portfolio value.
func (r *Runner) Equity() float64 {
	return r.state.Cash + r.PortfolioValue()
}

// OpenLong opens a new long sized by the trade notional. The
// open-position cap is enforced here, before the ledger is invoked.
func (r *Runner) OpenLong() (ledger.OpResult, error) {
	if len(r.state.Positions) >= r.cfg.MaxOpenPositions {
		return ledger.OpResult{}, ErrMaxPositions
	}

	res := r.state.OpenLong(r.CurrentPrice(), r.state.CurrentDate, r.cfg.TradeNotional)
	r.afterOp(res)
	return res, nil
}

// OpenShort opens a new short sized by the trade notional.
func (r *Runner) OpenShort() (ledger.OpResult, error) {
	if len(r.state.Positions) >= r.cfg.MaxOpenPositions {
		return ledger.OpResult{}, ErrMaxPositions
	}

	res := r.state.OpenShort(r.CurrentPrice(), r.state.CurrentDate, r.cfg.TradeNotional)
	r.afterOp(res)
	return res, nil
}

// CloseLong sells the named long at the current price.
func (r *Runner) CloseLong(positionID int) ledger.OpResult {
	res := r.state.CloseLong(positionID, r.CurrentPrice(), r.state.CurrentDate)
	r.afterOp(res)
	return res
}

// CloseShort buys back the named short at the current price.
func (r *Runner) CloseShort(positionID int) ledger.OpResult {
	res := r.state.CloseShort(positionID, r.CurrentPrice(), r.state.CurrentDate)
	r.afterOp(res)
	return res
}

// CloseAllLongs settles every open long, newest first so the order
// matches index-stable removal. Returns how many closed.
func (r *Runner) CloseAllLongs() int {
	longs := r.state.BySide(ledger.Long)
	n := 0
	for i := len(longs) - 1; i >= 0; i-- {
		if r.CloseLong(longs[i].ID).Filled {
			n++
		}
	}
	return n
}

// CloseAllShorts settles every open short, newest first.
func (r *Runner) CloseAllShorts() int {
	shorts := r.state.BySide(ledger.Short)
	n := 0
	for i := len(shorts) - 1; i >= 0; i-- {
		if r.CloseShort(shorts[i].ID).Filled {
			n++
		}
	}
	return n
}

// Settle closes each named position at the current market price,
// whichever side it is on. IDs are processed in reverse list order to
// keep index-based bookkeeping stable. Returns the number settled and
// the net cash delta.
func (r *Runner) Settle(positionIDs []int) (int, float64) {
	settled := 0
	total := 0.0

	for i := len(positionIDs) - 1; i >= 0; i-- {
		pos, _ := r.state.Find(positionIDs[i])
		if pos == nil {
			continue
		}

		before := r.state.Cash

		var res ledger.OpResult
		if pos.Side == ledger.Long {
			res = r.CloseLong(pos.ID)
		} else {
			res = r.CloseShort(pos.ID)
		}
		if res.Filled {
			settled++
			total += r.state.Cash - before
		}
	}

	return settled, total
}

// NextDay advances the simulation one trading day and journals the
// end-of-day equity. It reports false once the configured period or the
// data is exhausted; the run is then complete.
func (r *Runner) NextDay() bool {
	if r.done {
		return false
	}

	next := r.state.DayIndex + 1
	if next >= r.cfg.PeriodDays || r.preload+next >= len(r.series) {
		r.done = true
		return false
	}

	r.state.DayIndex = next
	r.state.CurrentDate = r.series[r.dataIndex()].Date

	if err := r.jrnl.RecordEquity(journal.EquitySnapshot{
		RunID:          r.runID,
		Date:           r.state.CurrentDate,
		Cash:           r.state.Cash,
		PortfolioValue: r.PortfolioValue(),
		Equity:         r.Equity(),
		OpenPositions:  len(r.state.Positions),
	}); err != nil {
		r.log.Error().Err(err).Msg("record equity")
	}

	r.log.Debug().
		Str("date", r.state.CurrentDate.Format("2006-01-02")).
		Float64("close", r.CurrentPrice()).
		Float64("equity", r.Equity()).
		Msg("day advanced")

	return true
}

// ChartData returns the display window ending at the current day:
// up to ChartDisplayDays of price history zipped with indicators.
func (r *Runner) ChartData() []indicators.ChartPoint {
	end := r.dataIndex() + 1
	start := end - ChartDisplayDays
	if start < 0 {
		start = 0
	}
	return indicators.Chart(r.series[start:end])
}

// OffsetPoints enumerates the break-even settlement points of the
// current open positions.
func (r *Runner) OffsetPoints() []offset.Point {
	return offset.Points(r.state.Positions)
}

// Metrics summarizes realized performance so far.
func (r *Runner) Metrics() analytics.Metrics {
	return analytics.Compute(r.state.Closed, r.cfg.InitialCash)
}

// WriteReport prints the end-of-run summary.
func (r *Runner) WriteReport(w io.Writer) {
	start := r.series[r.preload].Date
	analytics.WriteReport(w, analytics.RunInfo{
		RunID:       r.runID,
		Symbol:      r.cfg.Symbol,
		Start:       start,
		End:         r.state.CurrentDate,
		InitialCash: r.cfg.InitialCash,
		FinalCash:   r.state.Cash,
		TradingDays: r.state.DayIndex + 1,
	}, r.Metrics())
}

// afterOp journals and logs a filled operation; rejections only log.
func (r *Runner) afterOp(res ledger.OpResult) {
	if !res.Filled {
		if res.Reason != ledger.ReasonNone {
			r.log.Warn().Str("reason", res.Reason.String()).Msg("operation rejected")
		}
		return
	}

	t := res.Trade
	if err := r.jrnl.RecordTrade(journal.TradeRecord{
		RunID:      r.runID,
		Date:       t.Date,
		Action:     string(t.Action),
		Price:      t.Price,
		Quantity:   t.Quantity,
		Side:       t.Side.String(),
		PositionID: t.PositionID,
		Label:      t.Label,
		IsClosing:  t.IsClosing,
		Profit:     t.Profit,
	}); err != nil {
		r.log.Error().Err(err).Msg("record trade")
	}

	ev := r.log.Info().
		Str("action", string(t.Action)).
		Str("label", t.Label).
		Int64("quantity", t.Quantity).
		Float64("price", t.Price).
		Float64("cash", r.state.Cash)
	if t.IsClosing {
		ev = ev.Float64("profit", t.Profit)
	}
	ev.Msg("trade")
}
