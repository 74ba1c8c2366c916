package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim/config"
	"stocksim/journal"
	"stocksim/ledger"
	"stocksim/market"
)

// testJournal captures records in memory.
type testJournal struct {
	trades []journal.TradeRecord
	equity []journal.EquitySnapshot
}

func (j *testJournal) RecordTrade(t journal.TradeRecord) error    { j.trades = append(j.trades, t); return nil }
func (j *testJournal) RecordEquity(e journal.EquitySnapshot) error { j.equity = append(j.equity, e); return nil }
func (j *testJournal) Close() error                                { return nil }

func testSeries(n int) market.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(market.Series, n)
	for i := range s {
		s[i] = market.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Close: float64(100 + i),
		}
	}
	return s
}

func testConfig() config.SimulationConfig {
	return config.SimulationConfig{
		Symbol:           "TEST",
		StartDate:        "2024-01-10",
		PeriodDays:       10,
		InitialCash:      1000000,
		TradeNotional:    100000,
		MaxOpenPositions: 2,
	}
}

func newTestRunner(t *testing.T, cfg config.SimulationConfig, j journal.Journal) *Runner {
	t.Helper()
	if j == nil {
		j = journal.Nop{}
	}
	r, err := NewRunner(cfg, testSeries(30), j, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestNewRunner(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), r.State().CurrentDate)
	assert.Equal(t, 109.0, r.CurrentPrice())
	assert.Equal(t, 1000000.0, r.State().Cash)
	assert.Len(t, r.RunID(), 26)
	assert.False(t, r.Done())
}

func TestNewRunnerStartPastData(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.StartDate = "2030-01-01"
	_, err := NewRunner(cfg, testSeries(30), journal.Nop{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpenLongFillsAtCurrentClose(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)

	res, err := r.OpenLong()
	require.NoError(t, err)
	require.True(t, res.Filled)

	// floor(100000 / 109) shares at the day's close
	assert.Equal(t, int64(917), res.Trade.Quantity)
	assert.Equal(t, 109.0, res.Trade.Price)
	assert.InDelta(t, 1000000-917*109.0, r.State().Cash, 1e-9)
}

func TestOpenPositionCap(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)

	_, err := r.OpenLong()
	require.NoError(t, err)
	_, err = r.OpenShort()
	require.NoError(t, err)

	_, err = r.OpenLong()
	assert.ErrorIs(t, err, ErrMaxPositions)
	assert.Len(t, r.State().Positions, 2)

	// closing frees a slot
	r.CloseLong(r.State().Positions[0].ID)
	_, err = r.OpenLong()
	assert.NoError(t, err)
}

func TestSetTradeNotional(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)

	r.SetTradeNotional(50000)
	assert.Equal(t, 50000.0, r.TradeNotional())

	r.SetTradeNotional(-1)
	assert.Equal(t, 50000.0, r.TradeNotional())
}

func TestNextDay(t *testing.T) {
	t.Parallel()

	j := &testJournal{}
	r := newTestRunner(t, testConfig(), j)

	require.True(t, r.NextDay())
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), r.State().CurrentDate)
	assert.Equal(t, 110.0, r.CurrentPrice())

	require.Len(t, j.equity, 1)
	snap := j.equity[0]
	assert.Equal(t, r.RunID(), snap.RunID)
	assert.Equal(t, 1000000.0, snap.Cash)
	assert.Equal(t, 1000000.0, snap.Equity)
	assert.Equal(t, 0, snap.OpenPositions)
}

func TestNextDayEndsAfterPeriod(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PeriodDays = 3
	r := newTestRunner(t, cfg, nil)

	assert.True(t, r.NextDay())
	assert.True(t, r.NextDay())
	assert.False(t, r.NextDay())
	assert.True(t, r.Done())
	assert.False(t, r.NextDay(), "a finished run stays finished")
}

func TestNextDayEndsAtDataEnd(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.StartDate = "2024-01-29" // two days of data left
	r := newTestRunner(t, cfg, nil)

	assert.True(t, r.NextDay())
	assert.False(t, r.NextDay())
	assert.True(t, r.Done())
}

func TestTradesAreJournaled(t *testing.T) {
	t.Parallel()

	j := &testJournal{}
	r := newTestRunner(t, testConfig(), j)

	res, err := r.OpenLong()
	require.NoError(t, err)
	r.CloseLong(res.Trade.PositionID)

	// a rejected close produces no record
	r.CloseLong(999)

	require.Len(t, j.trades, 2)
	assert.Equal(t, "BUY", j.trades[0].Action)
	assert.False(t, j.trades[0].IsClosing)
	assert.Equal(t, "SELL", j.trades[1].Action)
	assert.True(t, j.trades[1].IsClosing)
	assert.Equal(t, r.RunID(), j.trades[0].RunID)
}

func TestSettle(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxOpenPositions = 4
	r := newTestRunner(t, cfg, nil)

	long, err := r.OpenLong()
	require.NoError(t, err)
	short, err := r.OpenShort()
	require.NoError(t, err)

	cashBefore := r.State().Cash
	n, delta := r.Settle([]int{long.Trade.PositionID, short.Trade.PositionID, 999})

	assert.Equal(t, 2, n)
	assert.InDelta(t, r.State().Cash-cashBefore, delta, 1e-9)
	assert.Empty(t, r.State().Positions)
	assert.Len(t, r.State().Closed, 2)
}

func TestCloseAllBySide(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxOpenPositions = 4
	r := newTestRunner(t, cfg, nil)

	_, err := r.OpenLong()
	require.NoError(t, err)
	_, err = r.OpenLong()
	require.NoError(t, err)
	_, err = r.OpenShort()
	require.NoError(t, err)

	assert.Equal(t, 2, r.CloseAllLongs())
	assert.Equal(t, 0, r.State().OpenCount(ledger.Long))
	assert.Equal(t, 1, r.State().OpenCount(ledger.Short))

	assert.Equal(t, 1, r.CloseAllShorts())
	assert.Empty(t, r.State().Positions)
}

func TestProfitOverDays(t *testing.T) {
	t.Parallel()

	j := &testJournal{}
	r := newTestRunner(t, testConfig(), j)

	res, err := r.OpenLong()
	require.NoError(t, err)
	qty := res.Trade.Quantity

	require.True(t, r.NextDay())
	require.True(t, r.NextDay())

	// close two days later, two points higher
	closeRes := r.CloseLong(res.Trade.PositionID)
	require.True(t, closeRes.Filled)
	assert.InDelta(t, float64(qty)*2, closeRes.Closed.Profit, 1e-9)

	m := r.Metrics()
	assert.Equal(t, 1, m.TotalTrades)
	assert.Equal(t, 1, m.WinTrades)
}

func TestChartData(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)

	// 9 preload days plus the current one
	chart := r.ChartData()
	require.Len(t, chart, 10)
	assert.Equal(t, r.State().CurrentDate, chart[len(chart)-1].Date)
	assert.Equal(t, r.CurrentPrice(), chart[len(chart)-1].Close)

	require.True(t, r.NextDay())
	assert.Len(t, r.ChartData(), 11)
}

func TestOffsetPoints(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)

	_, err := r.OpenLong()
	require.NoError(t, err)
	assert.Empty(t, r.OffsetPoints(), "a lone long has no offset")

	_, err = r.OpenShort()
	require.NoError(t, err)
	points := r.OffsetPoints()
	require.Len(t, points, 1)
	assert.InDelta(t, 109.0, points[0].OffsetPrice, 1e-9, "same-day entries offset at the entry price")
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, testConfig(), nil)
	res, err := r.OpenLong()
	require.NoError(t, err)
	require.True(t, r.NextDay())
	r.CloseLong(res.Trade.PositionID)

	var buf strings.Builder
	r.WriteReport(&buf)
	out := buf.String()

	assert.Contains(t, out, "Symbol:        TEST")
	assert.Contains(t, out, "Start:         2024-01-10")
	assert.Contains(t, out, "Trading Days:  2")
	assert.Contains(t, out, "Closed:        1")
}
