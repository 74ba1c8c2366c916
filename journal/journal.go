// Package journal records the trades and daily equity of simulation
// runs to CSV files or a SQLite database.
package journal

import "time"

// TradeRecord is one ledger mutation as persisted. Profit is only
// meaningful on closing records.
type TradeRecord struct {
	RunID      string
	Date       time.Time
	Action     string // BUY or SELL
	Price      float64
	Quantity   int64
	Side       string // LONG or SHORT
	PositionID int
	Label      string
	IsClosing  bool
	Profit     float64
}

// EquitySnapshot is the account state at the end of one simulated day.
type EquitySnapshot struct {
	RunID          string
	Date           time.Time
	Cash           float64
	PortfolioValue float64
	Equity         float64 // cash + portfolio value
	OpenPositions  int
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything; useful for runs nobody wants to keep.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
