// Package ledger owns the cash balance, open and closed positions, and
// the append-only trade log for one simulation run.
package ledger

import (
	"fmt"
	"time"
)

// Side: +1 long, -1 short
type Side int8

const (
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	if s == Short {
		return "SHORT"
	}
	return "LONG"
}

// Action is the order direction recorded on a trade.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// Position is an open holding. IDs are assigned monotonically per run
// and never reused. Labels number the currently open positions of a
// side at creation time ("buy-1", "sell-2"), so a label can reappear
// later in a run once earlier same-side positions have closed.
type Position struct {
	ID         int
	Side       Side
	EntryDate  time.Time
	EntryPrice float64
	Quantity   int64
	Label      string
}

// ClosedPosition is a Position after settlement. It leaves the open set
// when created and is never mutated again.
type ClosedPosition struct {
	Position
	ExitDate   time.Time
	ExitPrice  float64
	Profit     float64
	ProfitRate float64 // percent of entry notional
}

// Trade is one append-only log entry. Exactly one is written per ledger
// mutation; Profit is meaningful only when IsClosing is true.
type Trade struct {
	Date       time.Time
	Action     Action
	Price      float64
	Quantity   int64
	Side       Side
	PositionID int
	Label      string
	IsClosing  bool
	Profit     float64
}

func sideLabel(side Side, n int) string {
	if side == Short {
		return fmt.Sprintf("sell-%d", n)
	}
	return fmt.Sprintf("buy-%d", n)
}
