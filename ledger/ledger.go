package ledger

import (
	"math"
	"time"
)

// State is the mutable ledger for one simulation run. One State belongs
// to exactly one run and one caller; mutations are synchronous and run
// to completion, so there is no locking here.
type State struct {
	CurrentDate time.Time
	DayIndex    int

	// Cash is not clamped at zero; only the open-long and close-short
	// guards keep it from going negative through those paths.
	Cash float64

	Positions []Position       // open, in creation order
	Closed    []ClosedPosition // in closing order
	Trades    []Trade          // append-only

	NextPositionID int
}

// New returns a ledger holding initialCash and no positions.
func New(initialCash float64) *State {
	return &State{
		Cash:           initialCash,
		NextPositionID: 1,
	}
}

// OpenCount returns how many positions of the given side are open.
func (s *State) OpenCount(side Side) int {
	n := 0
	for _, p := range s.Positions {
		if p.Side == side {
			n++
		}
	}
	return n
}

// BySide returns the open positions of one side, in creation order.
func (s *State) BySide(side Side) []Position {
	var out []Position
	for _, p := range s.Positions {
		if p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the open position with the given id and its index, or
// nil and -1.
func (s *State) Find(id int) (*Position, int) {
	for i := range s.Positions {
		if s.Positions[i].ID == id {
			return &s.Positions[i], i
		}
	}
	return nil, -1
}

// OpenLong buys floor(notional/price) shares at price. The fill is
// rejected with InsufficientFunds when cash cannot cover the cost. A
// zero-share fill (notional below price) is permitted and still opens a
// position and logs a trade.
func (s *State) OpenLong(price float64, date time.Time, notional float64) OpResult {
	quantity := int64(math.Floor(notional / price))
	cost := float64(quantity) * price

	if s.Cash < cost {
		return rejected(InsufficientFunds)
	}

	pos := Position{
		ID:         s.NextPositionID,
		Side:       Long,
		EntryDate:  date,
		EntryPrice: price,
		Quantity:   quantity,
		Label:      sideLabel(Long, s.OpenCount(Long)+1),
	}
	s.NextPositionID++

	s.Positions = append(s.Positions, pos)
	s.Cash -= cost

	trade := Trade{
		Date:       date,
		Action:     Buy,
		Price:      price,
		Quantity:   quantity,
		Side:       Long,
		PositionID: pos.ID,
		Label:      pos.Label,
	}
	s.Trades = append(s.Trades, trade)

	return filled(trade)
}

// OpenShort sells floor(notional/price) shares short at price. Proceeds
// are credited immediately; there is no cash guard on the way in.
func (s *State) OpenShort(price float64, date time.Time, notional float64) OpResult {
	quantity := int64(math.Floor(notional / price))
	proceeds := float64(quantity) * price

	pos := Position{
		ID:         s.NextPositionID,
		Side:       Short,
		EntryDate:  date,
		EntryPrice: price,
		Quantity:   quantity,
		Label:      sideLabel(Short, s.OpenCount(Short)+1),
	}
	s.NextPositionID++

	s.Positions = append(s.Positions, pos)
	s.Cash += proceeds

	trade := Trade{
		Date:       date,
		Action:     Sell,
		Price:      price,
		Quantity:   quantity,
		Side:       Short,
		PositionID: pos.ID,
		Label:      pos.Label,
	}
	s.Trades = append(s.Trades, trade)

	return filled(trade)
}

// CloseLong sells an open long at price. Rejected with UnknownPosition
// or SideMismatch when the id does not name an open long; the ledger is
// unchanged in that case, so a second close of the same id is a no-op.
func (s *State) CloseLong(positionID int, price float64, date time.Time) OpResult {
	pos, idx := s.Find(positionID)
	if pos == nil {
		return rejected(UnknownPosition)
	}
	if pos.Side != Long {
		return rejected(SideMismatch)
	}

	proceeds := float64(pos.Quantity) * price
	entryNotional := float64(pos.Quantity) * pos.EntryPrice
	profit := proceeds - entryNotional

	s.Cash += proceeds

	return s.settle(*pos, idx, Sell, price, date, profit, entryNotional)
}

// CloseShort buys back an open short at price. Rejected with
// InsufficientFunds when cash cannot cover the buyback.
func (s *State) CloseShort(positionID int, price float64, date time.Time) OpResult {
	pos, idx := s.Find(positionID)
	if pos == nil {
		return rejected(UnknownPosition)
	}
	if pos.Side != Short {
		return rejected(SideMismatch)
	}

	cost := float64(pos.Quantity) * price
	entryNotional := float64(pos.Quantity) * pos.EntryPrice
	profit := entryNotional - cost

	if s.Cash < cost {
		return rejected(InsufficientFunds)
	}

	s.Cash -= cost

	return s.settle(*pos, idx, Buy, price, date, profit, entryNotional)
}

// settle moves a position to the closed set and appends its closing
// trade. Cash has already been adjusted by the caller.
func (s *State) settle(pos Position, idx int, action Action, price float64, date time.Time, profit, entryNotional float64) OpResult {
	profitRate := 0.0
	if entryNotional != 0 {
		profitRate = profit / entryNotional * 100
	}

	closed := ClosedPosition{
		Position:   pos,
		ExitDate:   date,
		ExitPrice:  price,
		Profit:     profit,
		ProfitRate: profitRate,
	}
	s.Closed = append(s.Closed, closed)
	s.Positions = append(s.Positions[:idx], s.Positions[idx+1:]...)

	trade := Trade{
		Date:       date,
		Action:     action,
		Price:      price,
		Quantity:   pos.Quantity,
		Side:       pos.Side,
		PositionID: pos.ID,
		Label:      pos.Label,
		IsClosing:  true,
		Profit:     profit,
	}
	s.Trades = append(s.Trades, trade)

	res := filled(trade)
	res.Closed = &closed
	return res
}

// PortfolioValue marks the open positions to currentPrice: longs at
// quantity times price, shorts at their mark-to-market gain or loss
// against entry. This is a valuation, not cash.
func PortfolioValue(positions []Position, currentPrice float64) float64 {
	value := 0.0
	for _, p := range positions {
		if p.Side == Long {
			value += float64(p.Quantity) * currentPrice
		} else {
			value += float64(p.Quantity) * (p.EntryPrice - currentPrice)
		}
	}
	return value
}
