// Package offset finds the break-even settlement points of mixed
// long/short position subsets.
//
// For every non-empty subset of the open positions that contains at
// least one long and at least one short, there is a single market price
// at which closing the whole subset nets exactly zero: the
// quantity-weighted average of the subset's entry prices. Enumeration
// is O(2^n) by contract; the surrounding policy caps open positions at
// a small maximum, so n stays tiny and correctness wins over cleverness.
package offset

import (
	"stocksim/ledger"
)

// Direction of the subset's net exposure.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// Point is one offsettable subset and its break-even price. The price
// is informational: settlement itself executes at the market price of
// the day it happens, not at OffsetPrice.
type Point struct {
	Positions   []ledger.Position
	Labels      []string
	OffsetPrice float64
	NetQuantity int64
	Direction   Direction
}

// Points enumerates every offsettable subset of the open positions.
// Subsets that are all-long or all-short are skipped; no deduplication
// is done across subsets that happen to share a price.
func Points(positions []ledger.Position) []Point {
	n := len(positions)
	if n == 0 {
		return nil
	}

	var out []Point
	for mask := 1; mask < 1<<n; mask++ {
		if p, ok := fromSubset(positions, mask); ok {
			out = append(out, p)
		}
	}
	return out
}

// fromSubset builds the offset point for the positions selected by the
// bitmask, or reports false for a single-sided subset.
func fromSubset(positions []ledger.Position, mask int) (Point, bool) {
	var (
		subset   []ledger.Position
		hasLong  bool
		hasShort bool
	)
	for i := range positions {
		if mask&(1<<i) == 0 {
			continue
		}
		subset = append(subset, positions[i])
		switch positions[i].Side {
		case ledger.Long:
			hasLong = true
		case ledger.Short:
			hasShort = true
		}
	}
	if !hasLong || !hasShort {
		return Point{}, false
	}

	var (
		sumQP float64
		sumQ  int64
		net   int64
	)
	for _, p := range subset {
		sumQP += float64(p.Quantity) * p.EntryPrice
		sumQ += p.Quantity
		if p.Side == ledger.Long {
			net += p.Quantity
		} else {
			net -= p.Quantity
		}
	}
	if sumQ == 0 {
		// all zero-quantity fills; no price offsets nothing
		return Point{}, false
	}

	labels := make([]string, len(subset))
	for i, p := range subset {
		labels[i] = p.Label
	}

	dir := DirectionSell
	if net > 0 {
		dir = DirectionBuy
	}
	if net < 0 {
		net = -net
	}

	return Point{
		Positions:   subset,
		Labels:      labels,
		OffsetPrice: sumQP / float64(sumQ),
		NetQuantity: net,
		Direction:   dir,
	}, true
}
