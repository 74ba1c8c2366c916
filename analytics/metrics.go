// Package analytics summarizes the realized performance of a run.
package analytics

import "stocksim/ledger"

// Metrics is the end-of-run performance record, computed purely from
// the closed positions and the starting cash.
type Metrics struct {
	WinRate       float64 // percent of closed positions with profit > 0
	ProfitRate    float64 // net profit as percent of initial cash
	ExpectedValue float64 // net profit per closed position
	MaxDrawdown   float64 // worst peak-to-trough drop in cumulative profit
	TotalTrades   int
	WinTrades     int
	LoseTrades    int
	AvgProfit     float64
	AvgLoss       float64
	ProfitFactor  float64 // total profit / total loss, 0 when lossless
	TotalProfit   float64
	TotalLoss     float64
}

// Compute builds the metrics record. An empty run returns the zero
// record. Zero-profit closes count as losses; a run with no losing
// trades reports ProfitFactor 0, not infinity.
func Compute(closed []ledger.ClosedPosition, initialCash float64) Metrics {
	if len(closed) == 0 {
		return Metrics{}
	}

	var m Metrics
	m.TotalTrades = len(closed)

	net := 0.0
	for _, c := range closed {
		net += c.Profit
		if c.Profit > 0 {
			m.WinTrades++
			m.TotalProfit += c.Profit
		} else {
			m.LoseTrades++
			m.TotalLoss += -c.Profit
		}
	}

	m.WinRate = float64(m.WinTrades) / float64(m.TotalTrades) * 100
	if initialCash != 0 {
		m.ProfitRate = net / initialCash * 100
	}
	m.ExpectedValue = net / float64(m.TotalTrades)
	m.MaxDrawdown = maxDrawdown(closed)

	if m.WinTrades > 0 {
		m.AvgProfit = m.TotalProfit / float64(m.WinTrades)
	}
	if m.LoseTrades > 0 {
		m.AvgLoss = m.TotalLoss / float64(m.LoseTrades)
	}
	if m.TotalLoss > 0 {
		m.ProfitFactor = m.TotalProfit / m.TotalLoss
	}

	return m
}

// maxDrawdown walks closed positions in closing order, tracking
// cumulative realized profit against its running peak. The timeline is
// the sequence of closings, not calendar days.
func maxDrawdown(closed []ledger.ClosedPosition) float64 {
	var peak, cumulative, maxDD float64

	for _, c := range closed {
		cumulative += c.Profit
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDD {
			maxDD = dd
		}
	}

	return maxDD
}
