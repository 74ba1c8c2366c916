package indicators

import (
	"time"

	"stocksim/market"
)

// Standard moving-average periods shown on the price chart.
const (
	MAShort    = 5
	MAMid      = 20
	MAQuarter  = 60
	MALong     = 100
	MAYearPlus = 300

	RSIPeriod = 14
)

// ChartPoint is one day of price data zipped with its indicator values.
// Indicator fields are NaN during their warmup.
type ChartPoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	MA5    float64
	MA20   float64
	MA60   float64
	MA100  float64
	MA300  float64
	RSI    float64
}

// Chart derives the display series for a price window. The input is
// not mutated.
func Chart(prices market.Series) []ChartPoint {
	closes := prices.Closes()

	ma5 := MovingAverage(closes, MAShort)
	ma20 := MovingAverage(closes, MAMid)
	ma60 := MovingAverage(closes, MAQuarter)
	ma100 := MovingAverage(closes, MALong)
	ma300 := MovingAverage(closes, MAYearPlus)
	rsi := RSI(closes, RSIPeriod)

	out := make([]ChartPoint, len(prices))
	for i, p := range prices {
		out[i] = ChartPoint{
			Date:  p.Date,
			Open:  p.Open,
			High:  p.High,
			Low:   p.Low,
			Close: p.Close,
			MA5:   ma5[i],
			MA20:  ma20[i],
			MA60:  ma60[i],
			MA100: ma100[i],
			MA300: ma300[i],
			RSI:   rsi[i],
		}
	}
	return out
}
