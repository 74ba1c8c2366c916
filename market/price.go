// Package market holds the daily price series the simulator replays.
package market

import (
	"fmt"
	"time"
)

// PricePoint is one trading day of OHLCV data. Points are immutable and
// supplied in ascending date order.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered run of daily price points.
type Series []PricePoint

// Closes returns the close column of the series.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// IndexAtOrAfter returns the index of the first point whose date is not
// before the given date, or -1 when every point precedes it.
func (s Series) IndexAtOrAfter(date time.Time) int {
	for i, p := range s {
		if !p.Date.Before(date) {
			return i
		}
	}
	return -1
}

// WindowWithPreload slices the series for a simulation that starts at
// startDate and runs for days trading days, prepending up to preload
// earlier points so long moving averages have history to draw on. The
// returned offset is how many preload points were actually available;
// the simulation's day 0 sits at that index of the returned series.
func (s Series) WindowWithPreload(startDate time.Time, days, preload int) (Series, int, error) {
	start := s.IndexAtOrAfter(startDate)
	if start == -1 {
		return nil, 0, fmt.Errorf("market: no data at or after %s", startDate.Format("2006-01-02"))
	}

	from := start - preload
	if from < 0 {
		from = 0
	}
	to := start + days
	if to > len(s) {
		to = len(s)
	}

	return s[from:to], start - from, nil
}
