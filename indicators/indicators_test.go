package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim/market"
)

func TestMovingAverage(t *testing.T) {
	t.Parallel()

	out := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestMovingAveragePeriodOne(t *testing.T) {
	t.Parallel()

	series := []float64{10, 20, 30}
	out := MovingAverage(series, 1)
	assert.Equal(t, series, out)
}

func TestMovingAverageShortSeries(t *testing.T) {
	t.Parallel()

	out := MovingAverage([]float64{1, 2}, 5)
	require.Len(t, out, 2)
	for i, v := range out {
		assert.True(t, math.IsNaN(v), "index %d", i)
	}
}

func TestRSIShortSeriesAllNaN(t *testing.T) {
	t.Parallel()

	// period+1 values are the minimum; one fewer means no output at all
	series := make([]float64, 14)
	for i := range series {
		series[i] = float64(100 + i)
	}
	out := RSI(series, 14)
	require.Len(t, out, 14)
	for i, v := range out {
		assert.True(t, math.IsNaN(v), "index %d", i)
	}
}

func TestRSIWarmupAndFirstValue(t *testing.T) {
	t.Parallel()

	// steady +1 changes: avgGain 1, avgLoss 0 so the denominator
	// substitution makes RS exactly 1 and RSI exactly 50
	series := make([]float64, 20)
	for i := range series {
		series[i] = float64(100 + i)
	}
	out := RSI(series, 14)
	require.Len(t, out, 20)

	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d", i)
	}
	for i := 14; i < 20; i++ {
		assert.InDelta(t, 50.0, out[i], 1e-9, "index %d", i)
	}
}

func TestRSISteadyDeclineIsZero(t *testing.T) {
	t.Parallel()

	series := make([]float64, 20)
	for i := range series {
		series[i] = float64(200 - i)
	}
	out := RSI(series, 14)

	for i := 14; i < 20; i++ {
		assert.InDelta(t, 0.0, out[i], 1e-9, "index %d", i)
	}
}

func TestRSIWilderSmoothing(t *testing.T) {
	t.Parallel()

	// period 2 keeps the hand calculation small:
	// changes +1, -1, +3
	// seed: avgGain 0.5, avgLoss 0.5, RS 1, RSI 50
	// next: avgGain (0.5+3)/2 = 1.75, avgLoss 0.5/2 = 0.25, RS 7, RSI 87.5
	out := RSI([]float64{10, 11, 10, 13}, 2)
	require.Len(t, out, 4)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 50.0, out[2], 1e-9)
	assert.InDelta(t, 87.5, out[3], 1e-9)
}

func TestRSIFlatSeries(t *testing.T) {
	t.Parallel()

	series := make([]float64, 20)
	for i := range series {
		series[i] = 500
	}
	out := RSI(series, 14)

	// no gains, no losses: RS 0/1, RSI 0
	for i := 14; i < 20; i++ {
		assert.InDelta(t, 0.0, out[i], 1e-9, "index %d", i)
	}
}

func TestChart(t *testing.T) {
	t.Parallel()

	series := make(market.Series, 30)
	for i := range series {
		series[i] = market.PricePoint{
			Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:  float64(100 + i),
			High:  float64(102 + i),
			Low:   float64(99 + i),
			Close: float64(101 + i),
		}
	}

	chart := Chart(series)
	require.Len(t, chart, 30)

	first := chart[0]
	assert.Equal(t, series[0].Date, first.Date)
	assert.Equal(t, series[0].Close, first.Close)
	assert.True(t, math.IsNaN(first.MA5))
	assert.True(t, math.IsNaN(first.RSI))

	last := chart[29]
	assert.InDelta(t, (126+127+128+129+130)/5.0, last.MA5, 1e-9)
	assert.InDelta(t, float64(101+29-19+101+29)/2, last.MA20, 1e-9)
	assert.False(t, math.IsNaN(last.RSI))
	assert.True(t, math.IsNaN(last.MA60), "60-day window never fills in 30 days")
	assert.True(t, math.IsNaN(last.MA300))
}
