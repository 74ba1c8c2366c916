// Package indicators provides technical analysis over a daily close
// series. Outputs are aligned to the input: slot i describes series[i],
// with math.NaN() marking warmup slots that have no defined value.
package indicators

import "math"

// MovingAverage computes the simple moving average over the trailing
// period-length window. The first period-1 slots are NaN; windows never
// cross the series start.
func MovingAverage(series []float64, period int) []float64 {
	out := make([]float64, len(series))

	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= period {
			sum -= series[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// RSI computes Wilder's relative strength index. The first period slots
// are NaN (the value at index period is seeded from the plain mean of
// the first period price changes, smoothed thereafter). When the
// average loss is zero the denominator is substituted with 1, pushing
// RSI toward 100 instead of dividing by zero. Series shorter than
// period+1 come back all NaN.
func RSI(series []float64, period int) []float64 {
	out := make([]float64, len(series))

	if len(series) < period+1 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	changes := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		changes[i-1] = series[i] - series[i-1]
	}

	for i := 0; i < period; i++ {
		out[i] = math.NaN()
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 0; i < period; i++ {
		if changes[i] > 0 {
			avgGain += changes[i]
		} else {
			avgLoss += math.Abs(changes[i])
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out[period] = rsiValue(avgGain, avgLoss)

	for i := period; i < len(changes); i++ {
		gain, loss := 0.0, 0.0
		if changes[i] > 0 {
			gain = changes[i]
		} else if changes[i] < 0 {
			loss = math.Abs(changes[i])
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		out[i+1] = rsiValue(avgGain, avgLoss)
	}

	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	denom := avgLoss
	if denom == 0 {
		denom = 1
	}
	rs := avgGain / denom
	return 100 - 100/(1+rs)
}
