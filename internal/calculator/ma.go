package calculator

import "github.com/montanaflynn/stats"

// MovingAverage returns the simple mean of the last period prices.
// With fewer than period prices it returns the most recent price, or 0 for empty input.
func MovingAverage(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	last := prices[len(prices)-1]
	if period <= 0 || len(prices) < period {
		return last
	}
	mean, err := stats.Mean(prices[len(prices)-period:])
	if err != nil {
		return last
	}
	return mean
}

// ExponentialMovingAverage seeds with the SMA of the first period prices and then
// applies ema = (price-ema)*k + ema with k = 2/(period+1).
// Short input falls back the same way as MovingAverage.
func ExponentialMovingAverage(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if period <= 0 || len(prices) < period {
		return prices[len(prices)-1]
	}
	k := 2.0 / float64(period+1)
	ema := MovingAverage(prices[:period], period)
	for _, p := range prices[period:] {
		ema = (p-ema)*k + ema
	}
	return ema
}

// StandardDeviation returns the population standard deviation, 0 for empty input.
func StandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return sd
}
