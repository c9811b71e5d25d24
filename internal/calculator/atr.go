package calculator

import "math"

// DefaultATRPeriod is the conventional ATR and ADX lookback.
const DefaultATRPeriod = 14

// AverageTrueRange seeds with the mean true range of the first period bars and then
// applies Wilder smoothing. Returns 0 with fewer than period+1 bars.
func AverageTrueRange(highs, lows, closes []float64, period int) float64 {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	n := minLen(len(highs), len(lows), len(closes))
	if n < period+1 {
		return 0
	}

	var atr float64
	for i := 1; i <= period; i++ {
		atr += trueRange(highs[i], lows[i], closes[i-1])
	}
	atr /= float64(period)

	for i := period + 1; i < n; i++ {
		atr = (atr*float64(period-1) + trueRange(highs[i], lows[i], closes[i-1])) / float64(period)
	}
	return atr
}

// trueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}
