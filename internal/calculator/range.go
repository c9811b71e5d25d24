package calculator

import "math"

const (
	TradingDaysPerYear = 252
	WeeksPerYear       = 52
)

// PriceRange scans the most recent lookback bars and returns the highest high and lowest low.
// Returns zeros for empty input.
func PriceRange(highs, lows []float64, lookback int) (high, low float64) {
	n := minLen(len(highs), len(lows))
	if n == 0 {
		return 0, 0
	}
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if highs[i] > high {
			high = highs[i]
		}
		if lows[i] < low {
			low = lows[i]
		}
	}
	return high, low
}

// RangePosition returns where current sits within [low, high] (0.0~1.0).
// A degenerate range yields 0.5.
func RangePosition(current, high, low float64) float64 {
	if high <= low {
		return 0.5
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
