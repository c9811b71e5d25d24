package calculator

import "StockAnalyzer/internal/model"

// SupportResistance derives two support and two resistance levels from the
// classic floor-trader pivot of the last bar.
func SupportResistance(closes, highs, lows []float64) model.Levels {
	n := minLen(len(closes), len(highs), len(lows))
	if n == 0 {
		return model.Levels{Support: []float64{0, 0}, Resistance: []float64{0, 0}}
	}
	high, low, last := highs[n-1], lows[n-1], closes[n-1]
	pivot := (high + low + last) / 3
	spread := high - low
	return model.Levels{
		Support:    []float64{2*pivot - high, pivot - spread},
		Resistance: []float64{2*pivot - low, pivot + spread},
	}
}
