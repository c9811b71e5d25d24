package calculator

import "StockAnalyzer/internal/model"

const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0

	// bollingerFallbackPad is the fixed band half-width used when history is too short.
	bollingerFallbackPad = 0.05
)

// Bollinger computes bands of multiplier standard deviations around SMA(period).
// With fewer than period prices it returns a ±5% band around the last price.
func Bollinger(prices []float64, period int, multiplier float64) model.BollingerBands {
	if len(prices) == 0 {
		return model.BollingerBands{}
	}
	if period <= 0 {
		period = DefaultBollingerPeriod
	}
	if len(prices) < period {
		last := prices[len(prices)-1]
		return bandsOf(last*(1+bollingerFallbackPad), last, last*(1-bollingerFallbackPad))
	}

	window := prices[len(prices)-period:]
	middle := MovingAverage(window, period)
	sd := StandardDeviation(window)
	return bandsOf(middle+multiplier*sd, middle, middle-multiplier*sd)
}

func bandsOf(upper, middle, lower float64) model.BollingerBands {
	b := model.BollingerBands{Upper: upper, Middle: middle, Lower: lower}
	if middle != 0 {
		b.WidthPercent = (upper - lower) / middle * 100
	}
	return b
}
