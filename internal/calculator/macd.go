package calculator

import "StockAnalyzer/internal/model"

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// MACD returns EMA(12)-EMA(26), its 9-period signal line and the histogram.
// The signal is the EMA of the MACD values recomputed at each of the last 9 points;
// points with fewer than 26 prices behind them are skipped.
// Fewer than 26 prices yields all zeros.
func MACD(prices []float64) model.MACD {
	if len(prices) < macdSlow {
		return model.MACD{}
	}

	value := macdLine(prices)

	start := len(prices) - macdSignal
	if start < macdSlow-1 {
		start = macdSlow - 1
	}
	line := make([]float64, 0, macdSignal)
	for i := start; i < len(prices); i++ {
		line = append(line, macdLine(prices[:i+1]))
	}
	signal := ExponentialMovingAverage(line, macdSignal)

	return model.MACD{
		Value:     value,
		Signal:    signal,
		Histogram: value - signal,
	}
}

func macdLine(prices []float64) float64 {
	return ExponentialMovingAverage(prices, macdFast) - ExponentialMovingAverage(prices, macdSlow)
}
