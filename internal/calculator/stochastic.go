package calculator

import "StockAnalyzer/internal/model"

const (
	DefaultStochasticK = 14
	DefaultStochasticD = 3
)

// StochasticOscillator returns %K over kPeriod bars and %D as the mean of the
// last dPeriod %K values. A flat range yields 50, as does history shorter than kPeriod.
func StochasticOscillator(closes, highs, lows []float64, kPeriod, dPeriod int) model.Stochastic {
	if kPeriod <= 0 {
		kPeriod = DefaultStochasticK
	}
	if dPeriod <= 0 {
		dPeriod = DefaultStochasticD
	}
	n := minLen(len(closes), len(highs), len(lows))
	if n < kPeriod {
		return model.Stochastic{K: 50, D: 50}
	}

	ks := make([]float64, 0, dPeriod)
	for end := n - dPeriod + 1; end <= n; end++ {
		if end < kPeriod {
			continue
		}
		ks = append(ks, percentK(closes[:end], highs[:end], lows[:end], kPeriod))
	}

	var sum float64
	for _, k := range ks {
		sum += k
	}
	return model.Stochastic{K: ks[len(ks)-1], D: sum / float64(len(ks))}
}

func percentK(closes, highs, lows []float64, period int) float64 {
	end := len(closes)
	highest, lowest := highs[end-period], lows[end-period]
	for i := end - period + 1; i < end; i++ {
		if highs[i] > highest {
			highest = highs[i]
		}
		if lows[i] < lowest {
			lowest = lows[i]
		}
	}
	if highest == lowest {
		return 50
	}
	return (closes[end-1] - lowest) / (highest - lowest) * 100
}
