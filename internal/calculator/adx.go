package calculator

import "math"

// AverageDirectionalIndex smooths +DM, -DM and true range the Wilder way and
// returns the latest DX = |+DI - -DI| / (+DI + -DI) * 100.
// The DX series itself is not smoothed again. Returns 0 with fewer than period+1 bars.
func AverageDirectionalIndex(highs, lows, closes []float64, period int) float64 {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	n := minLen(len(highs), len(lows), len(closes))
	if n < period+1 {
		return 0
	}

	p := float64(period)
	var trSum, plusSum, minusSum float64
	for i := 1; i < n; i++ {
		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]
		var plusDM, minusDM float64
		if upMove > downMove && upMove > 0 {
			plusDM = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM = downMove
		}
		tr := trueRange(highs[i], lows[i], closes[i-1])

		if i <= period {
			trSum += tr
			plusSum += plusDM
			minusSum += minusDM
			continue
		}
		trSum = trSum - trSum/p + tr
		plusSum = plusSum - plusSum/p + plusDM
		minusSum = minusSum - minusSum/p + minusDM
	}

	if trSum == 0 {
		return 0
	}
	plusDI := 100 * plusSum / trSum
	minusDI := 100 * minusSum / trSum
	if plusDI+minusDI == 0 {
		return 0
	}
	return math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100
}
