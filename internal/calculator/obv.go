package calculator

// OnBalanceVolume accumulates volume on up closes and subtracts it on down closes.
// Returns 0 with fewer than two bars.
func OnBalanceVolume(closes []float64, volumes []int64) float64 {
	n := minLen(len(closes), len(volumes))
	if n < 2 {
		return 0
	}
	var obv float64
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += float64(volumes[i])
		case closes[i] < closes[i-1]:
			obv -= float64(volumes[i])
		}
	}
	return obv
}
