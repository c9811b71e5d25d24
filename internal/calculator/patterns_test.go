package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func patternNames(patterns []model.ChartPattern) []model.PatternName {
	names := make([]model.PatternName, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, p.Name)
	}
	return names
}

func detect(closes []float64, volumes []int64) []model.ChartPattern {
	return DetectChartPatterns(closes, offset(closes, 1), offset(closes, -1), volumes)
}

func TestDetectChartPatterns_ShortSeries(t *testing.T) {
	for n := 0; n < MinPatternBars; n++ {
		closes := linear(n, 100, 5)
		got := detect(closes, flatVolumes(n, 1000))
		assert.NotNil(t, got)
		assert.Empty(t, got, "n=%d", n)
	}
}

func TestDetectChartPatterns_VolumeBreakout(t *testing.T) {
	closes := append(constant(24, 100), 110)
	volumes := flatVolumes(25, 1000)
	volumes[24] = 5000

	got := detect(closes, volumes)
	require.Contains(t, patternNames(got), model.PatternVolumeBreakout)
	for _, p := range got {
		if p.Name == model.PatternVolumeBreakout {
			assert.True(t, p.Bullish)
			assert.Equal(t, 80, p.Confidence)
			assert.NotEmpty(t, p.TradingActions)
		}
	}
}

func TestDetectChartPatterns_NoBreakoutWithoutVolume(t *testing.T) {
	closes := append(constant(24, 100), 110)
	got := detect(closes, flatVolumes(25, 1000))
	assert.NotContains(t, patternNames(got), model.PatternVolumeBreakout)
}

func TestDetectChartPatterns_RSIExtremes(t *testing.T) {
	up := detect(linear(30, 50, 1), flatVolumes(30, 1000))
	assert.Contains(t, patternNames(up), model.PatternOverbought)

	down := detect(linear(30, 100, -1), flatVolumes(30, 1000))
	assert.Contains(t, patternNames(down), model.PatternOversold)
	for _, p := range down {
		if p.Name == model.PatternOversold {
			assert.True(t, p.Bullish)
			assert.Equal(t, 95, p.Confidence)
		}
	}
}

// crossIndex returns the first length at which EMA20-EMA50 changes sign in the wanted direction.
func crossIndex(closes []float64, upward bool) int {
	diff := func(p []float64) float64 {
		return ExponentialMovingAverage(p, crossFast) - ExponentialMovingAverage(p, crossSlow)
	}
	for n := crossSlow + 1; n <= len(closes); n++ {
		prev, cur := diff(closes[:n-1]), diff(closes[:n])
		if upward && prev <= 0 && cur > 0 {
			return n
		}
		if !upward && prev >= 0 && cur < 0 {
			return n
		}
	}
	return -1
}

func TestDetectChartPatterns_GoldenCross(t *testing.T) {
	closes := append(linear(60, 200, -1), linear(60, 141, 2)...)
	n := crossIndex(closes, true)
	require.Greater(t, n, 0, "fixture must contain an upward cross")

	got := detect(closes[:n], flatVolumes(n, 1000))
	assert.Contains(t, patternNames(got), model.PatternGoldenCross)
	assert.NotContains(t, patternNames(got), model.PatternDeathCross)
}

func TestDetectChartPatterns_DeathCross(t *testing.T) {
	closes := append(linear(60, 100, 1), linear(60, 158, -2)...)
	n := crossIndex(closes, false)
	require.Greater(t, n, 0, "fixture must contain a downward cross")

	got := detect(closes[:n], flatVolumes(n, 1000))
	assert.Contains(t, patternNames(got), model.PatternDeathCross)
	for _, p := range got {
		if p.Name == model.PatternDeathCross {
			assert.False(t, p.Bullish)
		}
	}
}

func TestDetectChartPatterns_NoCrossOnSteadyTrend(t *testing.T) {
	got := detect(linear(80, 100, 0.1), flatVolumes(80, 1000))
	assert.NotContains(t, patternNames(got), model.PatternGoldenCross)
	assert.NotContains(t, patternNames(got), model.PatternDeathCross)
}

func TestDetectChartPatterns_BollingerLower(t *testing.T) {
	closes := make([]float64, 0, 26)
	for i := 0; i < 25; i++ {
		closes = append(closes, 100+float64(i%2))
	}
	closes = append(closes, 90)

	got := detect(closes, flatVolumes(len(closes), 1000))
	assert.Contains(t, patternNames(got), model.PatternBollingerLower)
	assert.NotContains(t, patternNames(got), model.PatternBollingerUpper)
}

func TestDetectChartPatterns_HeadAndShoulders(t *testing.T) {
	highs := constant(30, 105)
	highs[5] = 110
	highs[15] = 120
	highs[25] = 110.5
	lows := offset(highs, -5)
	closes := offset(highs, -2)
	highs[29], lows[29], closes[29] = 99, 97, 98

	got := DetectChartPatterns(closes, highs, lows, flatVolumes(30, 1000))
	require.Contains(t, patternNames(got), model.PatternHeadAndShoulders)
	assert.NotContains(t, patternNames(got), model.PatternInverseHeadAndShoulders)
}

func TestDetectChartPatterns_InverseHeadAndShoulders(t *testing.T) {
	lows := constant(30, 100)
	lows[5] = 95
	lows[15] = 85
	lows[25] = 95.5
	highs := offset(lows, 5)
	closes := offset(lows, 2)
	highs[29], lows[29], closes[29] = 112, 108, 110

	got := DetectChartPatterns(closes, highs, lows, flatVolumes(30, 1000))
	assert.Contains(t, patternNames(got), model.PatternInverseHeadAndShoulders)
}

func TestDetectChartPatterns_Deterministic(t *testing.T) {
	closes := append(zigzag(40, 80), 120)
	volumes := flatVolumes(41, 1000)
	volumes[40] = 9000
	assert.Equal(t, detect(closes, volumes), detect(closes, volumes))
}
