package calculator

import (
	"fmt"
	"math"

	"StockAnalyzer/internal/model"
)

const (
	// MinPatternBars is the shortest history on which any pattern is evaluated.
	MinPatternBars = 20

	breakoutLookback    = 10
	breakoutMinChange   = 5.0 // percent
	breakoutVolumeRatio = 1.5
	volumeAvgWindow     = 20

	crossFast = 20
	crossSlow = 50

	rsiOverbought = 70.0
	rsiOversold   = 30.0

	shoulderWindow    = 30
	headMinExcess     = 0.02
	shoulderTolerance = 0.03
)

// DetectChartPatterns runs every detector independently; several patterns may fire
// on the same bar. Fewer than MinPatternBars bars yields an empty list.
func DetectChartPatterns(closes, highs, lows []float64, volumes []int64) []model.ChartPattern {
	patterns := []model.ChartPattern{}
	n := minLen(len(closes), len(highs), len(lows), len(volumes))
	if n < MinPatternBars {
		return patterns
	}
	closes, highs, lows, volumes = closes[:n], highs[:n], lows[:n], volumes[:n]

	if p, ok := detectVolumeBreakout(closes, volumes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectMovingAverageCross(closes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectRSIExtreme(closes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectBollingerBreakout(closes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectHeadAndShoulders(closes, highs, lows); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

func detectVolumeBreakout(closes []float64, volumes []int64) (model.ChartPattern, bool) {
	n := len(closes)
	base := closes[n-1-breakoutLookback]
	if base == 0 {
		return model.ChartPattern{}, false
	}
	change := (closes[n-1] - base) / base * 100

	start := n - 1 - volumeAvgWindow
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, v := range volumes[start : n-1] {
		sum += float64(v)
	}
	avg := sum / float64(n-1-start)
	if avg <= 0 {
		return model.ChartPattern{}, false
	}
	ratio := float64(volumes[n-1]) / avg

	if change <= breakoutMinChange || ratio <= breakoutVolumeRatio {
		return model.ChartPattern{}, false
	}
	return model.ChartPattern{
		Name:           model.PatternVolumeBreakout,
		Bullish:        true,
		Confidence:     clampConfidence(60 + int(change*2)),
		Description:    fmt.Sprintf("Price rose %.1f%% over %d bars on %.1fx average volume", change, breakoutLookback, ratio),
		TradingActions: "Consider entries on a pullback toward the breakout level; place stops below the prior consolidation",
	}, true
}

func detectMovingAverageCross(closes []float64) (model.ChartPattern, bool) {
	n := len(closes)
	// Both EMAs must be real on the previous bar, not short-history fallbacks.
	if n < crossSlow+1 {
		return model.ChartPattern{}, false
	}
	prev := ExponentialMovingAverage(closes[:n-1], crossFast) - ExponentialMovingAverage(closes[:n-1], crossSlow)
	cur := ExponentialMovingAverage(closes, crossFast) - ExponentialMovingAverage(closes, crossSlow)

	switch {
	case prev <= 0 && cur > 0:
		return model.ChartPattern{
			Name:           model.PatternGoldenCross,
			Bullish:        true,
			Confidence:     75,
			Description:    fmt.Sprintf("EMA%d crossed above EMA%d", crossFast, crossSlow),
			TradingActions: "Trend-following long bias; confirm with rising volume before adding size",
		}, true
	case prev >= 0 && cur < 0:
		return model.ChartPattern{
			Name:           model.PatternDeathCross,
			Bullish:        false,
			Confidence:     75,
			Description:    fmt.Sprintf("EMA%d crossed below EMA%d", crossFast, crossSlow),
			TradingActions: "Tighten stops on long positions; avoid new longs until the trend repairs",
		}, true
	}
	return model.ChartPattern{}, false
}

func detectRSIExtreme(closes []float64) (model.ChartPattern, bool) {
	rsi := RelativeStrengthIndex(closes, DefaultRSIPeriod)
	switch {
	case rsi > rsiOverbought:
		return model.ChartPattern{
			Name:           model.PatternOverbought,
			Bullish:        false,
			Confidence:     clampConfidence(50 + int((rsi-rsiOverbought)*2)),
			Description:    fmt.Sprintf("RSI(%d) at %.1f is above %.0f", DefaultRSIPeriod, rsi, rsiOverbought),
			TradingActions: "Consider taking partial profits; wait for RSI to cool before new entries",
		}, true
	case rsi < rsiOversold:
		return model.ChartPattern{
			Name:           model.PatternOversold,
			Bullish:        true,
			Confidence:     clampConfidence(50 + int((rsiOversold-rsi)*2)),
			Description:    fmt.Sprintf("RSI(%d) at %.1f is below %.0f", DefaultRSIPeriod, rsi, rsiOversold),
			TradingActions: "Watch for a reversal candle to scale into a position; keep size small",
		}, true
	}
	return model.ChartPattern{}, false
}

func detectBollingerBreakout(closes []float64) (model.ChartPattern, bool) {
	bands := Bollinger(closes, DefaultBollingerPeriod, DefaultBollingerMultiplier)
	last := closes[len(closes)-1]
	switch {
	case last > bands.Upper:
		return model.ChartPattern{
			Name:           model.PatternBollingerUpper,
			Bullish:        true,
			Confidence:     65,
			Description:    fmt.Sprintf("Close %.2f is above the upper band %.2f", last, bands.Upper),
			TradingActions: "Momentum is strong; trail stops at the middle band",
		}, true
	case last < bands.Lower:
		return model.ChartPattern{
			Name:           model.PatternBollingerLower,
			Bullish:        false,
			Confidence:     65,
			Description:    fmt.Sprintf("Close %.2f is below the lower band %.2f", last, bands.Lower),
			TradingActions: "Selling pressure is elevated; wait for a close back inside the bands",
		}, true
	}
	return model.ChartPattern{}, false
}

// detectHeadAndShoulders splits the last shoulderWindow bars into three equal
// segments and compares their extremes. It is an approximation, not a swing-point detector.
func detectHeadAndShoulders(closes, highs, lows []float64) (model.ChartPattern, bool) {
	n := len(closes)
	if n < shoulderWindow {
		return model.ChartPattern{}, false
	}
	seg := shoulderWindow / 3
	start := n - shoulderWindow
	last := closes[n-1]

	left := maxOf(highs[start : start+seg])
	head := maxOf(highs[start+seg : start+2*seg])
	right := maxOf(highs[start+2*seg : n])
	neckline := minOf(lows[start+seg : start+2*seg])
	shoulder := math.Max(left, right)
	if head >= shoulder*(1+headMinExcess) && math.Abs(left-right) <= shoulder*shoulderTolerance && last < neckline {
		return model.ChartPattern{
			Name:           model.PatternHeadAndShoulders,
			Bullish:        false,
			Confidence:     60,
			Description:    fmt.Sprintf("Head at %.2f between shoulders %.2f/%.2f; close broke neckline %.2f", head, left, right, neckline),
			TradingActions: "Bearish reversal; measured target is the head-to-neckline distance below the neckline",
		}, true
	}

	leftLow := minOf(lows[start : start+seg])
	headLow := minOf(lows[start+seg : start+2*seg])
	rightLow := minOf(lows[start+2*seg : n])
	inverseNeck := maxOf(highs[start+seg : start+2*seg])
	shoulderLow := math.Min(leftLow, rightLow)
	if headLow <= shoulderLow*(1-headMinExcess) && math.Abs(leftLow-rightLow) <= shoulderLow*shoulderTolerance && last > inverseNeck {
		return model.ChartPattern{
			Name:           model.PatternInverseHeadAndShoulders,
			Bullish:        true,
			Confidence:     60,
			Description:    fmt.Sprintf("Head at %.2f between shoulders %.2f/%.2f; close cleared neckline %.2f", headLow, leftLow, rightLow, inverseNeck),
			TradingActions: "Bullish reversal; consider entries on a retest of the neckline",
		}, true
	}
	return model.ChartPattern{}, false
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 95 {
		return 95
	}
	return c
}
