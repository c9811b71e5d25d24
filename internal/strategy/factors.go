package strategy

import (
	"fmt"

	"StockAnalyzer/internal/model"
)

const strongTrendADX = 25

func factor(name string, score, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// scoreMA200Deviation scores how far the price sits from MA200; deep discounts score high.
// Weight: 0.25
func scoreMA200Deviation(ind *model.IndicatorSet) model.FactorScore {
	if !ind.MA200Available || ind.MA200 == 0 {
		return factor("MA200 Deviation", 0, 0.25, "MA200 unavailable")
	}
	deviation := (ind.Price - ind.MA200) / ind.MA200 * 100

	var score float64
	switch {
	case deviation <= -20:
		score = 2.0
	case deviation <= -10:
		score = 1.5
	case deviation <= -5:
		score = 1.0
	case deviation <= 0:
		score = 0.5
	case deviation <= 5:
		score = 0
	case deviation <= 10:
		score = -0.5
	case deviation <= 15:
		score = -1.0
	case deviation <= 20:
		score = -1.5
	default:
		score = -2.0
	}
	return factor("MA200 Deviation", score, 0.25, fmt.Sprintf("%+.1f%%", deviation))
}

// scoreRSI scores RSI(14) contrarian-style.
// Weight: 0.20
func scoreRSI(ind *model.IndicatorSet) model.FactorScore {
	rsi := ind.RSI
	var score float64
	switch {
	case rsi <= 25:
		score = 2.0
	case rsi <= 30:
		score = 1.5
	case rsi <= 40:
		score = 1.0
	case rsi <= 45:
		score = 0.5
	case rsi <= 55:
		score = 0
	case rsi <= 60:
		score = -0.5
	case rsi <= 70:
		score = -1.0
	case rsi <= 80:
		score = -1.5
	default:
		score = -2.0
	}
	return factor("RSI", score, 0.20, fmt.Sprintf("RSI=%.0f", rsi))
}

// scoreMACD scores momentum from the MACD line and histogram.
// Weight: 0.15
func scoreMACD(ind *model.IndicatorSet) model.FactorScore {
	m := ind.MACD
	var score float64
	var commentary string
	switch {
	case m.Histogram > 0 && m.Value > 0:
		score, commentary = 1.5, "bullish momentum"
	case m.Histogram > 0:
		score, commentary = 1.0, "momentum turning up"
	case m.Histogram < 0 && m.Value < 0:
		score, commentary = -1.5, "bearish momentum"
	case m.Histogram < 0:
		score, commentary = -1.0, "momentum fading"
	default:
		commentary = "flat"
	}
	return factor("MACD", score, 0.15, commentary)
}

// score52WeekPosition scores where the price sits in the 52-week range.
// Weight: 0.10
// Above 95% it only gives -2 when the other factors average below -1, otherwise caps at -1.
func score52WeekPosition(ind *model.IndicatorSet, otherFactorsAvg float64) model.FactorScore {
	pos := ind.Position52w * 100

	var score float64
	switch {
	case pos <= 10:
		score = 2.0
	case pos <= 20:
		score = 1.5
	case pos <= 30:
		score = 1.0
	case pos <= 40:
		score = 0.5
	case pos <= 60:
		score = 0
	case pos <= 70:
		score = -0.5
	case pos <= 80:
		score = -1.0
	case pos <= 95:
		score = -1.5
	default:
		if otherFactorsAvg < -1 {
			score = -2.0
		} else {
			score = -1.0
		}
	}
	return factor("52-Week Position", score, 0.10, fmt.Sprintf("position=%.0f%%", pos))
}

// scoreTrend scores EMA alignment, strengthened when ADX shows a trending market.
// Weight: 0.20
// Bull alignment: price > EMA20 > EMA50
// Bear alignment: price < EMA20 < EMA50
func scoreTrend(ind *model.IndicatorSet) model.FactorScore {
	bullish := ind.Price > ind.EMA20 && ind.EMA20 > ind.EMA50
	bearish := ind.Price < ind.EMA20 && ind.EMA20 < ind.EMA50
	strong := ind.ADX > strongTrendADX

	var score float64
	var commentary string
	switch {
	case bullish && strong:
		score, commentary = 1.5, "strong uptrend"
	case bullish:
		score, commentary = 1.0, "uptrend"
	case bearish && strong:
		score, commentary = -1.0, "strong downtrend"
	case bearish:
		score, commentary = -0.5, "downtrend"
	default:
		commentary = "range-bound"
	}
	return factor("Trend", score, 0.20, commentary)
}

// scorePatterns nets bullish against bearish pattern confidence.
// Weight: 0.10
func scorePatterns(patterns []model.ChartPattern) model.FactorScore {
	var score float64
	var bull, bear int
	for _, p := range patterns {
		if p.Bullish {
			score += float64(p.Confidence) / 50
			bull++
		} else {
			score -= float64(p.Confidence) / 50
			bear++
		}
	}
	if score > 2 {
		score = 2
	}
	if score < -2 {
		score = -2
	}
	return factor("Patterns", score, 0.10, fmt.Sprintf("%d bullish / %d bearish", bull, bear))
}
