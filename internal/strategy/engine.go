package strategy

import "StockAnalyzer/internal/model"

// Ratings defines the 7-level recommendation mapping.
var Ratings = []struct {
	MinScore float64
	Rating   model.Rating
}{
	{1.2, model.Rating{Label: "Strong Buy", Bullish: true}},
	{0.6, model.Rating{Label: "Buy", Bullish: true}},
	{0.2, model.Rating{Label: "Accumulate", Bullish: true}},
	{-0.2, model.Rating{Label: "Hold"}},
	{-0.6, model.Rating{Label: "Reduce"}},
	{-1.2, model.Rating{Label: "Sell"}},
}

// DefaultRating is the lowest rating for scores < -1.2.
var DefaultRating = model.Rating{Label: "Strong Sell"}

// takeProfitRSI triggers the take-profit warning.
const takeProfitRSI = 85

// mapRating maps a total score to a Rating.
func mapRating(totalScore float64) model.Rating {
	for _, r := range Ratings {
		if totalScore >= r.MinScore {
			return r.Rating
		}
	}
	return DefaultRating
}

// Evaluate computes the composite trade signal from an indicator snapshot and
// the patterns detected on the same series.
func Evaluate(ind *model.IndicatorSet, patterns []model.ChartPattern) *model.TradeSignal {
	f1 := scoreMA200Deviation(ind)
	f2 := scoreRSI(ind)
	f3 := scoreMACD(ind)
	f5 := scoreTrend(ind)
	f6 := scorePatterns(patterns)

	// 52-week position depends on how the price-driven factors lean.
	otherFactorsAvg := (f1.RawScore + f2.RawScore + f3.RawScore + f5.RawScore) / 4.0
	f4 := score52WeekPosition(ind, otherFactorsAvg)

	factors := []model.FactorScore{f1, f2, f3, f4, f5, f6}

	var totalScore float64
	for _, f := range factors {
		totalScore += f.Weighted
	}

	signal := &model.TradeSignal{
		Factors:    factors,
		TotalScore: totalScore,
		Rating:     mapRating(totalScore),
	}

	if ind.RSI > takeProfitRSI {
		signal.Warning = "RSI above 85: consider taking partial profits"
	}

	return signal
}
