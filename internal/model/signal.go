package model

import "time"

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"rawScore"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Rating maps a total score range to a recommendation.
type Rating struct {
	Label   string `json:"label"`
	Bullish bool   `json:"bullish"`
}

// TradeSignal is the final output of the strategy engine.
type TradeSignal struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"totalScore"`
	Rating     Rating        `json:"rating"`
	Warning    string        `json:"warning,omitempty"`
}

// Analysis bundles everything computed for one symbol in one run.
type Analysis struct {
	ID         string         `json:"id"`
	Symbol     string         `json:"symbol"`
	Interval   Interval       `json:"interval"`
	Source     string         `json:"source"`
	Bars       int            `json:"bars"`
	Indicators IndicatorSet   `json:"indicators"`
	Patterns   []ChartPattern `json:"patterns"`
	Signal     *TradeSignal   `json:"signal"`
	CreatedAt  time.Time      `json:"createdAt"`
}
