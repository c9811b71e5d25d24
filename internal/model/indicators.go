package model

import "time"

// MACD holds the moving average convergence divergence triple.
type MACD struct {
	Value     float64 `json:"value"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the volatility envelope around the middle SMA.
type BollingerBands struct {
	Upper        float64 `json:"upper"`
	Middle       float64 `json:"middle"`
	Lower        float64 `json:"lower"`
	WidthPercent float64 `json:"widthPercent"`
}

// Stochastic holds the %K and %D oscillator values.
type Stochastic struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// Levels holds pivot-point support and resistance, nearest first.
type Levels struct {
	Support    []float64 `json:"supportLevels"`
	Resistance []float64 `json:"resistanceLevels"`
}

// IndicatorSet is a snapshot of all technical indicators at the most recent point.
type IndicatorSet struct {
	AsOf             time.Time      `json:"asOf"`
	Price            float64        `json:"price"`
	RSI              float64        `json:"rsi"`
	MACD             MACD           `json:"macd"`
	BollingerBands   BollingerBands `json:"bollingerBands"`
	MA50             float64        `json:"ma50"`
	MA200            float64        `json:"ma200"`
	MA200Available   bool           `json:"ma200Available"` // false when MA200 is the short-history fallback
	EMA20            float64        `json:"ema20"`
	EMA50            float64        `json:"ema50"`
	ATR              float64        `json:"atr"`
	OBV              float64        `json:"obv"`
	Stochastic       Stochastic     `json:"stochastic"`
	ADX              float64        `json:"adx"`
	SupportLevels    []float64      `json:"supportLevels"`
	ResistanceLevels []float64      `json:"resistanceLevels"`
	High52w          float64        `json:"high52w"`
	Low52w           float64        `json:"low52w"`
	Position52w      float64        `json:"position52w"` // 0.0 ~ 1.0
}
