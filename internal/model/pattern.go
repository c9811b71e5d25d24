package model

// PatternName enumerates the chart patterns the engine can detect.
type PatternName string

const (
	PatternVolumeBreakout          PatternName = "Volume Breakout"
	PatternGoldenCross             PatternName = "Golden Cross"
	PatternDeathCross              PatternName = "Death Cross"
	PatternOverbought              PatternName = "Overbought"
	PatternOversold                PatternName = "Oversold"
	PatternBollingerUpper          PatternName = "Bollinger Breakout Upper"
	PatternBollingerLower          PatternName = "Bollinger Breakout Lower"
	PatternHeadAndShoulders        PatternName = "Head and Shoulders"
	PatternInverseHeadAndShoulders PatternName = "Inverse Head and Shoulders"
)

// ChartPattern is a detected qualitative signal.
type ChartPattern struct {
	Name           PatternName `json:"name"`
	Bullish        bool        `json:"bullish"`
	Confidence     int         `json:"confidence"` // 0 ~ 100
	Description    string      `json:"description"`
	TradingActions string      `json:"tradingActions,omitempty"`
}
