package calculator

import "StockAnalyzer/internal/model"

// Engine computes indicator snapshots and chart patterns from a validated,
// ascending price series. Implementations must be safe for concurrent use.
type Engine interface {
	Compute(series *model.PriceSeries) model.IndicatorSet
	DetectPatterns(series *model.PriceSeries) []model.ChartPattern
}

// longMAPeriod is the MA200 window; shorter series get the last-price fallback.
const longMAPeriod = 200

// Options holds the lookback parameters used by DefaultEngine.
type Options struct {
	RSIPeriod           int
	BollingerPeriod     int
	BollingerMultiplier float64
	ATRPeriod           int
	StochasticK         int
	StochasticD         int
	ADXPeriod           int
}

// DefaultOptions returns the conventional indicator parameters.
func DefaultOptions() Options {
	return Options{
		RSIPeriod:           DefaultRSIPeriod,
		BollingerPeriod:     DefaultBollingerPeriod,
		BollingerMultiplier: DefaultBollingerMultiplier,
		ATRPeriod:           DefaultATRPeriod,
		StochasticK:         DefaultStochasticK,
		StochasticD:         DefaultStochasticD,
		ADXPeriod:           DefaultATRPeriod,
	}
}

// DefaultEngine is the stateless Engine backed by the functions in this package.
type DefaultEngine struct {
	opts Options
}

// NewEngine creates an engine with DefaultOptions.
func NewEngine() *DefaultEngine {
	return &DefaultEngine{opts: DefaultOptions()}
}

// NewEngineWithOptions creates an engine with custom lookbacks.
func NewEngineWithOptions(opts Options) *DefaultEngine {
	return &DefaultEngine{opts: opts}
}

// Compute returns the indicator snapshot at the last point of the series.
func (e *DefaultEngine) Compute(series *model.PriceSeries) model.IndicatorSet {
	closes, highs, lows, volumes := series.Closes(), series.Highs(), series.Lows(), series.Volumes()

	ind := model.IndicatorSet{
		RSI:            RelativeStrengthIndex(closes, e.opts.RSIPeriod),
		MACD:           MACD(closes),
		BollingerBands: Bollinger(closes, e.opts.BollingerPeriod, e.opts.BollingerMultiplier),
		MA50:           MovingAverage(closes, 50),
		MA200:          MovingAverage(closes, longMAPeriod),
		MA200Available: len(closes) >= longMAPeriod,
		EMA20:          ExponentialMovingAverage(closes, 20),
		EMA50:          ExponentialMovingAverage(closes, 50),
		ATR:            AverageTrueRange(highs, lows, closes, e.opts.ATRPeriod),
		OBV:            OnBalanceVolume(closes, volumes),
		Stochastic:     StochasticOscillator(closes, highs, lows, e.opts.StochasticK, e.opts.StochasticD),
		ADX:            AverageDirectionalIndex(highs, lows, closes, e.opts.ADXPeriod),
	}

	levels := SupportResistance(closes, highs, lows)
	ind.SupportLevels = levels.Support
	ind.ResistanceLevels = levels.Resistance

	if last, ok := series.Last(); ok {
		ind.AsOf = last.Date
		ind.Price = last.Close
	}

	lookback := TradingDaysPerYear
	if series.Interval == model.IntervalWeekly {
		lookback = WeeksPerYear
	}
	ind.High52w, ind.Low52w = PriceRange(highs, lows, lookback)
	ind.Position52w = RangePosition(ind.Price, ind.High52w, ind.Low52w)

	return ind
}

// DetectPatterns runs the chart-pattern detectors over the series.
func (e *DefaultEngine) DetectPatterns(series *model.PriceSeries) []model.ChartPattern {
	return DetectChartPatterns(series.Closes(), series.Highs(), series.Lows(), series.Volumes())
}
