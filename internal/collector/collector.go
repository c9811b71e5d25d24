package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/strategy"
)

// DefaultHistoryBars covers MA200 plus a margin for pattern lookbacks.
const DefaultHistoryBars = 300

// minWeeklyBars keeps weekly requests long enough for MACD and the 52-week range.
const minWeeklyBars = 60

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher     Fetcher
	Engine      calculator.Engine
	Metrics     *metrics.Metrics
	HistoryBars int
}

// NewCollector creates a new Collector. A nil engine uses calculator.NewEngine.
// A nil fetcher yields a collector that can only Analyze caller-supplied series.
func NewCollector(fetcher Fetcher, engine calculator.Engine, m *metrics.Metrics, historyBars int) *Collector {
	if engine == nil {
		engine = calculator.NewEngine()
	}
	if historyBars <= 0 {
		historyBars = DefaultHistoryBars
	}
	return &Collector{Fetcher: fetcher, Engine: engine, Metrics: m, HistoryBars: historyBars}
}

// NormalizeSymbol upper-cases and trims a user-supplied ticker.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || len(s) > 20 {
		return "", ErrInvalidSymbol
	}
	return s, nil
}

// Collect fetches market data for symbol and runs the full analysis.
func (c *Collector) Collect(ctx context.Context, symbol string, interval model.Interval) (*model.Analysis, error) {
	if c.Fetcher == nil {
		return nil, ErrNoFetcher
	}
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", symbol, err)
	}

	bars := c.HistoryBars
	if interval == model.IntervalWeekly {
		bars = c.HistoryBars / 5
		if bars < minWeeklyBars {
			bars = minWeeklyBars
		}
	}

	points, err := c.Fetcher.FetchBars(ctx, sym, interval, bars)
	if err != nil {
		c.Metrics.ObserveAnalysis(c.Fetcher.Name(), err, 0, nil)
		return nil, fmt.Errorf("fetch %s bars for %s: %w", interval, sym, err)
	}

	series := &model.PriceSeries{
		Symbol:    sym,
		Interval:  interval,
		Points:    points,
		FetchedAt: time.Now(),
	}
	return c.Analyze(series, c.Fetcher.Name())
}

// Analyze cleans a caller-supplied series and computes indicators, patterns and the signal.
func (c *Collector) Analyze(series *model.PriceSeries, source string) (*model.Analysis, error) {
	start := time.Now()

	cleaned := calculator.CleanSeries(series.Points)
	if dropped := len(series.Points) - len(cleaned); dropped > 0 {
		log.Warnf("%s: dropped %d invalid or duplicate bars", series.Symbol, dropped)
	}
	if len(cleaned) == 0 {
		c.Metrics.ObserveAnalysis(source, ErrNoData, 0, nil)
		return nil, fmt.Errorf("%s: %w", series.Symbol, ErrNoData)
	}

	clean := &model.PriceSeries{
		Symbol:    series.Symbol,
		Interval:  series.Interval,
		Points:    cleaned,
		FetchedAt: series.FetchedAt,
	}
	if clean.Interval == "" {
		clean.Interval = model.IntervalDaily
	}

	ind := c.Engine.Compute(clean)
	patterns := c.Engine.DetectPatterns(clean)
	signal := strategy.Evaluate(&ind, patterns)

	c.Metrics.ObserveAnalysis(source, nil, time.Since(start), patterns)
	log.Debugf("%s: analyzed %d bars, %d patterns, rating %s", clean.Symbol, len(cleaned), len(patterns), signal.Rating.Label)

	return &model.Analysis{
		ID:         uuid.NewString(),
		Symbol:     clean.Symbol,
		Interval:   clean.Interval,
		Source:     source,
		Bars:       len(cleaned),
		Indicators: ind,
		Patterns:   patterns,
		Signal:     signal,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
