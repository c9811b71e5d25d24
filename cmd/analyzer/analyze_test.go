package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
)

func TestRenderAnalysis(t *testing.T) {
	a := &model.Analysis{
		Symbol:   "AAPL",
		Interval: model.IntervalDaily,
		Source:   "mock",
		Bars:     300,
		Indicators: model.IndicatorSet{
			AsOf:          time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			Price:         212.5,
			RSI:           64.25,
			SupportLevels: []float64{205, 198.4},
		},
		Signal: &model.TradeSignal{
			Factors: []model.FactorScore{
				{Name: "RSI", RawScore: 0, Weight: 0.2, Commentary: "neutral"},
				{Name: "MACD", RawScore: 0.5, Weight: 0.15, Weighted: 0.075, Commentary: "turning"},
			},
			TotalScore: 0.1,
			Rating:     model.Rating{Label: "Hold"},
		},
		Patterns: []model.ChartPattern{{Name: model.PatternGoldenCross, Bullish: true, Confidence: 75, Description: "MA50 above MA200"}},
	}

	var buf bytes.Buffer
	renderAnalysis(&buf, a)
	out := buf.String()

	assert.Contains(t, out, "AAPL (1d, 300 bars, source mock) as of 2024-07-01")
	assert.Contains(t, out, "212.50")
	assert.Contains(t, out, "205.00, 198.40")
	assert.Contains(t, strings.ToUpper(out), "HOLD")
	assert.Contains(t, out, "Golden Cross")
	assert.Contains(t, out, "bullish")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "+0.5")
	assert.Contains(t, out, "+0.075")
	assert.Contains(t, out, "n/a")
}

func TestRenderAnalysis_NoPatterns(t *testing.T) {
	var buf bytes.Buffer
	renderAnalysis(&buf, &model.Analysis{Symbol: "X", Patterns: []model.ChartPattern{}})
	assert.Contains(t, buf.String(), "No chart patterns detected.")
}

func TestNewFetcher(t *testing.T) {
	cfg := &config.Config{}

	cfg.DataSource.Provider = config.ProviderREST
	cfg.DataSource.BaseURL = "http://bars"
	assert.IsType(t, &collector.RESTFetcher{}, newFetcher(cfg))

	cfg.DataSource.Provider = config.ProviderCSV
	assert.IsType(t, &collector.CSVFetcher{}, newFetcher(cfg))

	cfg.DataSource.Provider = config.ProviderMock
	assert.Equal(t, "mock", newFetcher(cfg).Name())

	cfg.DataSource.Provider = config.ProviderYahoo
	yf, ok := newFetcher(cfg).(*collector.YahooFetcher)
	assert.True(t, ok)
	assert.Equal(t, "http://bars", yf.BaseURL)
}

func TestNewSender(t *testing.T) {
	cfg := &config.Config{}
	s, bot := newSender(cfg)
	assert.IsType(t, notifier.NoopSender{}, s)
	assert.Nil(t, bot)

	cfg.Telegram.BotToken = "t"
	cfg.Telegram.ChatID = "1"
	s, bot = newSender(cfg)
	assert.NotNil(t, bot)
	assert.Same(t, bot, s)
}

func writeCSV(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,open,high,low,close,volume\n")
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		c := 40 + float64(i)
		fmt.Fprintf(&b, "%s,%.2f,%.2f,%.2f,%.2f,1000\n", start.AddDate(0, 0, i).Format("2006-01-02"), c, c+1, c-1, c)
	}
	path := filepath.Join(t.TempDir(), "aapl_export.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestAnalyzeCSV(t *testing.T) {
	path := writeCSV(t, 30)

	a, err := analyzeCSV(path, " aapl ", model.IntervalDaily)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", a.Symbol)
	assert.Equal(t, "csv:aapl_export.csv", a.Source)
	assert.Equal(t, 30, a.Bars)
	assert.Equal(t, 69.0, a.Indicators.Price)
	assert.False(t, a.Indicators.MA200Available)
	require.NotNil(t, a.Signal)
}

func TestAnalyzeCSV_Errors(t *testing.T) {
	_, err := analyzeCSV(filepath.Join(t.TempDir(), "missing.csv"), "AAPL", model.IntervalDaily)
	assert.Error(t, err)

	_, err = analyzeCSV(writeCSV(t, 30), "  ", model.IntervalDaily)
	assert.ErrorIs(t, err, collector.ErrInvalidSymbol)
}
