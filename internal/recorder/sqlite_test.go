package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "nested", "analyzer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func sampleAnalysis(id, symbol string, at time.Time, patterns ...model.PatternName) *model.Analysis {
	a := &model.Analysis{
		ID:        id,
		Symbol:    symbol,
		Interval:  model.IntervalDaily,
		Source:    "mock",
		Bars:      250,
		CreatedAt: at,
		Indicators: model.IndicatorSet{
			Price:       101.5,
			RSI:         62.5,
			MACD:        model.MACD{Value: 1.2, Signal: 0.9, Histogram: 0.3},
			MA50:        99,
			MA200:       95,
			Position52w: 0.8,
		},
		Signal: &model.TradeSignal{
			TotalScore: 0.35,
			Rating:     model.Rating{Label: "Accumulate", Bullish: true},
		},
		Patterns: []model.ChartPattern{},
	}
	for _, p := range patterns {
		a.Patterns = append(a.Patterns, model.ChartPattern{Name: p, Bullish: true, Confidence: 70, Description: string(p)})
	}
	return a
}

func TestSQLiteRecorder_RecordAndHistory(t *testing.T) {
	r := newTestRecorder(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordAnalysis(sampleAnalysis("a1", "AAPL", base, model.PatternGoldenCross)))
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("a2", "AAPL", base.Add(time.Hour),
		model.PatternOverbought, model.PatternVolumeBreakout)))
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("m1", "MSFT", base)))

	entries, err := r.History(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	newest := entries[0]
	assert.Equal(t, "a2", newest.ID)
	assert.Equal(t, "1d", newest.Interval)
	assert.Equal(t, "Accumulate", newest.Rating)
	assert.InDelta(t, 101.5, newest.Price, 1e-9)
	assert.InDelta(t, 1.2, newest.MACD, 1e-9)
	assert.Equal(t, []string{"Overbought", "Volume Breakout"}, newest.Patterns)
	assert.True(t, newest.CreatedAt.Equal(base.Add(time.Hour)))

	assert.Equal(t, "a1", entries[1].ID)
	assert.Equal(t, []string{"Golden Cross"}, entries[1].Patterns)
}

func TestSQLiteRecorder_HistoryLimitAndEmpty(t *testing.T) {
	r := newTestRecorder(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"x1", "x2", "x3"} {
		require.NoError(t, r.RecordAnalysis(sampleAnalysis(id, "SPY", base.Add(time.Duration(i)*time.Minute))))
	}

	entries, err := r.History(context.Background(), "SPY", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "x3", entries[0].ID)
	assert.Equal(t, "x2", entries[1].ID)
	assert.Empty(t, entries[0].Patterns)

	none, err := r.History(context.Background(), "QQQ", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLiteRecorder_DuplicateIDRollsBack(t *testing.T) {
	r := newTestRecorder(t)
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("dup", "AAPL", at)))
	assert.Error(t, r.RecordAnalysis(sampleAnalysis("dup", "AAPL", at, model.PatternOversold)))

	entries, err := r.History(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Patterns)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordAnalysis(sampleAnalysis("n", "AAPL", time.Now())))
	entries, err := r.History(context.Background(), "AAPL", 5)
	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, r.Close())
}
