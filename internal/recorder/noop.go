package recorder

import (
	"context"

	"StockAnalyzer/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *model.Analysis) error { return nil }

func (n *NoopRecorder) History(_ context.Context, _ string, _ int) ([]HistoryEntry, error) {
	return []HistoryEntry{}, nil
}

func (n *NoopRecorder) Close() error { return nil }
