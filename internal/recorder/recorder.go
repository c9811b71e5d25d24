package recorder

import (
	"context"
	"time"

	"StockAnalyzer/internal/model"
)

// HistoryEntry is one persisted analysis, flattened for listing.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Interval    string    `json:"interval"`
	Source      string    `json:"source"`
	Price       float64   `json:"price"`
	RSI         float64   `json:"rsi"`
	MACD        float64   `json:"macd"`
	MA50        float64   `json:"ma50"`
	MA200       float64   `json:"ma200"`
	Position52w float64   `json:"position52w"`
	TotalScore  float64   `json:"totalScore"`
	Rating      string    `json:"rating"`
	Patterns    []string  `json:"patterns"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Recorder persists analyses for later inspection.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	// History returns the newest entries first.
	History(ctx context.Context, symbol string, limit int) ([]HistoryEntry, error)
	Close() error
}

// DefaultHistoryLimit caps History when the caller passes a non-positive limit.
const DefaultHistoryLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return DefaultHistoryLimit
	}
	return limit
}
