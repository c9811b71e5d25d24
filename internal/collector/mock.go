package collector

import (
	"context"
	"sync/atomic"
	"time"

	"StockAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.PricePoint
	Err   error

	calls atomic.Int64
}

// Calls reports how many times FetchBars ran. Safe for concurrent use.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _ string, _ model.Interval, bars int) ([]model.PricePoint, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, bars), nil
}

func generateMockBars(basePrice float64, count int) []model.PricePoint {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PricePoint{
			Date:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
