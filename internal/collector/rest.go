package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// RESTFetcher implements Fetcher against a generic JSON bar API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bar API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchBars tries the native weekly endpoint first and falls back to aggregating daily bars.
func (f *RESTFetcher) FetchBars(ctx context.Context, symbol string, interval model.Interval, bars int) ([]model.PricePoint, error) {
	if interval != model.IntervalWeekly {
		return f.fetchBars(ctx, f.endpoint("daily", symbol, bars))
	}

	weekly, err := f.fetchBars(ctx, f.endpoint("weekly", symbol, bars))
	if err == nil {
		return weekly, nil
	}
	log.Warnf("weekly endpoint failed for %s, aggregating daily bars: %v", symbol, err)
	daily, dailyErr := f.fetchBars(ctx, f.endpoint("daily", symbol, bars*5))
	if dailyErr != nil {
		return nil, fmt.Errorf("weekly fetch failed: %w; daily fallback also failed: %w", err, dailyErr)
	}
	return trimBars(calculator.AggregateWeekly(calculator.CleanSeries(daily)), bars), nil
}

func (f *RESTFetcher) endpoint(kind, symbol string, limit int) string {
	return fmt.Sprintf("%s/api/v1/bars/%s?symbol=%s&limit=%d", f.BaseURL, kind, url.QueryEscape(symbol), limit)
}

func (f *RESTFetcher) fetchBars(ctx context.Context, endpoint string) ([]model.PricePoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.PricePoint, len(raw))
	for i, rb := range raw {
		bars[i] = model.PricePoint{
			Date:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: int64(rb.Volume),
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
