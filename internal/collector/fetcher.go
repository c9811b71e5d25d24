package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"StockAnalyzer/internal/model"
)

var (
	// ErrNoData is returned when a provider yields no usable bars.
	ErrNoData = errors.New("no usable price data")
	// ErrInvalidSymbol is returned for an empty or malformed symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrNoFetcher is returned by Collect on a collector built without a data source.
	ErrNoFetcher = errors.New("no market data fetcher configured")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchBars returns up to bars points of the given interval, ascending by date.
	FetchBars(ctx context.Context, symbol string, interval model.Interval, bars int) ([]model.PricePoint, error)
	Name() string
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

func trimBars(bars []model.PricePoint, n int) []model.PricePoint {
	if n > 0 && len(bars) > n {
		return bars[len(bars)-n:]
	}
	return bars
}
