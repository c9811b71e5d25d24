package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

const yahooFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1704326400, 1704153600, 1704240000, 1704412800],
      "indicators": {
        "quote": [{
          "open":   [102, 100, 101, null],
          "high":   [104, 101, 103, null],
          "low":    [101, 99, 100, null],
          "close":  [103, 100.5, 102, null],
          "volume": [3000, 1000, 2000, null]
        }]
      }
    }],
    "error": null
  }
}`

func newYahooTestServer(t *testing.T, status int, body string, gotPath *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotPath != nil {
			*gotPath = r.URL.String()
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooFetcher_FetchBars(t *testing.T) {
	var path string
	srv := newYahooTestServer(t, http.StatusOK, yahooFixture, &path)

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	bars, err := f.FetchBars(context.Background(), "SPX500", model.IntervalDaily, 300)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/%5EGSPC?interval=1d&range=2y", path)

	require.Len(t, bars, 3, "null bar must be skipped")
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 102.0, bars[1].Close)
	assert.Equal(t, 103.0, bars[2].Close)
	assert.Equal(t, int64(3000), bars[2].Volume)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestYahooFetcher_TrimsAndPicksWeeklyRange(t *testing.T) {
	var path string
	srv := newYahooTestServer(t, http.StatusOK, yahooFixture, &path)

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	bars, err := f.FetchBars(context.Background(), "AAPL", model.IntervalWeekly, 2)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/AAPL?interval=1wk&range=6mo", path)
	require.Len(t, bars, 2)
	assert.Equal(t, 103.0, bars[1].Close)
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"not found", http.StatusNotFound, `{}`, ErrInvalidSymbol},
		{"empty result", http.StatusOK, `{"chart":{"result":[]}}`, ErrNoData},
		{"server error", http.StatusInternalServerError, `oops`, nil},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newYahooTestServer(t, tt.status, tt.body, nil)
			f := NewYahooFetcher("")
			f.BaseURL = srv.URL

			_, err := f.FetchBars(context.Background(), "ZZZZ", model.IntervalDaily, 10)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}
