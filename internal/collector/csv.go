package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// csvBar is one row of an exported price file.
type csvBar struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

var csvDateLayouts = []string{"2006-01-02", time.RFC3339, "2006/01/02", "01/02/2006"}

func (b *csvBar) toModel() (model.PricePoint, error) {
	date := strings.TrimSpace(b.Date)
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return model.PricePoint{
				Date:   t.UTC(),
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: int64(b.Volume),
			}, nil
		}
	}
	return model.PricePoint{}, fmt.Errorf("unrecognized date %q", b.Date)
}

// LoadCSV reads a date,open,high,low,close,volume file. Rows with unparseable dates are skipped.
func LoadCSV(path string) ([]model.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	var rows []*csvBar
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", filepath.Base(path), err)
	}

	points := make([]model.PricePoint, 0, len(rows))
	for _, r := range rows {
		p, err := r.toModel()
		if err != nil {
			continue
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// CSVFetcher implements Fetcher over a directory of <SYMBOL>.csv files.
type CSVFetcher struct {
	Dir string
}

// NewCSVFetcher creates a fetcher reading from dir.
func NewCSVFetcher(dir string) *CSVFetcher {
	return &CSVFetcher{Dir: dir}
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchBars(ctx context.Context, symbol string, interval model.Interval, bars int) ([]model.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(symbol, `/\`) || strings.Contains(symbol, "..") {
		return nil, fmt.Errorf("csv: %q: %w", symbol, ErrInvalidSymbol)
	}
	path := filepath.Join(f.Dir, symbol+".csv")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("csv: %s: %w", symbol, ErrInvalidSymbol)
	}

	points, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if interval == model.IntervalWeekly {
		points = calculator.AggregateWeekly(calculator.CleanSeries(points))
	}
	return trimBars(points, bars), nil
}
