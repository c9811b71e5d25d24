package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PricePoint represents a single trading interval.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// priceDateLayouts are the accepted JSON date forms, most specific first.
var priceDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// UnmarshalJSON accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	type plain PricePoint
	aux := struct {
		Date string `json:"date"`
		*plain
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		p.Date = time.Time{}
		return nil
	}
	for _, layout := range priceDateLayouts {
		if t, err := time.Parse(layout, aux.Date); err == nil {
			p.Date = t
			return nil
		}
	}
	return fmt.Errorf("price point date %q: want RFC 3339 or YYYY-MM-DD", aux.Date)
}

// Interval is the bar granularity of a series.
type Interval string

const (
	IntervalDaily  Interval = "1d"
	IntervalWeekly Interval = "1wk"
)

// ParseInterval maps user input to an Interval, defaulting to daily.
func ParseInterval(s string) Interval {
	switch s {
	case "1wk", "1w", "weekly", "week":
		return IntervalWeekly
	default:
		return IntervalDaily
	}
}

// PriceSeries is an ascending sequence of price points for one symbol.
type PriceSeries struct {
	Symbol    string       `json:"symbol"`
	Interval  Interval     `json:"interval"`
	Points    []PricePoint `json:"points"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Last returns the most recent point and false if the series is empty.
func (s *PriceSeries) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Closes extracts the close prices.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Highs extracts the high prices.
func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.High
	}
	return out
}

// Lows extracts the low prices.
func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Low
	}
	return out
}

// Volumes extracts the traded volumes.
func (s *PriceSeries) Volumes() []int64 {
	out := make([]int64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Volume
	}
	return out
}
