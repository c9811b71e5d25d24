package calculator

import (
	"time"

	"StockAnalyzer/internal/model"
)

const tolerance = 1e-6

// seriesFromCloses builds a daily series with a ±1 high/low band and constant volume.
func seriesFromCloses(closes []float64) *model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Interval: model.IntervalDaily, Points: points}
}

func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func constant(n int, v float64) []float64 {
	return linear(n, v, 0)
}

func offset(values []float64, d float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v + d
	}
	return out
}

func flatVolumes(n int, v int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// zigzag oscillates around base so that both gains and losses occur.
func zigzag(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		switch i % 4 {
		case 0:
			out[i] = base
		case 1:
			out[i] = base + 3
		case 2:
			out[i] = base + 1
		case 3:
			out[i] = base + 4
		}
		base += 0.5
	}
	return out
}
