package calculator

import (
	"math"
	"sort"

	"StockAnalyzer/internal/model"
)

// CleanSeries drops unusable points, sorts the rest ascending by date and keeps
// the last occurrence of any duplicated calendar date. The input is not modified.
func CleanSeries(points []model.PricePoint) []model.PricePoint {
	byDay := make(map[string]int, len(points))
	out := make([]model.PricePoint, 0, len(points))
	for _, p := range points {
		if !validPoint(p) {
			continue
		}
		key := p.Date.Format("2006-01-02")
		if idx, ok := byDay[key]; ok {
			out[idx] = p
			continue
		}
		byDay[key] = len(out)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func validPoint(p model.PricePoint) bool {
	for _, v := range []float64{p.Open, p.High, p.Low, p.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return p.Volume >= 0 && p.High >= p.Low && !p.Date.IsZero()
}

// AggregateWeekly converts daily bars into ISO-week bars.
func AggregateWeekly(daily []model.PricePoint) []model.PricePoint {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.PricePoint
	week := daily[0]
	wy, ww := week.Date.ISOWeek()

	for _, d := range daily[1:] {
		y, w := d.Date.ISOWeek()
		if y != wy || w != ww {
			weekly = append(weekly, week)
			week = d
			wy, ww = y, w
			continue
		}
		if d.High > week.High {
			week.High = d.High
		}
		if d.Low < week.Low {
			week.Low = d.Low
		}
		week.Close = d.Close
		week.Volume += d.Volume
	}
	return append(weekly, week)
}

func minLen(lengths ...int) int {
	n := lengths[0]
	for _, l := range lengths[1:] {
		if l < n {
			n = l
		}
	}
	return n
}
