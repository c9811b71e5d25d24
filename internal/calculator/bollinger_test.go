package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBollinger_Fallback(t *testing.T) {
	b := Bollinger([]float64{98, 100}, 20, 2)
	assert.InDelta(t, 105, b.Upper, tolerance)
	assert.InDelta(t, 100, b.Middle, tolerance)
	assert.InDelta(t, 95, b.Lower, tolerance)
	assert.InDelta(t, 10, b.WidthPercent, tolerance)
}

func TestBollinger_Empty(t *testing.T) {
	b := Bollinger(nil, 20, 2)
	assert.Zero(t, b.Upper)
	assert.Zero(t, b.Middle)
	assert.Zero(t, b.Lower)
}

func TestBollinger_KnownWindow(t *testing.T) {
	// 1..20: mean 10.5, population sd sqrt(33.25)
	sd := math.Sqrt(33.25)
	b := Bollinger(linear(20, 1, 1), 20, 2)
	assert.InDelta(t, 10.5, b.Middle, tolerance)
	assert.InDelta(t, 10.5+2*sd, b.Upper, tolerance)
	assert.InDelta(t, 10.5-2*sd, b.Lower, tolerance)
	assert.InDelta(t, 4*sd/10.5*100, b.WidthPercent, tolerance)
}

func TestBollinger_FlatSeries(t *testing.T) {
	b := Bollinger(constant(25, 50), 20, 2)
	assert.InDelta(t, 50, b.Upper, tolerance)
	assert.InDelta(t, 50, b.Lower, tolerance)
	assert.InDelta(t, 0, b.WidthPercent, tolerance)
}

func TestBollinger_BandsNeverCross(t *testing.T) {
	series := [][]float64{
		zigzag(50, 10),
		linear(30, 100, -2),
		constant(20, 7),
		{5},
		append(constant(19, 100), 150),
	}
	for i, prices := range series {
		b := Bollinger(prices, 20, 2)
		assert.GreaterOrEqual(t, b.Upper, b.Middle, "series %d", i)
		assert.GreaterOrEqual(t, b.Middle, b.Lower, "series %d", i)
	}
}
