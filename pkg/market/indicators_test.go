package market

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func rising(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func falling(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	return closes
}

func TestRSI_MonotonicUp(t *testing.T) {
	assert.Equal(t, 100.0, rsi(rising(30), 14))
}

func TestRSI_MonotonicDown(t *testing.T) {
	assert.Equal(t, 0.0, rsi(falling(30), 14))
}

func TestRSI_FlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}
	assert.Equal(t, 50.0, rsi(closes, 14))
}

func TestRSI_ShortSeries(t *testing.T) {
	assert.Equal(t, 50.0, rsi([]float64{1, 2, 3}, 14))
}

func TestRSI_Bounds(t *testing.T) {
	closes := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19}
	got := rsi(closes, 14)
	if got < 0 || got > 100 {
		t.Errorf("rsi out of bounds: %f", got)
	}
	if got <= 50 {
		t.Errorf("rsi should lean bullish on a net-rising series, got %f", got)
	}
}

func TestSMA(t *testing.T) {
	assert.Equal(t, 3.0, sma([]float64{1, 2, 3, 4, 5}, 5))
	assert.Equal(t, 4.5, sma([]float64{1, 2, 3, 4, 5}, 2))
	// Window longer than the series averages what there is.
	assert.Equal(t, 3.0, sma([]float64{1, 2, 3, 4, 5}, 200))
	assert.Equal(t, 0.0, sma(nil, 10))
}

func TestTrendLabel(t *testing.T) {
	assert.Equal(t, "Bullish (Uptrend)", trendLabel(110, 100))
	assert.Equal(t, "Bearish (Downtrend)", trendLabel(90, 100))
	assert.Equal(t, "Bearish (Downtrend)", trendLabel(100, 100))
}
