// Package quant builds a volume-weighted price density surface from
// historical candles, served to the frontend as a plain grid for
// client-side 3D rendering.
package quant

import (
	"context"
	"log/slog"
	"math"

	"github.com/arbitrum1984/Arbitron-Systems/pkg/market"
)

const (
	gridSize   = 40
	minCandles = 30
)

type HistorySource interface {
	History(ctx context.Context, ticker string) ([]market.Candle, error)
}

// Surface is a serializable density grid: X is the day index axis, Y
// the price axis, Z the volume-weighted density at each (x, y) cell.
type Surface struct {
	Ticker string      `json:"ticker"`
	X      []float64   `json:"x"`
	Y      []float64   `json:"y"`
	Z      [][]float64 `json:"z"`
	Note   string      `json:"note,omitempty"`
}

type Engine struct {
	source HistorySource
}

func NewEngine(source HistorySource) *Engine {
	return &Engine{source: source}
}

// Build returns the density surface for the ticker. When history is
// missing or too short the surface degrades to an empty grid with an
// explanatory note so the client can render a graceful message.
func (e *Engine) Build(ctx context.Context, ticker string) *Surface {
	candles, err := e.source.History(ctx, ticker)
	if err != nil {
		slog.Error("surface history fetch failed", "ticker", ticker, "error", err)
		return &Surface{Ticker: ticker, Note: "Market data unavailable."}
	}
	if len(candles) < minCandles {
		return &Surface{Ticker: ticker, Note: "Insufficient historical data."}
	}

	n := len(candles)
	xs := make([]float64, n)
	ys := make([]float64, n)
	ws := make([]float64, n)

	var totalVolume float64
	minPrice, maxPrice := candles[0].Close, candles[0].Close
	for i, candle := range candles {
		xs[i] = float64(i)
		ys[i] = candle.Close
		ws[i] = candle.Volume
		totalVolume += candle.Volume
		minPrice = math.Min(minPrice, candle.Close)
		maxPrice = math.Max(maxPrice, candle.Close)
	}

	if totalVolume == 0 {
		// Some instruments report no volume; fall back to uniform weights.
		for i := range ws {
			ws[i] = 1
		}
		totalVolume = float64(n)
	}

	hx := bandwidth(xs)
	hy := bandwidth(ys)
	if hy == 0 {
		return &Surface{Ticker: ticker, Note: "Flat price series."}
	}

	surface := &Surface{
		Ticker: ticker,
		X:      gridAxis(0, float64(n-1)),
		Y:      gridAxis(minPrice, maxPrice),
		Z:      make([][]float64, gridSize),
	}

	for j := 0; j < gridSize; j++ {
		row := make([]float64, gridSize)
		for i := 0; i < gridSize; i++ {
			var density float64
			for k := 0; k < n; k++ {
				dx := (surface.X[i] - xs[k]) / hx
				dy := (surface.Y[j] - ys[k]) / hy
				density += (ws[k] / totalVolume) * math.Exp(-0.5*(dx*dx+dy*dy))
			}
			row[i] = density
		}
		surface.Z[j] = row
	}

	return surface
}

// bandwidth is Silverman's rule of thumb for a Gaussian kernel.
func bandwidth(values []float64) float64 {
	n := float64(len(values))

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= n

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / n)

	return 1.06 * std * math.Pow(n, -0.2)
}

func gridAxis(min, max float64) []float64 {
	axis := make([]float64, gridSize)
	step := (max - min) / float64(gridSize-1)
	for i := range axis {
		axis[i] = min + float64(i)*step
	}
	return axis
}
