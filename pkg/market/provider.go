package market

import (
	"context"
	"time"
)

// Snapshot is the fundamental view of an instrument. A nil Snapshot
// means the ticker could not be resolved.
type Snapshot struct {
	Price    float64
	Currency string
	Sector   string
	Name     string
}

// Technicals are derived from daily candles. A nil Technicals means
// historical data were unavailable; callers render "N/A".
type Technicals struct {
	RSI   float64
	Trend string
	Price float64
}

type Candle struct {
	Time   time.Time
	Close  float64
	Volume float64
}

type Provider interface {
	Snapshot(ctx context.Context, ticker string) (*Snapshot, error)
	Technicals(ctx context.Context, ticker string) (*Technicals, error)
}
