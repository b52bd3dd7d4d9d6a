package market

import (
	"context"
	"math"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const (
	rsiPeriod = 14
	smaWindow = 200
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

// Snapshot combines the real-time quote with the company profile.
// Unknown or delisted tickers come back as an empty profile and a zero
// quote; both map to (nil, nil) so callers get a clean unavailable
// signal instead of a half-filled struct.
func (c *FinnhubClient) Snapshot(ctx context.Context, ticker string) (*Snapshot, error) {
	quote, _, err := c.client.Quote(ctx).Symbol(ticker).Execute()
	if err != nil {
		return nil, err
	}

	price := float64(quote.GetC())
	if price == 0 {
		return nil, nil
	}

	profile, _, err := c.client.CompanyProfile2(ctx).Symbol(ticker).Execute()
	if err != nil {
		return nil, err
	}
	if profile.GetTicker() == "" && profile.GetName() == "" {
		return nil, nil
	}

	currency := profile.GetCurrency()
	if currency == "" {
		currency = "USD"
	}

	sector := profile.GetFinnhubIndustry()
	if sector == "" {
		sector = "N/A"
	}

	return &Snapshot{
		Price:    math.Round(price*100) / 100,
		Currency: currency,
		Sector:   sector,
		Name:     profile.GetName(),
	}, nil
}

// Technicals derives a 14-period RSI and a 200-day SMA trend label
// from one year of daily candles.
func (c *FinnhubClient) Technicals(ctx context.Context, ticker string) (*Technicals, error) {
	candles, err := c.History(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(candles) < rsiPeriod+1 {
		return nil, nil
	}

	closes := make([]float64, len(candles))
	for i, candle := range candles {
		closes[i] = candle.Close
	}

	last := closes[len(closes)-1]
	return &Technicals{
		RSI:   math.Round(rsi(closes, rsiPeriod)*100) / 100,
		Trend: trendLabel(last, sma(closes, smaWindow)),
		Price: math.Round(last*100) / 100,
	}, nil
}

// History returns up to one year of daily candles in chronological
// order. An empty slice means no data for the symbol.
func (c *FinnhubClient) History(ctx context.Context, ticker string) ([]Candle, error) {
	now := time.Now()
	res, _, err := c.client.StockCandles(ctx).
		Symbol(ticker).
		Resolution("D").
		From(now.AddDate(-1, 0, 0).Unix()).
		To(now.Unix()).
		Execute()
	if err != nil {
		return nil, err
	}

	if res.GetS() != "ok" {
		return nil, nil
	}

	closes := res.GetC()
	volumes := res.GetV()
	stamps := res.GetT()

	candles := make([]Candle, 0, len(closes))
	for i := range closes {
		candle := Candle{Close: float64(closes[i])}
		if i < len(stamps) {
			candle.Time = time.Unix(stamps[i], 0)
		}
		if i < len(volumes) {
			candle.Volume = float64(volumes[i])
		}
		candles = append(candles, candle)
	}
	return candles, nil
}
