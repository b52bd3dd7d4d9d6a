package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// AlphaVantageClient queries the NEWS_SENTIMENT endpoint for recent
// articles mentioning a ticker.
type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    "https://www.alphavantage.co/query",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// News returns up to limit recent headlines for the ticker query.
// Failures are logged and produce an empty result, never an error.
func (c *AlphaVantageClient) News(ctx context.Context, query string, limit int) []Headline {
	endpoint := fmt.Sprintf(
		"%s?function=NEWS_SENTIMENT&tickers=%s&limit=%d&sort=LATEST&apikey=%s",
		c.baseURL, url.QueryEscape(query), limit, c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error("news search request", "query", query, "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("news search fetch", "query", query, "error", err)
		return nil
	}
	defer resp.Body.Close()

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		slog.Error("news search decode", "query", query, "error", err)
		return nil
	}

	headlines := make([]Headline, 0, limit)
	for _, item := range raw.Feed {
		if len(headlines) >= limit {
			break
		}
		headlines = append(headlines, Headline{
			Title:   item.Title,
			Snippet: item.Summary,
		})
	}
	return headlines
}

type avResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}
