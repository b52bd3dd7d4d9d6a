package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config collects every environment-sourced setting in one place so
// main can wire components explicitly instead of components reading
// ambient globals.
type Config struct {
	Port        string
	FrontendURL string

	OpenAIKey    string
	AnthropicKey string
	LLMProvider  string // "openai" (default) or "anthropic"

	FinnhubKey      string
	AlphaVantageKey string

	ApifyToken  string
	ApifyTaskID string
	RSSFeeds    []string

	SocialInterval time.Duration
	RSSInterval    time.Duration
	DedupCapacity  int
}

// Default feeds cover maritime logistics, energy markets, and defense.
// Google Alerts feeds added via RSS_FEEDS are treated as aggregator
// sources and filtered more strictly by the ingestion loop.
var defaultFeeds = []string{
	"https://gcaptain.com/feed/",
	"https://oilprice.com/rss/main",
	"https://www.defenseone.com/rss/all/",
}

func Load() Config {
	cfg := Config{
		Port:            envOr("PORT", "8080"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		LLMProvider:     envOr("LLM_PROVIDER", "openai"),
		FinnhubKey:      os.Getenv("FINNHUB_API_KEY"),
		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		ApifyToken:      os.Getenv("APIFY_API_KEY"),
		ApifyTaskID:     envOr("APIFY_TASK_ID", "arbitron/intel-watch"),
		RSSFeeds:        defaultFeeds,
		SocialInterval:  envDuration("SOCIAL_POLL_INTERVAL", 15*time.Minute),
		RSSInterval:     envDuration("RSS_POLL_INTERVAL", 5*time.Minute),
		DedupCapacity:   envInt("DEDUP_CAPACITY", 1000),
	}

	if raw := os.Getenv("RSS_FEEDS"); raw != "" {
		var feeds []string
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				feeds = append(feeds, f)
			}
		}
		if len(feeds) > 0 {
			cfg.RSSFeeds = feeds
		}
	}

	return cfg
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(name string, fallback time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
