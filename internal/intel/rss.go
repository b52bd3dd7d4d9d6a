package intel

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// RSSAlphaKeywords gate items from aggregator feeds, which are far
// noisier than the curated trade press.
var RSSAlphaKeywords = []string{
	"TANKER", "SEIZED", "SANCTION", "HORMUZ", "PIPELINE", "EXPLOSION",
	"PENTAGON", "OPEC", "BARREL", "OFFSHORE", "INTERCEPT", "MISSILE",
}

// RSSPolicy keeps everything from trusted feeds. Aggregator items must
// match the allow list; this loop runs no block list.
func RSSPolicy(it Item) bool {
	if it.Trusted {
		return true
	}
	return Classify(it.Title, nil, RSSAlphaKeywords) == Signal
}

func FormatRSSItem(it Item) string {
	return fmt.Sprintf("📡 **RSS (%s):** %s\n🔗 [Read](%s)", it.Source, it.Title, it.Link)
}

// RSSSource wraps one feed URL. Feeds served by Google Alerts are
// aggregators, everything else counts as trusted trade press.
type RSSSource struct {
	url     string
	trusted bool
	parser  *gofeed.Parser
}

func NewRSSSource(url string) *RSSSource {
	return &RSSSource{
		url:     url,
		trusted: !strings.Contains(url, "google.com/alerts"),
		parser:  gofeed.NewParser(),
	}
}

func (s *RSSSource) Name() string {
	return s.url
}

func (s *RSSSource) Fetch(ctx context.Context) ([]Item, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	label := feed.Title
	if label == "" {
		label = "RSS Feed"
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}
		items = append(items, Item{
			Title:   entry.Title,
			Link:    entry.Link,
			Source:  label,
			Trusted: s.trusted,
		})
	}
	return items, nil
}
