package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GarbageKeywords flag content to ignore as noise regardless of any
// signal match.
var GarbageKeywords = []string{
	"ACCIDENT", "CHILD", "KILLED", "INJURED", "DIED", "WATER TANKER",
	"DRIVER", "ARRESTED", "TRAGIC", "HIGH-SPEED",
}

// AlphaKeywords flag content that is potentially actionable intel.
var AlphaKeywords = []string{
	"SEIZED", "DETAINED", "SUPERTANKER", "BARREL", "SANCTION",
	"OFFSHORE", "PIPELINE", "STRAIT", "HORMUZ", "VENEZUELA",
	"IRAN", "GUYANA", "NAVY", "INTERCEPTED",
}

// SocialPolicy keeps items the classifier marks as Signal. The block
// list takes precedence, so a post matching both lists is dropped.
func SocialPolicy(it Item) bool {
	return Classify(it.Title, GarbageKeywords, AlphaKeywords) == Signal
}

func FormatSocialItem(it Item) string {
	return fmt.Sprintf("🚨 **INTEL:** %s\n🔗 [Source](%s)", it.Title, it.Link)
}

// SocialSource pulls recent posts from a configured Apify scraper task
// using the synchronous run endpoint, which returns dataset items
// directly.
type SocialSource struct {
	apiURL     string
	httpClient *http.Client
}

func NewSocialSource(token, taskID string) *SocialSource {
	return &SocialSource{
		apiURL:     fmt.Sprintf("https://api.apify.com/v2/tasks/%s/run-sync-get-dataset-items?token=%s", taskID, token),
		httpClient: &http.Client{},
	}
}

func (s *SocialSource) Name() string {
	return "Social"
}

type socialPost struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (s *SocialSource) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("social fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("social fetch: unexpected status %d", resp.StatusCode)
	}

	var posts []socialPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("social decode: %w", err)
	}

	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, Item{
			Title:  p.Text,
			Link:   p.URL,
			Source: s.Name(),
		})
	}
	return items, nil
}
