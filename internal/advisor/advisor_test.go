package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/internal/model"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/llm"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/market"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/search"

	"github.com/go-playground/assert/v2"
)

type fakeLLM struct {
	extraction    *llm.Extraction
	extractionErr error
	completion    string
	completionErr error
	lastPrompt    string
}

func (f *fakeLLM) ExtractIntent(ctx context.Context, query string) (*llm.Extraction, error) {
	return f.extraction, f.extractionErr
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.completion, f.completionErr
}

type fakeMarket struct {
	snapshot   *market.Snapshot
	technicals *market.Technicals
	err        error
}

func (f *fakeMarket) Snapshot(ctx context.Context, ticker string) (*market.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeMarket) Technicals(ctx context.Context, ticker string) (*market.Technicals, error) {
	return f.technicals, f.err
}

type fakeSearch struct {
	headlines []search.Headline
}

func (f *fakeSearch) News(ctx context.Context, query string, limit int) []search.Headline {
	return f.headlines
}

type recordingStore struct {
	sessions []string
	roles    []string
	contents []string
}

func (s *recordingStore) AddMessage(sessionID, role, content string) error {
	s.sessions = append(s.sessions, sessionID)
	s.roles = append(s.roles, role)
	s.contents = append(s.contents, content)
	return nil
}

func newTestEngine(l *fakeLLM, m *fakeMarket, s *fakeSearch, store Store) *Engine {
	e := New(l, m, s, store)
	e.now = func() time.Time { return time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestRespond_FullContext(t *testing.T) {
	llmClient := &fakeLLM{
		extraction: &llm.Extraction{Ticker: "AAPL", Intent: "analysis"},
		completion: "Apple looks fine.",
	}
	marketData := &fakeMarket{
		snapshot:   &market.Snapshot{Price: 190.5, Currency: "USD", Sector: "Technology"},
		technicals: &market.Technicals{RSI: 55.3, Trend: "Bullish (Uptrend)", Price: 190.5},
	}
	news := &fakeSearch{headlines: []search.Headline{{Title: "Apple ships", Snippet: "New device."}}}
	store := &recordingStore{}

	answer := newTestEngine(llmClient, marketData, news, store).Respond(context.Background(), "s1", "analyze apple")

	assert.Equal(t, "Apple looks fine.", answer.Text)
	assert.Equal(t, "AAPL", answer.Ticker)

	if !strings.Contains(llmClient.lastPrompt, "Ticker: AAPL") {
		t.Errorf("prompt missing ticker section: %s", llmClient.lastPrompt)
	}
	if !strings.Contains(llmClient.lastPrompt, "RSI (14): 55.30") {
		t.Errorf("prompt missing RSI section: %s", llmClient.lastPrompt)
	}
	if !strings.Contains(llmClient.lastPrompt, "Title: Apple ships") {
		t.Errorf("prompt missing news section: %s", llmClient.lastPrompt)
	}
	if !strings.Contains(llmClient.lastPrompt, "USER QUERY: analyze apple") {
		t.Errorf("prompt missing verbatim user query: %s", llmClient.lastPrompt)
	}
}

func TestRespond_SnapshotUnavailable_AllOrNothing(t *testing.T) {
	llmClient := &fakeLLM{
		extraction: &llm.Extraction{Ticker: "ZZZZ"},
		completion: "Cannot verify that instrument.",
	}
	// Technicals and news are present, but without a fundamental
	// snapshot the whole context collapses to the warning line.
	marketData := &fakeMarket{
		technicals: &market.Technicals{RSI: 70, Trend: "Bullish (Uptrend)"},
	}
	news := &fakeSearch{headlines: []search.Headline{{Title: "ZZZZ rumor", Snippet: "noise"}}}
	store := &recordingStore{}

	answer := newTestEngine(llmClient, marketData, news, store).Respond(context.Background(), "s1", "what about ZZZZ?")

	warning := "WARNING: Could not fetch real-time data for ZZZZ. It might be delisted or an unsupported instrument."
	if !strings.Contains(llmClient.lastPrompt, warning) {
		t.Errorf("prompt missing warning line: %s", llmClient.lastPrompt)
	}
	if strings.Contains(llmClient.lastPrompt, "RSI (14)") {
		t.Errorf("technicals leaked into warning-only context: %s", llmClient.lastPrompt)
	}
	if strings.Contains(llmClient.lastPrompt, "ZZZZ rumor") {
		t.Errorf("news leaked into warning-only context: %s", llmClient.lastPrompt)
	}
	assert.Equal(t, "ZZZZ", answer.Ticker)
}

func TestRespond_ExtractionFailureNonFatal(t *testing.T) {
	llmClient := &fakeLLM{
		extractionErr: errors.New("model unavailable"),
		completion:    "General answer without market data.",
	}
	store := &recordingStore{}

	answer := newTestEngine(llmClient, &fakeMarket{}, &fakeSearch{}, store).Respond(context.Background(), "s1", "hello")

	assert.Equal(t, "General answer without market data.", answer.Text)
	assert.Equal(t, "", answer.Ticker)
	if strings.Contains(llmClient.lastPrompt, "LIVE MARKET DATA") {
		t.Errorf("context block present despite failed extraction: %s", llmClient.lastPrompt)
	}
}

func TestRespond_GenerationFailure(t *testing.T) {
	llmClient := &fakeLLM{
		extraction:    &llm.Extraction{Ticker: "AAPL"},
		completionErr: errors.New("quota exceeded"),
	}
	marketData := &fakeMarket{snapshot: &market.Snapshot{Price: 1, Currency: "USD", Sector: "Tech"}}
	store := &recordingStore{}

	answer := newTestEngine(llmClient, marketData, &fakeSearch{}, store).Respond(context.Background(), "s1", "analyze apple")

	assert.Equal(t, fallbackAnswer, answer.Text)
	// Generation failure clears the ticker in the output contract.
	assert.Equal(t, "", answer.Ticker)
}

func TestRespond_AlwaysAppendsPair(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeLLM
	}{
		{
			name: "generation succeeds",
			llm:  &fakeLLM{extraction: &llm.Extraction{}, completion: "hi"},
		},
		{
			name: "generation fails",
			llm:  &fakeLLM{extraction: &llm.Extraction{}, completionErr: errors.New("down")},
		},
		{
			name: "extraction fails",
			llm:  &fakeLLM{extractionErr: errors.New("down"), completion: "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			engine := newTestEngine(tt.llm, &fakeMarket{}, &fakeSearch{}, store)

			answer := engine.Respond(context.Background(), "s9", "a question")

			assert.Equal(t, 2, len(store.contents))
			assert.Equal(t, []string{"s9", "s9"}, store.sessions)
			assert.Equal(t, []string{model.RoleUser, model.RoleAssistant}, store.roles)
			assert.Equal(t, "a question", store.contents[0])
			assert.Equal(t, answer.Text, store.contents[1])
		})
	}
}

func TestRespond_TickerNormalized(t *testing.T) {
	llmClient := &fakeLLM{
		extraction: &llm.Extraction{Ticker: "  aapl "},
		completion: "ok",
	}
	marketData := &fakeMarket{snapshot: &market.Snapshot{Price: 1, Currency: "USD", Sector: "Tech"}}
	store := &recordingStore{}

	answer := newTestEngine(llmClient, marketData, &fakeSearch{}, store).Respond(context.Background(), "s1", "apple?")

	assert.Equal(t, "AAPL", answer.Ticker)
}

func TestRespond_TechnicalsUnavailableRendersNA(t *testing.T) {
	llmClient := &fakeLLM{
		extraction: &llm.Extraction{Ticker: "AAPL"},
		completion: "ok",
	}
	marketData := &fakeMarket{snapshot: &market.Snapshot{Price: 10, Currency: "USD", Sector: "Tech"}}
	store := &recordingStore{}

	newTestEngine(llmClient, marketData, &fakeSearch{}, store).Respond(context.Background(), "s1", "apple?")

	if !strings.Contains(llmClient.lastPrompt, "RSI (14): N/A") {
		t.Errorf("missing N/A fallback for technicals: %s", llmClient.lastPrompt)
	}
}
