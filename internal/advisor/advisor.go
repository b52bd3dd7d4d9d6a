// Package advisor turns one user query into one assistant answer via a
// three-stage pipeline: ticker extraction, conditional market/news
// enrichment, and final generation. Every failure along the way
// degrades to a well-defined fallback; Respond never returns an error
// and never leaves a query without a stored user/assistant pair.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/internal/model"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/llm"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/market"
	"github.com/arbitrum1984/Arbitron-Systems/pkg/search"
)

const (
	// Generation and extraction calls share one bounded timeout so a
	// hanging upstream stalls only its own request.
	generationTimeout = 90 * time.Second

	newsLimit = 5

	fallbackAnswer = "System Error: the analysis engine is temporarily unavailable. Please try again."
)

type Store interface {
	AddMessage(sessionID, role, content string) error
}

// Answer is the pipeline output. Ticker is empty when no instrument
// was resolved or generation failed.
type Answer struct {
	Text   string
	Ticker string
}

type Engine struct {
	llm    llm.Client
	market market.Provider
	news   search.Provider
	store  Store
	now    func() time.Time
}

func New(llmClient llm.Client, marketData market.Provider, news search.Provider, store Store) *Engine {
	return &Engine{
		llm:    llmClient,
		market: marketData,
		news:   news,
		store:  store,
		now:    time.Now,
	}
}

// Respond runs the pipeline for one query. It appends exactly two
// messages to the session (user, then assistant), even when generation
// fails; store errors are logged and do not block the answer.
func (e *Engine) Respond(ctx context.Context, sessionID, query string) Answer {
	if err := e.store.AddMessage(sessionID, model.RoleUser, query); err != nil {
		slog.Error("error persisting user message", "session_id", sessionID, "error", err)
	}

	answer := e.pipeline(ctx, query)

	if err := e.store.AddMessage(sessionID, model.RoleAssistant, answer.Text); err != nil {
		slog.Error("error persisting assistant message", "session_id", sessionID, "error", err)
	}

	return answer
}

func (e *Engine) pipeline(ctx context.Context, query string) Answer {
	// Stage 1: extraction. Failure or unparseable output means we just
	// answer without market context.
	ticker := e.extractTicker(ctx, query)

	// Stage 2: enrichment, only when a ticker was detected.
	contextBlock := ""
	if ticker != "" {
		contextBlock = e.buildContext(ctx, ticker)
	}

	// Stage 3: final generation.
	prompt := fmt.Sprintf(
		"Current Date: %s\n\n%s\n\nCONTEXT DATA:\n%s\n\nUSER QUERY: %s",
		e.now().Format("2006-01-02 15:04"), llm.FinancePrompt, contextBlock, query,
	)

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	text, err := e.llm.Complete(genCtx, prompt)
	if err != nil {
		slog.Error("generation failed", "error", err)
		return Answer{Text: fallbackAnswer}
	}

	return Answer{Text: text, Ticker: ticker}
}

func (e *Engine) extractTicker(ctx context.Context, query string) string {
	extCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	extraction, err := e.llm.ExtractIntent(extCtx, query)
	if err != nil {
		slog.Warn("ticker extraction failed, proceeding without context", "error", err)
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(extraction.Ticker))
}

// buildContext gathers technicals, the fundamental snapshot, and
// recent news. The block is all-or-nothing: without a fundamental
// snapshot the technicals and news are discarded and a single warning
// line takes their place, so an unverified instrument is never
// presented as analyzable.
func (e *Engine) buildContext(ctx context.Context, ticker string) string {
	technicals, err := e.market.Technicals(ctx, ticker)
	if err != nil {
		slog.Warn("technicals unavailable", "ticker", ticker, "error", err)
		technicals = nil
	}

	snapshot, err := e.market.Snapshot(ctx, ticker)
	if err != nil {
		slog.Warn("snapshot unavailable", "ticker", ticker, "error", err)
		snapshot = nil
	}

	headlines := e.news.News(ctx, ticker, newsLimit)

	if snapshot == nil {
		return fmt.Sprintf(
			"WARNING: Could not fetch real-time data for %s. It might be delisted or an unsupported instrument.",
			ticker,
		)
	}

	rsiLine := "N/A"
	trendLine := "N/A"
	if technicals != nil {
		rsiLine = fmt.Sprintf("%.2f", technicals.RSI)
		trendLine = technicals.Trend
	}

	return fmt.Sprintf(`--- LIVE MARKET DATA ---
Date: %s
Ticker: %s
Current Price: %.2f %s
Sector: %s

--- TECHNICAL INDICATORS ---
RSI (14): %s
Trend (SMA200): %s

--- LATEST NEWS ---
%s`,
		e.now().Format("2006-01-02 15:04"),
		ticker,
		snapshot.Price, snapshot.Currency,
		snapshot.Sector,
		rsiLine,
		trendLine,
		search.FormatHeadlines(headlines),
	)
}
