package llm

import "fmt"

// FinancePrompt is the fixed analyst persona and report skeleton used
// for the final generation pass. Bracketed slots are filled by the
// model from the context block.
const FinancePrompt = `You are Arbi, a Quantitative Financial AI.
**Report: [Company Name] ([Ticker])**

**1. Technicals:**
- Price: [Price]
- Trend: [Trend from data]
- RSI: [RSI from data]

**2. Sentiment:**
- News: [Synthesize the latest news. If the user asked about a specific event, focus on that. If no news found, state "No relevant news data available".]

**3. Verdict:**
[Logical conclusion. Answer the user's specific question directly here.]`

func extractionPrompt(query string) string {
	return fmt.Sprintf(`Analyze this user query: %q

Task: Extract the stock ticker symbol if a company is mentioned.

Output format (JSON only):
{"ticker": "AAPL" or null, "intent": "analysis" or "chat"}`, query)
}
