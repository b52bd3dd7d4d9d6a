package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Extraction is the structured result of the ticker/intent extraction
// pass. Ticker is empty when no instrument was mentioned.
type Extraction struct {
	Ticker string `json:"ticker"`
	Intent string `json:"intent"`
}

type Client interface {
	// ExtractIntent asks the model for a small JSON record naming the
	// ticker (if any) and a coarse intent label for the query.
	ExtractIntent(ctx context.Context, query string) (*Extraction, error)
	// Complete returns a free-text completion for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func parseExtraction(content string) (*Extraction, error) {
	var parsed Extraction
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w, content: %s", err, content)
	}
	return &parsed, nil
}
