// Package search retrieves recent news snippets for prompt context.
// Providers never return an error: a failed lookup is an empty result,
// so callers can splice the output into a prompt without special
// handling.
package search

import (
	"context"
	"strings"
)

type Headline struct {
	Title   string
	Snippet string
}

type Provider interface {
	News(ctx context.Context, query string, limit int) []Headline
}

// FormatHeadlines renders headlines for inclusion in a prompt.
func FormatHeadlines(headlines []Headline) string {
	if len(headlines) == 0 {
		return "No recent news found."
	}

	parts := make([]string, len(headlines))
	for i, h := range headlines {
		parts[i] = "Title: " + h.Title + "\nSnippet: " + h.Snippet
	}
	return strings.Join(parts, "\n\n")
}
