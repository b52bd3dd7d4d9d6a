package intel

import "strings"

// Verdict is the outcome of keyword classification.
type Verdict int

const (
	Neutral Verdict = iota
	Signal
	Discard
)

func (v Verdict) String() string {
	switch v {
	case Signal:
		return "signal"
	case Discard:
		return "discard"
	default:
		return "neutral"
	}
}

// Classify runs a case-insensitive substring match of text against the
// two keyword lists. The block list always wins: a text matching both
// lists is Discard. Either list may be nil.
func Classify(text string, blockList, allowList []string) Verdict {
	upper := strings.ToUpper(text)

	for _, word := range blockList {
		if strings.Contains(upper, strings.ToUpper(word)) {
			return Discard
		}
	}
	for _, word := range allowList {
		if strings.Contains(upper, strings.ToUpper(word)) {
			return Signal
		}
	}
	return Neutral
}
