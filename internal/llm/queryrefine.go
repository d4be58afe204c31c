package llm

import (
	"context"
	"strings"
	"time"
)

const queryRefineTimeout = 5 * time.Second

var instructionPrefixes = []string{
	"query:", "search query:", "here is", "here's", "the query is", "refined query:",
}

// QueryRefiner rewrites a structured (locale, theme) pair into a short
// natural-language web search query, per SPEC_FULL.md §4.7. It is a pure
// adapter with a strict validator: callers always have a deterministic
// fallback ready and should use it when ok is false.
type QueryRefiner struct {
	client *Client
}

// NewQueryRefiner creates a query refiner over client.
func NewQueryRefiner(client *Client) *QueryRefiner {
	return &QueryRefiner{client: client}
}

// Refine asks the LLM to produce a short search query for locale/theme. It
// returns ok=false if the call failed or the result does not pass the
// strict validator (3-10 words, no instruction-style prefix).
func (r *QueryRefiner) Refine(ctx context.Context, locale, themeDisplayName string) (string, bool) {
	system := "Produce a short web search query (3 to 10 words, no punctuation commentary, no quotes) " +
		"for recent geopolitical or financial news about the given topic and place. Respond with ONLY the query text."
	user := "Place: " + locale + "\nTopic: " + themeDisplayName

	raw, err := r.client.complete(ctx, queryRefineTimeout, system, user)
	if err != nil {
		return "", false
	}

	cleaned := cleanup(raw)
	if !validQuery(cleaned) {
		return "", false
	}
	return cleaned, true
}

func cleanup(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'")
	lower := strings.ToLower(s)
	for _, prefix := range instructionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			s = strings.TrimPrefix(s, ":")
			s = strings.TrimSpace(s)
			break
		}
	}
	return s
}

func validQuery(s string) bool {
	if s == "" {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 3 || len(words) > 10 {
		return false
	}
	lower := strings.ToLower(s)
	for _, prefix := range instructionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}
