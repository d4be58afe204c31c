package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aristath/georisk/internal/cache"
)

// SemanticResult is the per-signal semantic analysis output, SPEC_FULL.md
// §6's LLM semantic-analysis JSON shape.
type SemanticResult struct {
	RelevanceScore float64  `json:"relevance_score"`
	ConfidenceScore float64 `json:"confidence_score"`
	MatchedThemes  []string `json:"matched_themes"`
	Reasoning      string   `json:"reasoning"`
}

const semanticTimeout = 20 * time.Second

// SemanticAdapter re-ranks individual signals by semantic relevance,
// caching results for 60 minutes keyed by MD5 of the signal+context.
type SemanticAdapter struct {
	client *Client
	cache  *cache.TTLCache[SemanticResult]
}

// NewSemanticAdapter creates a semantic adapter over client, using cache
// for its 60-minute TTL memoization.
func NewSemanticAdapter(client *Client, cache *cache.TTLCache[SemanticResult]) *SemanticAdapter {
	return &SemanticAdapter{client: client, cache: cache}
}

// Analyze returns the semantic relevance of (title, summary) to a holding
// in (country, sector) against the candidate themes. On any failure
// (timeout, malformed response) it returns the documented neutral
// fallback: relevance 0.5, confidence 0.5, not an error.
func (a *SemanticAdapter) Analyze(ctx context.Context, title, summary, country, sector string, themes []string) SemanticResult {
	key := cache.KeyFromParts(title, summary, country, sector, joinThemes(themes))
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}

	result := a.analyzeUncached(ctx, title, summary, country, sector, themes)
	a.cache.Set(key, result)
	return result
}

func (a *SemanticAdapter) analyzeUncached(ctx context.Context, title, summary, country, sector string, themes []string) SemanticResult {
	system := "You analyze whether a news signal is relevant to a financial holding's geopolitical risk. " +
		"Respond ONLY with JSON: {\"relevance_score\": 0-1, \"confidence_score\": 0-1, \"matched_themes\": [string], \"reasoning\": string}."
	user := "Holding country: " + country + "\nSector: " + sector + "\nCandidate themes: " + joinThemes(themes) +
		"\nSignal title: " + title + "\nSignal summary: " + summary

	raw, err := a.client.complete(ctx, semanticTimeout, system, user)
	if err != nil {
		return neutralSemanticFallback(err.Error())
	}

	var result SemanticResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &result); err != nil {
		return neutralSemanticFallback("unparsable semantic response: " + err.Error())
	}
	return result
}

func neutralSemanticFallback(reason string) SemanticResult {
	return SemanticResult{RelevanceScore: 0.5, ConfidenceScore: 0.5, Reasoning: reason}
}

func joinThemes(themes []string) string {
	out := ""
	for i, t := range themes {
		if i > 0 {
			out += ","
		}
		out += t
	}
	return out
}
