package websearch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/georisk/internal/domain"
)

const maxSnippetLength = 300

// Refiner is the subset of llm.QueryRefiner the adapter needs; defined
// here to keep websearch independent of the llm package's concrete types.
type Refiner interface {
	Refine(ctx context.Context, locale, themeDisplayName string) (string, bool)
}

// Adapter implements searchTheme(profile, theme, lookbackDays) from
// SPEC_FULL.md §4.7.
type Adapter struct {
	backend    Backend
	refiner    Refiner
	useLLM     bool
	maxResults int
}

// NewAdapter creates a web search adapter over backend, optionally using
// refiner for LLM-based query construction.
func NewAdapter(backend Backend, refiner Refiner, useLLM bool, maxResults int) *Adapter {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Adapter{backend: backend, refiner: refiner, useLLM: useLLM, maxResults: maxResults}
}

// BuildQuery constructs the search query for locale/theme, preferring an
// LLM-refined query and falling back to a deterministic construction.
func (a *Adapter) BuildQuery(ctx context.Context, locale, themeName, themeDisplayName string, lookbackDays int) string {
	if a.useLLM && a.refiner != nil {
		if query, ok := a.refiner.Refine(ctx, locale, themeDisplayName); ok {
			return query
		}
	}
	return deterministicQuery(locale, themeName, lookbackDays)
}

func deterministicQuery(locale, themeName string, lookbackDays int) string {
	parts := []string{}
	if locale != "" {
		parts = append(parts, locale)
	}
	parts = append(parts, strings.ReplaceAll(themeName, "_", " "), "financial markets")
	if lookbackDays <= 30 {
		parts = append(parts, strconv.Itoa(time.Now().Year()))
	}
	return strings.Join(parts, " ")
}

// SearchTheme runs the full stage-4.7 pipeline: query construction,
// backend call, low-quality filtering, and deduplication. On a backend
// failure it returns nil results, the query it built, and a wrapped error.
func (a *Adapter) SearchTheme(ctx context.Context, locale string, theme domain.ThemeDefinition, lookbackDays int) ([]RawResult, string, error) {
	query := a.BuildQuery(ctx, locale, theme.Name, theme.DisplayName, lookbackDays)

	results, err := a.backend.Search(ctx, query, a.maxResults)
	if err != nil {
		return nil, query, fmt.Errorf("web search failed for theme %s: %w", theme.Name, err)
	}

	filtered := make([]RawResult, 0, len(results))
	for _, r := range results {
		if len(r.Title) < 20 || len(r.Snippet) < 50 {
			continue
		}
		if IsLowQualitySource(r.URL) {
			continue
		}
		if len(r.Snippet) > maxSnippetLength {
			r.Snippet = r.Snippet[:maxSnippetLength]
		}
		filtered = append(filtered, r)
	}

	return DeduplicateByTitle(filtered), query, nil
}

// ToRawSignal converts a backend result into a domain.RawSignal tagged as
// web-sourced.
func ToRawSignal(r RawResult, country string) domain.RawSignal {
	return domain.RawSignal{
		Source:      domain.SignalSourceWeb,
		Title:       r.Title,
		Summary:     r.Snippet,
		URL:         r.URL,
		Country:     country,
		PublishedAt: r.PublishedAt,
	}
}
