package llm

import (
	"context"
	"strings"
	"time"
)

const summaryTimeout = 20 * time.Second

// SummaryInput is the minimal signal context passed to the theme-summary
// generator.
type SummaryInput struct {
	Title   string
	Summary string
}

// SummaryGenerator produces a short explanation of a theme's impact for
// display. It is grounded on the same chat client as the other adapters
// but has no JSON contract — free text, with a deterministic fallback on
// failure per SPEC_FULL.md §4.9.
type SummaryGenerator struct {
	client *Client
}

// NewSummaryGenerator creates a summary generator over client.
func NewSummaryGenerator(client *Client) *SummaryGenerator {
	return &SummaryGenerator{client: client}
}

// Generate produces a 2-3 sentence explanation of why theme is having the
// given direction/magnitude effect on country/sector, given up to 5
// supporting signals. ok is false if the LLM call failed; callers should
// fall back to a deterministic one-liner.
func (g *SummaryGenerator) Generate(ctx context.Context, theme, country, sector, direction string, signals []SummaryInput) (string, bool) {
	system := "Explain in 2-3 sentences why this geopolitical theme is having the stated effect on this holding. " +
		"Be concrete and cite the supporting signals. Respond with plain text only."

	var sb strings.Builder
	sb.WriteString("Theme: " + theme + "\nCountry: " + country + "\nSector: " + sector + "\nDirection: " + direction + "\nSignals:\n")
	limit := signals
	if len(limit) > 5 {
		limit = limit[:5]
	}
	for _, s := range limit {
		sb.WriteString("- " + s.Title + ": " + s.Summary + "\n")
	}

	raw, err := g.client.complete(ctx, summaryTimeout, system, sb.String())
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	return text, true
}
