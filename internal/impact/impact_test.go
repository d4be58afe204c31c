package impact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/llm"
)

func sig(theme, title, summary string, relevance float64) domain.IntelligenceSignal {
	return domain.IntelligenceSignal{
		RawSignal:      domain.RawSignal{Title: title, Summary: summary},
		ThemeMatch:     theme,
		RelevanceScore: relevance,
	}
}

func TestAssess_NegativeDirectionFromDominantPolarity(t *testing.T) {
	a := NewAssessor(nil)
	signals := []domain.IntelligenceSignal{
		sig("sanctions", "New sanctions imposed amid rising tension", "Conflict and embargo threats escalate.", 0.8),
		sig("sanctions", "Sanctions risk grows as dispute widens", "Restriction and instability spread.", 0.7),
	}
	themes := []domain.ThemeRelevance{{Theme: "sanctions", RelevanceScore: 0.9}}

	impact := a.Assess(context.Background(), "Russia", "Energy", themes, signals)
	require.Len(t, impact.ThemeImpacts, 1)
	assert.Equal(t, domain.DirectionNegative, impact.ThemeImpacts[0].Direction)
	assert.Equal(t, domain.DirectionNegative, impact.OverallDirection)
	assert.NotEmpty(t, impact.ThemeImpacts[0].Summary)
}

func TestAssess_DropsSignalsWithoutThemeMatch(t *testing.T) {
	a := NewAssessor(nil)
	signals := []domain.IntelligenceSignal{
		{RawSignal: domain.RawSignal{Title: "Unrelated", Summary: "No theme here"}, ThemeMatch: ""},
	}
	impact := a.Assess(context.Background(), "Russia", "Energy", nil, signals)
	assert.Empty(t, impact.ThemeImpacts)
	assert.Equal(t, domain.DirectionNeutral, impact.OverallDirection)
}

func TestAssess_SanctionsThemeGetsMagnitudeBonus(t *testing.T) {
	a := NewAssessor(nil)
	withSanctions := a.Assess(context.Background(), "Russia", "Energy",
		[]domain.ThemeRelevance{{Theme: "sanctions", RelevanceScore: 0.5}},
		[]domain.IntelligenceSignal{sig("sanctions", "Sanctions and conflict widen", "Tension grows.", 0.6)})
	withoutBonus := a.Assess(context.Background(), "Russia", "Energy",
		[]domain.ThemeRelevance{{Theme: "regulatory_changes", RelevanceScore: 0.5}},
		[]domain.IntelligenceSignal{sig("regulatory_changes", "Sanctions and conflict widen", "Tension grows.", 0.6)})

	require.Len(t, withSanctions.ThemeImpacts, 1)
	require.Len(t, withoutBonus.ThemeImpacts, 1)
	assert.Greater(t, withSanctions.ThemeImpacts[0].Magnitude, withoutBonus.ThemeImpacts[0].Magnitude)
}

type stubSummarizer struct {
	text string
	ok   bool
}

func (s stubSummarizer) Generate(ctx context.Context, theme, country, sector, direction string, signals []llm.SummaryInput) (string, bool) {
	return s.text, s.ok
}

func TestAssess_FallsBackToDeterministicSummaryWhenLLMUnavailable(t *testing.T) {
	a := NewAssessor(stubSummarizer{ok: false})
	signals := []domain.IntelligenceSignal{sig("sanctions", "Sanctions widen", "Conflict grows.", 0.6)}
	impact := a.Assess(context.Background(), "Russia", "Energy", []domain.ThemeRelevance{{Theme: "sanctions", RelevanceScore: 0.6}}, signals)
	require.Len(t, impact.ThemeImpacts, 1)
	assert.Contains(t, impact.ThemeImpacts[0].Summary, "sanctions")
}

func TestAssess_UsesLLMSummaryWhenAvailable(t *testing.T) {
	a := NewAssessor(stubSummarizer{text: "custom explanation", ok: true})
	signals := []domain.IntelligenceSignal{sig("sanctions", "Sanctions widen", "Conflict grows.", 0.6)}
	impact := a.Assess(context.Background(), "Russia", "Energy", []domain.ThemeRelevance{{Theme: "sanctions", RelevanceScore: 0.6}}, signals)
	require.Len(t, impact.ThemeImpacts, 1)
	assert.Equal(t, "custom explanation", impact.ThemeImpacts[0].Summary)
}

func TestDirectionFromCounts_DominanceRule(t *testing.T) {
	assert.Equal(t, domain.DirectionNegative, directionFromCounts(5, 1, 6))
	assert.Equal(t, domain.DirectionNeutral, directionFromCounts(2, 1, 6))
	assert.Equal(t, domain.DirectionNeutral, directionFromCounts(0, 0, 0))
}
