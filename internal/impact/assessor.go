package impact

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/llm"
)

const summarySignalLimit = 5

// SummaryGenerator is the subset of llm.SummaryGenerator the assessor
// needs, defined locally so this package does not depend on llm's
// concrete types for testing.
type SummaryGenerator interface {
	Generate(ctx context.Context, theme, country, sector, direction string, signals []llm.SummaryInput) (string, bool)
}

// Assessor implements SPEC_FULL.md §4.9: group signals by theme match,
// score each group, and roll the groups up into an AggregateImpact.
type Assessor struct {
	summarizer SummaryGenerator
}

// NewAssessor creates an impact assessor. summarizer may be nil, in which
// case every theme falls back to the deterministic one-liner.
func NewAssessor(summarizer SummaryGenerator) *Assessor {
	return &Assessor{summarizer: summarizer}
}

// Assess groups signals by ThemeMatch (signals without a theme match, or
// matching a theme not in themes, are dropped) and produces one
// ThemeImpact per entry of themes, plus the rolled-up AggregateImpact. A
// theme with no signals gets a neutral impact with magnitude 0 and
// confidence 0.1.
func (a *Assessor) Assess(ctx context.Context, country, sector string, themes []domain.ThemeRelevance,
	signals []domain.IntelligenceSignal) domain.AggregateImpact {

	groups := make(map[string][]domain.IntelligenceSignal)
	for _, sig := range signals {
		if sig.ThemeMatch == "" {
			continue
		}
		groups[sig.ThemeMatch] = append(groups[sig.ThemeMatch], sig)
	}

	impacts := make([]domain.ThemeImpact, 0, len(themes))
	for _, t := range themes {
		group := groups[t.Theme]
		if len(group) == 0 {
			impacts = append(impacts, domain.ThemeImpact{
				Theme:      t.Theme,
				Direction:  domain.DirectionNeutral,
				Magnitude:  0,
				Confidence: 0.1,
				Reasoning:  "No recent signals found for this theme",
			})
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].RelevanceScore > group[j].RelevanceScore })
		impacts = append(impacts, a.assessTheme(ctx, t.Theme, country, sector, t.RelevanceScore, group))
	}

	return aggregate(impacts)
}

func (a *Assessor) assessTheme(ctx context.Context, theme, country, sector string, themeRelevance float64,
	signals []domain.IntelligenceSignal) domain.ThemeImpact {

	negCount, posCount := 0, 0
	for _, sig := range signals {
		negative, positive := classifySignalText(sig.Title + " " + sig.Summary)
		switch {
		case negative && !positive:
			negCount++
		case positive && !negative:
			posCount++
		}
	}
	total := len(signals)

	direction := directionFromCounts(negCount, posCount, total)

	dominant := negCount
	if posCount > dominant {
		dominant = posCount
	}
	magnitude := 0.0
	if total > 0 {
		magnitude = (float64(dominant) / float64(total)) * themeRelevance
	}
	magnitude = clamp01(magnitude + themeAdjustment(theme, negCount, posCount))

	confidence := clamp01(float64(len(signals))/10*0.5 + themeRelevance*0.5)

	summary := a.generateSummary(ctx, theme, country, sector, direction, signals, len(signals))

	return domain.ThemeImpact{
		Theme:       theme,
		Direction:   direction,
		Magnitude:   magnitude,
		Confidence:  confidence,
		SignalCount: len(signals),
		Summary:     summary,
	}
}

func (a *Assessor) generateSummary(ctx context.Context, theme, country, sector string, direction domain.Direction,
	signals []domain.IntelligenceSignal, signalCount int) string {

	if a.summarizer == nil {
		return deterministicSummary(theme, direction, signalCount)
	}

	limit := signals
	if len(limit) > summarySignalLimit {
		limit = limit[:summarySignalLimit]
	}
	inputs := make([]llm.SummaryInput, len(limit))
	for i, sig := range limit {
		inputs[i] = llm.SummaryInput{Title: sig.Title, Summary: sig.Summary}
	}

	text, ok := a.summarizer.Generate(ctx, theme, country, sector, string(direction), inputs)
	if !ok {
		return deterministicSummary(theme, direction, signalCount)
	}
	return text
}

// aggregate rolls up every ThemeImpact into one AggregateImpact, per
// SPEC_FULL.md §4.9's weighted-sum and overallConfidence formulas.
func aggregate(impacts []domain.ThemeImpact) domain.AggregateImpact {
	if len(impacts) == 0 {
		return domain.AggregateImpact{OverallDirection: domain.DirectionNeutral, ThemeImpacts: nil}
	}

	var negSum, posSum, totalSum float64
	confidences := make([]float64, len(impacts))
	totalSignals := 0
	for i, imp := range impacts {
		weight := imp.Magnitude * imp.Confidence
		switch imp.Direction {
		case domain.DirectionNegative:
			negSum += weight
		case domain.DirectionPositive:
			posSum += weight
		}
		totalSum += weight
		confidences[i] = imp.Confidence
		totalSignals += imp.SignalCount
	}

	direction := domain.DirectionNeutral
	if totalSum > 0 {
		if negSum > posSum && negSum > 0.4*totalSum {
			direction = domain.DirectionNegative
		} else if posSum > negSum && posSum > 0.4*totalSum {
			direction = domain.DirectionPositive
		}
	}

	overallMagnitude := 0.0
	switch direction {
	case domain.DirectionNegative:
		overallMagnitude = negSum
	case domain.DirectionPositive:
		overallMagnitude = posSum
	}

	meanConfidence := stat.Mean(confidences, nil)
	volumeTerm := float64(totalSignals) / 20
	if volumeTerm > 1 {
		volumeTerm = 1
	}
	overallConfidence := clamp01(meanConfidence*0.7 + volumeTerm*0.3)

	return domain.AggregateImpact{
		OverallDirection:  direction,
		OverallMagnitude:  clamp01(overallMagnitude),
		OverallConfidence: overallConfidence,
		ThemeImpacts:      impacts,
		TotalSignals:      totalSignals,
	}
}
