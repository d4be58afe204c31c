// Package retriever implements the intelligence retriever orchestration
// described in SPEC_FULL.md §4.8: corpus scoring, optional semantic
// filtering, web fan-out, merge/dedup, optional batch validation, and
// truncation, all behind a 10-minute composite-key cache.
package retriever

import (
	"strings"
	"time"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/scoring"
	"github.com/aristath/georisk/internal/settings"
)

const snapshotSourceQuality = 0.8
const snapshotBaseMultiplier = 1.4

// bestThemeMatch scans haystack for every active theme's keywords and
// returns the theme with the highest match ratio weighted by its own
// relevance score among candidateThemes, or ("", 0) if nothing matches.
func bestThemeMatch(haystack string, candidateThemes []domain.ThemeRelevance, catalog map[string]domain.ThemeDefinition) (string, float64) {
	haystack = strings.ToLower(haystack)
	best, bestScore := "", 0.0

	for _, candidate := range candidateThemes {
		def, ok := catalog[candidate.Theme]
		if !ok || len(def.Keywords) == 0 {
			continue
		}
		matches := 0
		for _, kw := range def.Keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := (float64(matches) / float64(len(def.Keywords))) * candidate.RelevanceScore
		if score > bestScore {
			best, bestScore = candidate.Theme, score
		}
	}
	return best, bestScore
}

func baseRelevanceForItem(profile domain.AssetProfile, item domain.GlobalItem, cfg settings.BaseRelevanceScores) float64 {
	score := 0.0

	if profile.Country != "" {
		exact := false
		for _, c := range item.Countries {
			if c == profile.Country {
				exact = true
				break
			}
		}
		if exact {
			score += cfg.CountryExact
		} else {
			for _, c := range item.Countries {
				if strings.Contains(strings.ToLower(c), strings.ToLower(profile.Country)) {
					score += cfg.CountryPartial
					break
				}
			}
		}
	}
	if profile.Region != "" && strings.Contains(strings.ToLower(item.Topic), strings.ToLower(profile.Region)) {
		score += cfg.Region
	}
	if profile.Sector != "" && strings.Contains(strings.ToLower(item.Title+item.Summary), strings.ToLower(profile.Sector)) {
		score += cfg.Sector
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ScoreGlobalItems converts corpus global items into scored
// IntelligenceSignals (stage 3a, corpus half).
func ScoreGlobalItems(profile domain.AssetProfile, items []domain.GlobalItem, themes []domain.ThemeRelevance,
	catalog map[string]domain.ThemeDefinition, cfg settings.ScoringSettings) []domain.IntelligenceSignal {

	var out []domain.IntelligenceSignal
	for _, item := range items {
		base := baseRelevanceForItem(profile, item, cfg.BaseRelevance)
		themeMatch, themeScore := bestThemeMatch(item.Title+" "+item.Summary+" "+item.Topic, themes, catalog)
		recency := scoring.RecencyScore(item.PublishedAt, cfg.LookbackDays, cfg.DecayConstant, time.Now())
		sourceQuality := scoring.SourceQualityScore(item.SourceName, cfg.SourceScores)

		final := scoring.FinalScore(base, themeScore, recency, sourceQuality, 0, scoring.Weights{
			Base: cfg.Weights.Base, ThemeMatch: cfg.Weights.ThemeMatch, Recency: cfg.Weights.Recency,
			SourceQuality: cfg.Weights.SourceQuality, Activity: cfg.Weights.Activity,
		})

		threshold := cfg.Thresholds.RelevanceHigh
		if len(out) < 5 {
			threshold = cfg.Thresholds.RelevanceLow
		}
		if final < threshold {
			continue
		}

		out = append(out, domain.IntelligenceSignal{
			RawSignal: domain.RawSignal{
				Source: domain.SignalSourceCorpus, Title: item.Title, Summary: item.Summary,
				Topic: item.Topic, URL: item.URL, Country: profile.Country, PublishedAt: item.PublishedAt,
			},
			BaseRelevance: base, ThemeMatchScore: themeScore, RecencyScore: recency, SourceQuality: sourceQuality,
			ThemeMatch: themeMatch, RelevanceScore: final, ConfidenceMultiplier: 1.0,
		})
	}
	return out
}

// ScoreSnapshots converts country snapshot events into scored
// IntelligenceSignals (stage 3a, snapshot half).
func ScoreSnapshots(profile domain.AssetProfile, snaps []domain.CountrySnapshot, themes []domain.ThemeRelevance,
	catalog map[string]domain.ThemeDefinition, cfg settings.ScoringSettings) []domain.IntelligenceSignal {

	var out []domain.IntelligenceSignal
	for _, snap := range snaps {
		events := snap.Events
		if len(events) > cfg.MaxEventsPerSnapshot {
			events = preferThemeMatchingEvents(events, themes, catalog, cfg.MaxEventsPerSnapshot)
		}

		for _, ev := range events {
			themeMatch, themeScore := bestThemeMatch(ev.Title+" "+ev.Summary+" "+ev.Topic, themes, catalog)
			base := cfg.BaseRelevance.CountryExact * snapshotBaseMultiplier
			recency := scoring.RecencyScore(ev.UpdatedAt, cfg.LookbackDays, cfg.DecayConstant, time.Now())
			activity := scoring.ActivityLevelScore(snap.ActivityLevel, cfg.ActivityScores)

			final := scoring.FinalScore(base, themeScore, recency, snapshotSourceQuality, activity, scoring.Weights{
				Base: cfg.Weights.Base, ThemeMatch: cfg.Weights.ThemeMatch, Recency: cfg.Weights.Recency,
				SourceQuality: cfg.Weights.SourceQuality, Activity: cfg.Weights.Activity,
			})

			threshold := cfg.Thresholds.RelevanceHigh
			if len(out) < 5 {
				threshold = cfg.Thresholds.RelevanceLow
			}
			if final < threshold {
				continue
			}

			out = append(out, domain.IntelligenceSignal{
				RawSignal: domain.RawSignal{
					Source: domain.SignalSourceCorpus, Title: ev.Title, Summary: ev.Summary,
					Country: snap.Name, PublishedAt: ev.UpdatedAt, ActivityLevel: snap.ActivityLevel,
				},
				BaseRelevance: base, ThemeMatchScore: themeScore, RecencyScore: recency,
				SourceQuality: snapshotSourceQuality, ActivityLevelScore: activity,
				ThemeMatch: themeMatch, RelevanceScore: final, ConfidenceMultiplier: 1.0,
			})
		}
	}
	return out
}

func preferThemeMatchingEvents(events []domain.SnapshotEvent, themes []domain.ThemeRelevance,
	catalog map[string]domain.ThemeDefinition, limit int) []domain.SnapshotEvent {

	var matching, rest []domain.SnapshotEvent
	for _, ev := range events {
		if theme, score := bestThemeMatch(ev.Title+" "+ev.Summary, themes, catalog); theme != "" && score > 0 {
			matching = append(matching, ev)
		} else {
			rest = append(rest, ev)
		}
	}
	out := append(matching, rest...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
