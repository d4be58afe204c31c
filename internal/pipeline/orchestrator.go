package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/georisk/internal/characterize"
	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/impact"
	"github.com/aristath/georisk/internal/probability"
	"github.com/aristath/georisk/internal/retriever"
	"github.com/aristath/georisk/internal/thememapper"
)

const defaultLookbackDays = 90

// Orchestrator wires the five pipeline stages over one request's worth of
// collaborators, per SPEC_FULL.md §4.11.
type Orchestrator struct {
	caches    *Caches
	retriever *retriever.Retriever
	assessor  *impact.Assessor
	archiver  Archiver
	log       zerolog.Logger
}

// Archiver uploads a completed scan for later retrieval. A nil Archiver
// disables archival entirely.
type Archiver interface {
	Archive(ctx context.Context, result domain.DetailedResult) error
}

// NewOrchestrator wires an orchestrator. archiver may be nil.
func NewOrchestrator(caches *Caches, r *retriever.Retriever, assessor *impact.Assessor, archiver Archiver, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		caches:    caches,
		retriever: r,
		assessor:  assessor,
		archiver:  archiver,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// RunPipeline runs stages 1-5 for holding and returns the full
// DetailedResult. lookbackDays defaults to defaultLookbackDays when <= 0.
func (o *Orchestrator) RunPipeline(ctx context.Context, holding domain.Holding, tolerance domain.RiskTolerance, lookbackDays int) (domain.DetailedResult, error) {
	if err := validateHolding(holding); err != nil {
		return domain.DetailedResult{}, err
	}
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	cfg := o.caches.Settings.Active()
	cfg.LookbackDays = lookbackDays

	profile := characterize.Characterize(holding)
	themes := thememapper.Map(profile, o.caches.Catalog.ListActiveThemes())

	retrieval := o.retriever.Retrieve(ctx, profile, themes, cfg)

	aggImpact := o.assessor.Assess(ctx, profile.Country, profile.Sector, themes, retrieval.Signals)
	probabilities := probability.Synthesize(aggImpact, tolerance)

	result := domain.DetailedResult{
		ScanID:        uuid.NewString(),
		Holding:       holding,
		RiskTolerance: tolerance,
		LookbackDays:  lookbackDays,
		Profile:       profile,
		Themes:        themes,
		Signals:       retrieval.Signals,
		WebSearches:   retrieval.WebSearches,
		Impact:        aggImpact,
		Probabilities: probabilities,
	}

	if o.archiver != nil {
		if err := o.archiver.Archive(ctx, result); err != nil {
			o.log.Warn().Err(err).Str("scan_id", result.ScanID).Msg("scan archival failed; result is still returned")
		}
	}

	return result, nil
}
