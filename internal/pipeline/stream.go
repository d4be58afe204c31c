package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aristath/georisk/internal/characterize"
	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/probability"
	"github.com/aristath/georisk/internal/retriever"
	"github.com/aristath/georisk/internal/thememapper"
)

// StepID identifies one of runPipelineStream's five ordered progress
// events, per SPEC_FULL.md §4.11.
type StepID string

const (
	StepCharacterization     StepID = "characterization"
	StepThemeIdentification  StepID = "theme_identification"
	StepIntelligenceRetrieval StepID = "intelligence_retrieval"
	StepImpactAssessment     StepID = "impact_assessment"
	StepFinal                StepID = "final"
)

// StepStatus is the outcome of one streamed step.
type StepStatus string

const (
	StepStatusOK    StepStatus = "ok"
	StepStatusError StepStatus = "error"
)

// Event is one progress update yielded by RunPipelineStream, serializable
// as a JSON line or a websocket text frame.
type Event struct {
	StepID     StepID      `json:"stepId"`
	StepName   string      `json:"stepName"`
	Status     StepStatus  `json:"status"`
	DurationMs int64       `json:"durationMs"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// RunPipelineStream runs the same five stages as RunPipeline but yields
// one Event per stage on the returned channel, closing it when the
// pipeline finishes or a stage fails. A cancelled ctx stops the stream
// with no further events. Any stage-level uncaught exception is reported
// as a single error event that terminates the stream; every other
// failure class is absorbed per §7 and never reaches this channel.
func (o *Orchestrator) RunPipelineStream(ctx context.Context, holding domain.Holding, tolerance domain.RiskTolerance, lookbackDays int) <-chan Event {
	events := make(chan Event, 5)

	go func() {
		defer close(events)

		if err := validateHolding(holding); err != nil {
			o.emit(ctx, events, Event{StepID: StepCharacterization, StepName: "Characterization", Status: StepStatusError, Error: err.Error()})
			return
		}
		if lookbackDays <= 0 {
			lookbackDays = defaultLookbackDays
		}

		cfg := o.caches.Settings.Active()
		cfg.LookbackDays = lookbackDays

		profile, ok := o.timedStep(ctx, events, StepCharacterization, "Characterization", func() (any, error) {
			return characterize.Characterize(holding), nil
		})
		if !ok {
			return
		}
		assetProfile := profile.(domain.AssetProfile)

		themesAny, ok := o.timedStep(ctx, events, StepThemeIdentification, "Theme identification", func() (any, error) {
			return thememapper.Map(assetProfile, o.caches.Catalog.ListActiveThemes()), nil
		})
		if !ok {
			return
		}
		themes := themesAny.([]domain.ThemeRelevance)

		retrievalAny, ok := o.timedStep(ctx, events, StepIntelligenceRetrieval, "Intelligence retrieval", func() (any, error) {
			return o.retriever.Retrieve(ctx, assetProfile, themes, cfg), nil
		})
		if !ok {
			return
		}
		retrieval := retrievalAny.(retriever.Result)

		impactAny, ok := o.timedStep(ctx, events, StepImpactAssessment, "Impact assessment", func() (any, error) {
			agg := o.assessor.Assess(ctx, assetProfile.Country, assetProfile.Sector, themes, retrieval.Signals)
			probs := probability.Synthesize(agg, tolerance)
			return stepImpactResult{Impact: agg, Probabilities: probs}, nil
		})
		if !ok {
			return
		}
		impactResult := impactAny.(stepImpactResult)

		result := domain.DetailedResult{
			ScanID:        uuid.NewString(),
			Holding:       holding,
			RiskTolerance: tolerance,
			LookbackDays:  lookbackDays,
			Profile:       assetProfile,
			Themes:        themes,
			Signals:       retrieval.Signals,
			WebSearches:   retrieval.WebSearches,
			Impact:        impactResult.Impact,
			Probabilities: impactResult.Probabilities,
		}

		if o.archiver != nil {
			if err := o.archiver.Archive(ctx, result); err != nil {
				o.log.Warn().Err(err).Str("scan_id", result.ScanID).Msg("scan archival failed; result is still returned")
			}
		}

		o.emit(ctx, events, Event{StepID: StepFinal, StepName: "Final", Status: StepStatusOK, Data: result})
	}()

	return events
}

type stepImpactResult struct {
	Impact        domain.AggregateImpact
	Probabilities domain.ActionProbabilities
}

func (o *Orchestrator) timedStep(ctx context.Context, events chan Event, id StepID, name string, fn func() (any, error)) (any, bool) {
	start := time.Now()
	data, err := func() (data any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("stage %s panicked: %v", id, r)
			}
		}()
		return fn()
	}()
	duration := time.Since(start).Milliseconds()

	if err != nil {
		o.emit(ctx, events, Event{StepID: id, StepName: name, Status: StepStatusError, DurationMs: duration, Error: err.Error()})
		return nil, false
	}
	return data, o.emit(ctx, events, Event{StepID: id, StepName: name, Status: StepStatusOK, DurationMs: duration, Data: data})
}

// emit sends ev on events unless ctx is already cancelled, in which case
// it drops the event and returns false so the caller stops the stream.
func (o *Orchestrator) emit(ctx context.Context, events chan Event, ev Event) bool {
	if ctx.Err() != nil {
		return false
	}
	events <- ev
	return true
}
