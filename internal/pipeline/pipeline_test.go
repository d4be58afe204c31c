package pipeline

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/corpus"
	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/impact"
	"github.com/aristath/georisk/internal/retriever"
	"github.com/aristath/georisk/internal/settings"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	settingsRepo := settings.NewRepository(db, zerolog.Nop())
	require.NoError(t, settingsRepo.EnsureSchema())
	settingsProv := settings.NewProvider(settingsRepo, zerolog.Nop())

	catalogRepo := catalog.NewRepository(db, zerolog.Nop())
	require.NoError(t, catalogRepo.EnsureSchema())
	catalogProv := catalog.NewProvider(catalogRepo, zerolog.Nop())

	caches := NewCaches(settingsProv, catalogProv)

	corpusStore := corpus.NewStore(db, zerolog.Nop())
	require.NoError(t, corpusStore.EnsureSchema())

	r := retriever.NewRetriever(corpusStore, catalogProv, nil, nil, nil, caches.Retriever, zerolog.Nop())
	assessor := impact.NewAssessor(nil)

	return NewOrchestrator(caches, r, assessor, nil, zerolog.Nop())
}

func TestRunPipeline_ProducesNormalizedProbabilities(t *testing.T) {
	o := newTestOrchestrator(t)
	holding := domain.Holding{Name: "US Cash Fund", Country: "United States", Region: "Americas", Sector: "Cash", AssetClass: "Cash"}

	result, err := o.RunPipeline(context.Background(), holding, domain.RiskToleranceMedium, 90)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ScanID)
	sum := result.Probabilities.Negative + result.Probabilities.Neutral + result.Probabilities.Positive
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestRunPipeline_RejectsHoldingWithoutNameOrLocation(t *testing.T) {
	o := newTestOrchestrator(t)
	_, err := o.RunPipeline(context.Background(), domain.Holding{}, domain.RiskToleranceMedium, 90)
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestRunPipelineStream_YieldsFiveEventsInOrder(t *testing.T) {
	o := newTestOrchestrator(t)
	holding := domain.Holding{Name: "Russian Energy ETF", Country: "Russia", Region: "Europe", Sector: "Energy", AssetClass: "Equity"}

	var steps []StepID
	for ev := range o.RunPipelineStream(context.Background(), holding, domain.RiskToleranceMedium, 90) {
		steps = append(steps, ev.StepID)
		assert.Equal(t, StepStatusOK, ev.Status, ev.Error)
	}
	require.Len(t, steps, 5)
	assert.Equal(t, []StepID{
		StepCharacterization, StepThemeIdentification, StepIntelligenceRetrieval, StepImpactAssessment, StepFinal,
	}, steps)
}

func TestRunPipelineStream_StopsOnInvalidHolding(t *testing.T) {
	o := newTestOrchestrator(t)
	var steps []StepID
	for ev := range o.RunPipelineStream(context.Background(), domain.Holding{}, domain.RiskToleranceMedium, 90) {
		steps = append(steps, ev.StepID)
		assert.Equal(t, StepStatusError, ev.Status)
	}
	require.Len(t, steps, 1)
	assert.Equal(t, StepCharacterization, steps[0])
}

func TestRunPipelineStream_CancelledContextEmitsNoFurtherEvents(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	holding := domain.Holding{Name: "US Cash Fund", Country: "United States", Region: "Americas", Sector: "Cash"}
	count := 0
	for range o.RunPipelineStream(ctx, holding, domain.RiskToleranceMedium, 90) {
		count++
	}
	assert.Equal(t, 0, count)
}
