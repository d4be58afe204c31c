// Package main is the entry point for the georisk analysis engine.
// It scores how geopolitical developments affect a given financial
// holding across the five-stage pipeline described in SPEC_FULL.md:
// characterization, theme identification, intelligence retrieval,
// impact assessment, and probability synthesis.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/georisk/internal/archive"
	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/config"
	"github.com/aristath/georisk/internal/corpus"
	"github.com/aristath/georisk/internal/database"
	"github.com/aristath/georisk/internal/httpapi"
	"github.com/aristath/georisk/internal/impact"
	"github.com/aristath/georisk/internal/ingestion"
	"github.com/aristath/georisk/internal/llm"
	"github.com/aristath/georisk/internal/pipeline"
	"github.com/aristath/georisk/internal/retriever"
	"github.com/aristath/georisk/internal/scanstore"
	"github.com/aristath/georisk/internal/settings"
	"github.com/aristath/georisk/internal/websearch"
	"github.com/aristath/georisk/pkg/logger"
)

// Fixed endpoints for the two pluggable web search backends (SPEC_FULL.md
// §6's Provider A / Provider B). Only the API key is configurable per
// environment.
const (
	researchBackendURL = "https://api.tavily.com/search"
	generalBackendURL  = "https://google.serper.dev/search"
)

func main() {
	// Load configuration first to get log level. Configuration is loaded
	// from environment variables (.env file) and can be updated later from
	// the settings database.
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	log.Info().Msg("starting georisk")

	db, err := database.New(database.Config{
		Path:    cfg.DataDir + "/georisk.db",
		Profile: database.ProfileStandard,
		Name:    "georisk",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	settingsRepo := settings.NewRepository(db.Conn(), log)
	catalogRepo := catalog.NewRepository(db.Conn(), log)
	corpusStore := corpus.NewStore(db.Conn(), log)
	scanStore := scanstore.NewStore(db.Conn(), log)

	if err := db.Migrate(settingsRepo, catalogRepo, corpusStore, scanStore); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	// UpdateFromSettings reads the settings database but overrides no
	// Config field, so the environment-derived values stay in effect.
	if err := cfg.UpdateFromSettings(settingsRepo); err != nil {
		log.Warn().Err(err).Msg("failed to update config from settings database, using environment variables")
	}

	settingsProvider := settings.NewProvider(settingsRepo, log)
	catalogProvider := catalog.NewProvider(catalogRepo, log)
	caches := pipeline.NewCaches(settingsProvider, catalogProvider)

	llmClient := llm.NewClient(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModels, log)
	semanticAdapter := llm.NewSemanticAdapter(llmClient, caches.Semantic)
	batchAdapter := llm.NewBatchValidationAdapter(llmClient, caches.Batch)
	summaryGenerator := llm.NewSummaryGenerator(llmClient)
	queryRefiner := llm.NewQueryRefiner(llmClient)

	var searchBackend websearch.Backend
	switch cfg.WebSearchAPI {
	case config.WebSearchBackendSerper:
		searchBackend = websearch.NewGeneralBackend(generalBackendURL, cfg.WebSearchAPIKey)
	default:
		searchBackend = websearch.NewResearchBackend(researchBackendURL, cfg.WebSearchAPIKey)
	}
	webAdapter := websearch.NewAdapter(searchBackend, queryRefiner, cfg.UseLLMForQueries, cfg.WebSearchMaxResults)

	r := retriever.NewRetriever(corpusStore, catalogProvider, semanticAdapter, batchAdapter, webAdapter, caches.Retriever, log)
	assessor := impact.NewAssessor(summaryGenerator)

	var archiver pipeline.Archiver
	if cfg.ArchiveS3Bucket != "" {
		uploader, err := archive.NewUploaderFromEnv(context.Background(), cfg.ArchiveS3Region)
		if err != nil {
			log.Error().Err(err).Msg("failed to build S3 uploader, scan archival disabled")
		} else {
			archiver = archive.NewS3Archiver(uploader, cfg.ArchiveS3Bucket, log)
			log.Info().Str("bucket", cfg.ArchiveS3Bucket).Msg("scan archival enabled")
		}
	}

	orchestrator := pipeline.NewOrchestrator(caches, r, assessor, archiver, log)

	handler := httpapi.NewHandler(orchestrator, settingsProvider, settingsRepo, catalogProvider, catalogRepo, scanStore, log)
	router := httpapi.NewRouter(handler, cfg.DevMode)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("server started")

	scheduler := ingestion.New(log)
	refreshJob := ingestion.NewCorpusRefreshJob(corpusStore, caches, log)
	if err := scheduler.AddJob(cfg.CorpusRefreshCron, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("failed to register corpus refresh job")
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
