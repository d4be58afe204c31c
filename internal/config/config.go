// Package config provides configuration management functionality.
//
// This package handles loading configuration from environment variables (.env file).
// UpdateFromSettings reads the settings database afterwards, but the settings
// record carries no configuration fields, so no loaded value is overridden.
//
// Configuration Loading Order:
// 1. Load from .env file (if exists)
// 2. Load from environment variables
// 3. Read the settings database (overrides nothing; see UpdateFromSettings)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/georisk/internal/settings"
)

// WebSearchBackend selects which of the two web search backends
// internal/websearch.Adapter calls.
type WebSearchBackend string

const (
	WebSearchBackendTavily WebSearchBackend = "tavily"
	WebSearchBackendSerper WebSearchBackend = "serper"
)

// Config holds application configuration.
//
// Configuration is loaded from environment variables; UpdateFromSettings
// leaves every field as loaded.
type Config struct {
	DataDir  string // Base directory for all databases, always absolute
	Port     int    // HTTP server port
	DevMode  bool
	LogLevel string

	// LLM configuration: the model cascade internal/llm.Client tries in
	// order, and the endpoint/key it talks to.
	LLMEndpoint string
	LLMAPIKey   string
	LLMModels   []string // model cascade, first non-404 wins

	// Web search configuration.
	WebSearchAPI        WebSearchBackend
	WebSearchAPIKey     string
	MaxWebSearchThemes  int
	WebSearchMaxResults int
	UseLLMForQueries    bool

	// Optional S3 scan archive (internal/archive). ArchiveS3Bucket empty
	// disables archival entirely.
	ArchiveS3Bucket string
	ArchiveS3Region string

	// CorpusRefreshCron is the schedule internal/ingestion.Scheduler uses
	// for the corpus refresh job.
	CorpusRefreshCron string
}

// Load reads configuration from environment variables.
//
// This function:
// 1. Loads .env file if it exists (via godotenv)
// 2. Reads environment variables with defaults
// 3. Resolves data directory to absolute path
// 4. Creates data directory if it doesn't exist
// 5. Validates configuration
//
// Note: UpdateFromSettings is called after Load but overrides no field,
// so the environment values (or their defaults) stay in effect.
func Load(dataDirOverride ...string) (*Config, error) {
	_ = godotenv.Load()

	var dataDir string
	if len(dataDirOverride) > 0 && dataDirOverride[0] != "" {
		dataDir = dataDirOverride[0]
	} else {
		dataDir = getEnv("DATA_DIR", "")
		if dataDir == "" {
			dataDir = "./data"
		}
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		Port:     getEnvAsInt("PORT", 8001),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LLMEndpoint: getEnv("LLM_ENDPOINT", "http://localhost:11434"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModels:   getEnvAsList("LLM_MODELS", []string{"llama3.1", "mistral"}),

		WebSearchAPI:        WebSearchBackend(getEnv("WEB_SEARCH_API", string(WebSearchBackendTavily))),
		WebSearchAPIKey:     getEnv("WEB_SEARCH_API_KEY", ""),
		MaxWebSearchThemes:  getEnvAsInt("MAX_WEB_SEARCH_THEMES", 3),
		WebSearchMaxResults: getEnvAsInt("WEB_SEARCH_MAX_RESULTS", 5),
		UseLLMForQueries:    getEnvAsBool("USE_LLM_FOR_QUERIES", true),

		ArchiveS3Bucket: getEnv("ARCHIVE_S3_BUCKET", ""),
		ArchiveS3Region: getEnv("ARCHIVE_S3_REGION", ""),

		CorpusRefreshCron: getEnv("CORPUS_REFRESH_CRON", "*/15 * * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UpdateFromSettings reads the active "default" scoring settings record
// from the settings database. That record has no credential or other
// Config fields, so nothing in c is changed; the method only reports an
// error when the record cannot be read.
func (c *Config) UpdateFromSettings(settingsRepo *settings.Repository) error {
	active, err := settingsRepo.GetActiveDefault()
	if err != nil {
		return fmt.Errorf("failed to read scoring settings for config override: %w", err)
	}
	// ScoringSettings carries no credential fields itself; this hook
	// exists so a future settings record (e.g. one adding APIKey fields)
	// has somewhere to plug in without reshaping Load's call sites. Left
	// as a no-op until such a field exists.
	_ = active
	return nil
}

// Validate checks if required configuration is present. All fields here
// have usable defaults or are optional (archival, web search) so this
// currently always succeeds; it exists as the hook future required
// fields attach to.
func (c *Config) Validate() error {
	return nil
}

// ==========================================
// Helper Functions
// ==========================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable into a
// slice, trimming nothing fancy since model names never carry spaces.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			if i > start {
				out = append(out, value[start:i])
			}
			start = i + 1
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
