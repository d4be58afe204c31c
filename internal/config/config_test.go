package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaultsWhenEnvUnset(t *testing.T) {
	dataDir := t.TempDir()
	cfg, err := Load(dataDir)
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, WebSearchBackendTavily, cfg.WebSearchAPI)
	assert.Equal(t, 3, cfg.MaxWebSearchThemes)
	assert.Equal(t, 5, cfg.WebSearchMaxResults)
	assert.True(t, cfg.UseLLMForQueries)
	assert.Equal(t, "*/15 * * * *", cfg.CorpusRefreshCron)
	assert.Empty(t, cfg.ArchiveS3Bucket)
}

func TestLoad_EnvVarsOverrideDefaults(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("WEB_SEARCH_API", "serper")
	t.Setenv("MAX_WEB_SEARCH_THEMES", "5")
	t.Setenv("LLM_MODELS", "model-a,model-b,model-c")
	t.Setenv("ARCHIVE_S3_BUCKET", "georisk-archive")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, WebSearchBackendSerper, cfg.WebSearchAPI)
	assert.Equal(t, 5, cfg.MaxWebSearchThemes)
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, cfg.LLMModels)
	assert.Equal(t, "georisk-archive", cfg.ArchiveS3Bucket)
}

func TestLoad_ResolvesDataDirToAbsolutePathAndCreatesIt(t *testing.T) {
	parent := t.TempDir()
	nested := parent + "/nested/data"

	cfg, err := Load(nested)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.DataDir))
	info, err := os.Stat(cfg.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
