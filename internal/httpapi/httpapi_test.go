package httpapi

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/corpus"
	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/impact"
	"github.com/aristath/georisk/internal/pipeline"
	"github.com/aristath/georisk/internal/retriever"
	"github.com/aristath/georisk/internal/scanstore"
	"github.com/aristath/georisk/internal/settings"
)

func newTestServer(t *testing.T) (http.Handler, *Handler) {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	settingsRepo := settings.NewRepository(db, zerolog.Nop())
	require.NoError(t, settingsRepo.EnsureSchema())
	settingsProvider := settings.NewProvider(settingsRepo, zerolog.Nop())

	catalogRepo := catalog.NewRepository(db, zerolog.Nop())
	require.NoError(t, catalogRepo.EnsureSchema())
	catalogProvider := catalog.NewProvider(catalogRepo, zerolog.Nop())

	corpusStore := corpus.NewStore(db, zerolog.Nop())
	require.NoError(t, corpusStore.EnsureSchema())

	scans := scanstore.NewStore(db, zerolog.Nop())
	require.NoError(t, scans.EnsureSchema())

	caches := pipeline.NewCaches(settingsProvider, catalogProvider)
	r := retriever.NewRetriever(corpusStore, catalogProvider, nil, nil, nil, caches.Retriever, zerolog.Nop())
	assessor := impact.NewAssessor(nil)
	orchestrator := pipeline.NewOrchestrator(caches, r, assessor, nil, zerolog.Nop())

	h := NewHandler(orchestrator, settingsProvider, settingsRepo, catalogProvider, catalogRepo, scans, zerolog.Nop())
	return NewRouter(h, true), h
}

func TestHandleScan_ReturnsDetailedResultForValidHolding(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"holding": domain.Holding{Name: "ACME Corp", Country: "Russia", Sector: "Energy"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/georisk/scan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.DetailedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.ScanID)
	assert.Equal(t, "ACME Corp", result.Holding.Name)
}

func TestHandleScan_RejectsHoldingWithoutNameOrLocation(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{"holding": domain.Holding{}})
	req := httptest.NewRequest(http.MethodPost, "/api/georisk/scan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetScan_ReturnsScanStoredByPriorHandleScan(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"holding": domain.Holding{Name: "ACME Corp", Country: "Russia", Sector: "Energy"},
	})
	postReq := httptest.NewRequest(http.MethodPost, "/api/georisk/scan", bytes.NewReader(body))
	postRec := httptest.NewRecorder()
	router.ServeHTTP(postRec, postReq)
	require.Equal(t, http.StatusOK, postRec.Code)

	var posted domain.DetailedResult
	require.NoError(t, json.Unmarshal(postRec.Body.Bytes(), &posted))

	getReq := httptest.NewRequest(http.MethodGet, "/api/georisk/scans/"+posted.ScanID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code)
	var fetched domain.DetailedResult
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fetched))
	assert.Equal(t, posted.ScanID, fetched.ScanID)
}

func TestHandleGetScan_ReturnsNotFoundForUnknownScanID(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/georisk/scans/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetSettings_ReturnsBuiltInDefaultsWhenNothingPersisted(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/georisk/settings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var s settings.ScoringSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "default", s.Name)
	assert.Equal(t, 90, s.LookbackDays)
}

func TestHandleUpdateSettings_PersistsAndInvalidatesProvider(t *testing.T) {
	router, h := newTestServer(t)

	updated := settings.Defaults()
	updated.LookbackDays = 42
	body, _ := json.Marshal(updated)

	req := httptest.NewRequest(http.MethodPut, "/api/georisk/settings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, h.settings.Active().LookbackDays)
}

func TestHandleGetThemes_ReturnsDefaultCatalogWhenStoreEmpty(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/georisk/themes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var themes []domain.ThemeDefinition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &themes))
	assert.NotEmpty(t, themes)
}
