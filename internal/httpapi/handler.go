// Package httpapi exposes the geo-risk pipeline over HTTP, following the
// teacher's module-handler idiom: a small Handler struct holding its
// collaborators and a scoped logger, one method per endpoint, chi for
// routing. Grounded on internal/modules/settings/handlers and
// internal/modules/risk/handlers from the teacher.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/pipeline"
	"github.com/aristath/georisk/internal/scanstore"
	"github.com/aristath/georisk/internal/settings"
)

// Handler holds the collaborators every georisk HTTP endpoint needs.
type Handler struct {
	orchestrator *pipeline.Orchestrator
	settings     *settings.Provider
	settingsRepo *settings.Repository
	catalog      *catalog.Provider
	catalogRepo  *catalog.Repository
	scans        *scanstore.Store
	log          zerolog.Logger
}

// NewHandler creates a georisk HTTP handler over its collaborators.
func NewHandler(
	orchestrator *pipeline.Orchestrator,
	settingsProvider *settings.Provider,
	settingsRepo *settings.Repository,
	catalogProvider *catalog.Provider,
	catalogRepo *catalog.Repository,
	scans *scanstore.Store,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		settings:     settingsProvider,
		settingsRepo: settingsRepo,
		catalog:      catalogProvider,
		catalogRepo:  catalogRepo,
		scans:        scans,
		log:          log.With().Str("handler", "georisk").Logger(),
	}
}

// writeJSON encodes data as the response body, matching the teacher's
// risk-handler helper.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
