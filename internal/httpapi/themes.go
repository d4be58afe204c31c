package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/georisk/internal/domain"
)

// HandleGetThemes handles GET /api/georisk/themes: returns the active
// theme catalog (persisted, falling back to the built-in defaults).
func (h *Handler) HandleGetThemes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.ListActiveThemes())
}

// HandleUpdateThemes handles PUT /api/georisk/themes: upserts each posted
// theme by name (stored themes not in the body are left as they are),
// seeding from defaults first if the store is currently empty (so a
// partial PUT on a fresh install still has the built-ins to fall back to
// on read).
func (h *Handler) HandleUpdateThemes(w http.ResponseWriter, r *http.Request) {
	var themes []domain.ThemeDefinition
	if err := json.NewDecoder(r.Body).Decode(&themes); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalogRepo.Seed(); err != nil {
		h.log.Error().Err(err).Msg("failed to seed theme catalog")
		h.writeError(w, http.StatusInternalServerError, "failed to persist themes")
		return
	}

	for _, theme := range themes {
		if err := h.catalogRepo.Put(theme); err != nil {
			h.log.Error().Err(err).Str("theme", theme.Name).Msg("failed to persist theme")
			h.writeError(w, http.StatusInternalServerError, "failed to persist themes")
			return
		}
	}

	h.writeJSON(w, http.StatusOK, h.catalog.ListActiveThemes())
}
