package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/georisk/internal/settings"
)

// HandleGetSettings handles GET /api/georisk/settings: returns the
// currently active scoring settings record.
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.settings.Active())
}

// HandleUpdateSettings handles PUT /api/georisk/settings: persists a new
// active scoring settings record and invalidates the memoized provider,
// following the same decode-validate-persist-invalidate shape as the
// teacher's settings handler, adapted from per-key updates to a
// whole-record replacement since §4.1's settings are a structured record
// rather than scalar key-value pairs.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update settings.ScoringSettings
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.Name == "" {
		update.Name = "default"
	}
	update.Active = true

	if err := h.settingsRepo.Put(update); err != nil {
		h.log.Error().Err(err).Msg("failed to persist scoring settings")
		h.writeError(w, http.StatusInternalServerError, "failed to persist settings")
		return
	}
	h.settings.Invalidate()

	h.writeJSON(w, http.StatusOK, update)
}
