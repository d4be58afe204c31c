package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/pipeline"
)

func scanIDParam(r *http.Request) string {
	return chi.URLParam(r, "scanID")
}

// scanRequest is the decoded body of POST /api/georisk/scan.
type scanRequest struct {
	Holding       domain.Holding       `json:"holding"`
	RiskTolerance domain.RiskTolerance `json:"riskTolerance"`
	LookbackDays  int                  `json:"lookbackDays"`
}

// HandleScan handles POST /api/georisk/scan: runs the full batch pipeline
// and returns the detailed result.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RiskTolerance == "" {
		req.RiskTolerance = domain.RiskToleranceMedium
	}

	result, err := h.orchestrator.RunPipeline(r.Context(), req.Holding, req.RiskTolerance, req.LookbackDays)
	if err != nil {
		var inputErr *pipeline.InputError
		if errors.As(err, &inputErr) {
			h.writeError(w, http.StatusBadRequest, inputErr.Error())
			return
		}
		h.log.Error().Err(err).Msg("scan failed")
		h.writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	if h.scans != nil {
		if err := h.scans.Put(result); err != nil {
			h.log.Warn().Err(err).Str("scan_id", result.ScanID).Msg("failed to persist scan for later lookup")
		}
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetScan handles GET /api/georisk/scans/{scanID}: returns a
// previously computed scan result.
func (h *Handler) HandleGetScan(w http.ResponseWriter, r *http.Request) {
	scanID := scanIDParam(r)
	if scanID == "" {
		h.writeError(w, http.StatusBadRequest, "scan id is required")
		return
	}

	result, ok, err := h.scans.Get(scanID)
	if err != nil {
		h.log.Error().Err(err).Str("scan_id", scanID).Msg("failed to read scan")
		h.writeError(w, http.StatusInternalServerError, "failed to read scan")
		return
	}
	if !ok {
		h.writeError(w, http.StatusNotFound, "scan not found")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
