package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/pipeline"
)

// HandleStream handles GET /api/georisk/stream: runs the pipeline and
// writes one JSON object per line as each stage completes, flushing after
// every event. Grounded on the teacher's unified SSE events stream
// (internal/server/events_stream.go) but framed as newline-delimited JSON
// rather than "data: " SSE frames, since this is a single bounded scan's
// progress rather than an indefinite multi-client event bus.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseStreamQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	events := h.orchestrator.RunPipelineStream(r.Context(), req.Holding, req.RiskTolerance, req.LookbackDays)
	for ev := range events {
		if err := encoder.Encode(ev); err != nil {
			h.log.Warn().Err(err).Msg("failed to encode stream event; client likely disconnected")
			return
		}
		flusher.Flush()

		if ev.StepID == pipeline.StepFinal && ev.Status == pipeline.StepStatusOK {
			h.persistStreamedResult(ev)
		}
	}
}

func (h *Handler) persistStreamedResult(ev pipeline.Event) {
	result, ok := ev.Data.(domain.DetailedResult)
	if !ok || h.scans == nil {
		return
	}
	if err := h.scans.Put(result); err != nil {
		h.log.Warn().Err(err).Str("scan_id", result.ScanID).Msg("failed to persist streamed scan for later lookup")
	}
}

type streamQuery struct {
	Holding       domain.Holding
	RiskTolerance domain.RiskTolerance
	LookbackDays  int
}

// parseStreamQuery decodes the scan request from the "request" query
// parameter, a JSON-encoded scanRequest. GET requests cannot carry a body
// reliably through every proxy, so the payload travels as a query string
// for the streaming endpoints.
func parseStreamQuery(r *http.Request) (streamQuery, error) {
	raw := r.URL.Query().Get("request")
	if raw == "" {
		return streamQuery{}, errMissingRequestParam
	}
	var req scanRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return streamQuery{}, errInvalidRequestParam
	}
	if req.RiskTolerance == "" {
		req.RiskTolerance = domain.RiskToleranceMedium
	}
	return streamQuery{Holding: req.Holding, RiskTolerance: req.RiskTolerance, LookbackDays: req.LookbackDays}, nil
}
