package http

import (
	"context"
	"net/http"

	"github.com/Ivanblancs/weave-sync/internal/logger"
	"github.com/Ivanblancs/weave-sync/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (h *Handler) queueCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	counts, err := h.engine.PendingCounts(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.queueCounts").Msg("error counting pending records")
		http.Error(w, "error counting pending records", http.StatusInternalServerError)
		return
	}

	response := make(map[string]int, len(counts))
	for kind, count := range counts {
		response[kind.String()] = count
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) triggerDrain(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	log.Info().Str("func", "*Handler.triggerDrain").Msg("manual drain requested")

	// The drain runs detached from the request: the handler only kicks it,
	// so the drain must survive the request context ending.
	go h.engine.SyncPending(context.WithoutCancel(r.Context()))

	utils.WriteJSON(w, map[string]string{"status": "drain started"}, http.StatusAccepted)
}
