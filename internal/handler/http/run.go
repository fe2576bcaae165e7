package http

import (
	"errors"
	"net/http"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/service"
	"github.com/photark/albumsync/internal/utils"
)

func (h *Handler) triggerRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.Coordinator.TriggerRun(ctx); err != nil {
		if errors.Is(err, service.ErrAlreadyRunning) {
			log.Warn().Str("func", "*Handler.triggerRun").Msg("run requested while another run is active")
			utils.WriteJSON(w, map[string]string{"error": "a synchronization run is already active"}, http.StatusConflict)
			return
		}

		log.Err(err).Str("func", "*Handler.triggerRun").Msg("error starting synchronization run")
		http.Error(w, "error starting synchronization run", statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "started"}, http.StatusAccepted)
}
