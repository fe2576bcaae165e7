package http

import (
	"errors"
	"net/http"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/store"
	"github.com/photark/albumsync/internal/utils"
	"github.com/photark/albumsync/models"
)

// progressResponse mirrors the on-disk progress record: the run state plus
// a pre-computed percentage for dashboard consumers.
type progressResponse struct {
	models.RunState
	Percent float64 `json:"percent"`
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	state, err := h.services.Progress.Current(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoProgressRecord) {
			utils.WriteJSON(w, map[string]string{"error": "no synchronization run recorded yet"}, http.StatusNotFound)
			return
		}

		log.Err(err).Str("func", "*Handler.getProgress").Msg("error reading progress record")
		http.Error(w, "error reading progress record", statusFromError(err))
		return
	}

	utils.WriteJSON(w, progressResponse{RunState: state, Percent: state.Progress() * 100}, http.StatusOK)
}
