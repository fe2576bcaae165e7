package http

import (
	"net/http"

	"github.com/photark/albumsync/internal/utils"
)

// healthz is a liveness probe. Metadata store reachability is checked per
// run, not here: an unreachable store fails runs, not the process.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
