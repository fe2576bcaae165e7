package http

import (
	"errors"
	"net/http"

	"github.com/photark/albumsync/internal/service"
	"github.com/photark/albumsync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrAlreadyRunning: http.StatusConflict,

	store.ErrNoProgressRecord:    http.StatusNotFound,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrMetadataUnavailable: http.StatusBadGateway,
	store.ErrSchemaUndetectable:  http.StatusBadGateway,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
