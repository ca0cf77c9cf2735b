package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/service"
	"github.com/MKhiriev/go-pos-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrSyncPaused:     http.StatusConflict,
	service.ErrOffline:        http.StatusServiceUnavailable,
	service.ErrInvalidPayload: http.StatusBadRequest,

	store.ErrMissingStoreScope:  http.StatusBadRequest,
	store.ErrInvalidQueueItem:   http.StatusBadRequest,
	store.ErrDuplicateClientRef: http.StatusConflict,
	store.ErrQueueItemNotFound:  http.StatusNotFound,
	store.ErrSaleNotFound:       http.StatusNotFound,
	store.ErrSaleGroupNotFound:  http.StatusNotFound,
	store.ErrAdjustmentNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
