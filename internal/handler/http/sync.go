package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/service"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
)

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	status := h.services.Engine.Status(r.Context(), session.StoreID)

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) getQueueCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	count, err := h.services.Engine.QueueCount(ctx, session.StoreID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getQueueCount").Msg("error counting queue items")
		http.Error(w, "error counting queue items", statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]int{"count": count}, http.StatusOK)
}

func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.services.Engine.SyncAll(ctx, session.StoreID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyncPaused):
			log.Err(err).Msg("manual sync refused: engine is paused")
			http.Error(w, service.ErrSyncPaused.Error(), http.StatusConflict)
			return
		case errors.Is(err, service.ErrOffline):
			log.Err(err).Msg("manual sync refused: device is offline")
			http.Error(w, service.ErrOffline.Error(), http.StatusServiceUnavailable)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during manual sync")
			http.Error(w, "error running sync", statusFromError(err))
			return
		}
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) pauseSync(w http.ResponseWriter, r *http.Request) {
	h.services.Engine.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resumeSync(w http.ResponseWriter, r *http.Request) {
	h.services.Engine.Resume()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.Engine.ClearQueue(ctx, session.StoreID); err != nil {
		log.Err(err).Str("func", "*Handler.clearQueue").Msg("error clearing sync queue")
		http.Error(w, "error clearing sync queue", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
