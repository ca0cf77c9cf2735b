package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

func (h *Handler) createAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var adjustment models.InventoryAdjustment
	if err := json.NewDecoder(r.Body).Decode(&adjustment); err != nil {
		log.Err(err).Str("func", "*Handler.createAdjustment").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.Adjustments.CreateAdjustment(ctx, session, adjustment)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createAdjustment").Msg("error recording inventory adjustment")
		http.Error(w, "error recording inventory adjustment", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	adjustments, err := h.services.Adjustments.ListAdjustments(ctx, session)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listAdjustments").Msg("error listing inventory adjustments")
		http.Error(w, "error listing inventory adjustments", statusFromError(err))
		return
	}

	utils.WriteJSON(w, adjustments, http.StatusOK)
}
