package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

func (h *Handler) createSaleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var group models.SaleGroup
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		log.Err(err).Str("func", "*Handler.createSaleGroup").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.SaleGroups.CreateSaleGroup(ctx, session, group)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSaleGroup").Msg("error recording sale group")
		http.Error(w, "error recording sale group", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateSaleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	offlineID := chi.URLParam(r, "offlineId")

	var patch models.SaleGroup
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateSaleGroup").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.SaleGroups.UpdateSaleGroup(ctx, session, offlineID, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateSaleGroup").Msg("error updating sale group")
		http.Error(w, "error updating sale group", statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) listSaleGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	groups, err := h.services.SaleGroups.ListSaleGroups(ctx, session)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSaleGroups").Msg("error listing sale groups")
		http.Error(w, "error listing sale groups", statusFromError(err))
		return
	}

	utils.WriteJSON(w, groups, http.StatusOK)
}
