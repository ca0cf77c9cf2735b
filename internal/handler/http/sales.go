package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

// sessionFromRequest extracts the identity session placed in the context by
// the auth middleware. A missing session means the route was wired without
// the middleware and is a server-side bug, not a client error.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, found := utils.GetSessionFromContext(r.Context())
	if !found {
		log := logger.FromRequest(r)
		log.Error().Str("func", "sessionFromRequest").Msg("no identity session in request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return models.Session{}, false
	}
	return session, true
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var sale models.Sale
	if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
		log.Err(err).Str("func", "*Handler.createSale").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.Sales.CreateSale(ctx, session, sale)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSale").Msg("error recording sale")
		http.Error(w, "error recording sale", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	offlineID := chi.URLParam(r, "offlineId")

	var patch models.Sale
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateSale").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.Sales.UpdateSale(ctx, session, offlineID, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateSale").Msg("error updating sale")
		http.Error(w, "error updating sale", statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	sales, err := h.services.Sales.ListSales(ctx, session)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSales").Msg("error listing sales")
		http.Error(w, "error listing sales", statusFromError(err))
		return
	}

	utils.WriteJSON(w, sales, http.StatusOK)
}
