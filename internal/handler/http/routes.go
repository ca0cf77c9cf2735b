package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getVersion)
	})

	// everything store-scoped requires an identity session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sales", h.createSale)
		r.Get("/api/sales", h.listSales)
		r.Patch("/api/sales/{offlineId}", h.updateSale)
		r.Post("/api/sale-groups", h.createSaleGroup)
		r.Get("/api/sale-groups", h.listSaleGroups)
		r.Patch("/api/sale-groups/{offlineId}", h.updateSaleGroup)
		r.Post("/api/inventory-adjustments", h.createAdjustment)
		r.Get("/api/inventory-adjustments", h.listAdjustments)

		r.Get("/api/sync/status", h.getSyncStatus)
		r.Get("/api/sync/queue/count", h.getQueueCount)
		r.Post("/api/sync/run", h.runSync)
		r.Post("/api/sync/pause", h.pauseSync)
		r.Post("/api/sync/resume", h.resumeSync)
		r.Delete("/api/sync/queue", h.clearQueue)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
