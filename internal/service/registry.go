// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// HandlerRegistry maps each entity type to its sync handler. The entity set
// is closed, so the registry is built once at startup with every known type
// bound; a queue item with an unregistered type is a programming error and
// surfaces as a per-item failure, never a crash.
type HandlerRegistry struct {
	handlers map[models.EntityType]SyncHandler
}

// NewHandlerRegistry builds the registry with all known entity handlers
// wired to the given storages and remote service.
func NewHandlerRegistry(storages *store.Storages, remote adapter.RemoteService, logger *logger.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		handlers: map[models.EntityType]SyncHandler{
			models.EntityTypeSale:                NewSaleHandler(storages.SaleRepository, storages.SaleGroupRepository, remote, logger),
			models.EntityTypeSaleGroup:           NewSaleGroupHandler(storages.SaleGroupRepository, remote, logger),
			models.EntityTypeInventoryAdjustment: NewAdjustmentHandler(storages.AdjustmentRepository, remote, logger),
		},
	}
}

// Handler returns the sync handler registered for entityType.
func (r *HandlerRegistry) Handler(entityType models.EntityType) (SyncHandler, error) {
	h, ok := r.handlers[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownEntityType, entityType)
	}
	return h, nil
}
