// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
)

// Services groups the whole sync stack into a single value wired from the
// shared storages and remote service.
type Services struct {
	Engine      SyncEngine
	Monitor     ConnectivityMonitor
	Trigger     TriggerController
	Sales       SalesService
	SaleGroups  SaleGroupsService
	Adjustments AdjustmentsService
}

// NewServices wires the full service layer: handler registry, connectivity
// monitor, sync engine, trigger controller and the per-entity enqueue
// services.
func NewServices(storages *store.Storages, remote adapter.RemoteService, syncInterval, debounceDelay time.Duration, logger *logger.Logger) *Services {
	registry := NewHandlerRegistry(storages, remote, logger)
	monitor := NewConnectivityMonitor(remote, logger)
	engine := NewSyncEngine(storages.QueueRepository, registry, monitor, logger)

	return &Services{
		Engine:      engine,
		Monitor:     monitor,
		Trigger:     NewTriggerController(engine, monitor, syncInterval, debounceDelay, logger),
		Sales:       NewSalesService(storages.SaleRepository, storages.QueueRepository, logger),
		SaleGroups:  NewSaleGroupsService(storages.SaleGroupRepository, storages.QueueRepository, logger),
		Adjustments: NewAdjustmentsService(storages.AdjustmentRepository, storages.QueueRepository, logger),
	}
}
