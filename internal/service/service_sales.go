// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

// salesService performs the optimistic local write for a new sale: cache
// insert plus queue entry, both purely local. The sale is visible to the UI
// immediately and reaches the remote on the next drain.
type salesService struct {
	sales store.SaleRepository
	queue store.QueueRepository
	uuid  *utils.UUIDGenerator

	logger *logger.Logger
}

// NewSalesService constructs a [SalesService].
func NewSalesService(sales store.SaleRepository, queue store.QueueRepository, logger *logger.Logger) SalesService {
	return &salesService{
		sales:  sales,
		queue:  queue,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// CreateSale implements [SalesService].
func (s *salesService) CreateSale(ctx context.Context, session models.Session, sale models.Sale) (models.Sale, error) {
	log := logger.FromContext(ctx)

	if session.StoreID == "" {
		return models.Sale{}, store.ErrMissingStoreScope
	}

	sale.OfflineID = s.uuid.Generate()
	sale.ClientRef = s.uuid.Generate()
	sale.StoreID = session.StoreID
	sale.CreatedBy = session.Email
	sale.SyncedRemoteID = nil
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return models.Sale{}, fmt.Errorf("save sale locally: %w", err)
	}

	payload, err := json.Marshal(sale)
	if err != nil {
		return models.Sale{}, fmt.Errorf("marshal sale payload: %w", err)
	}

	item, err := s.queue.Enqueue(ctx, models.QueueItem{
		StoreID:    session.StoreID,
		EntityType: models.EntityTypeSale,
		Operation:  models.OperationCreate,
		Payload:    payload,
		ClientRef:  sale.ClientRef,
	})
	if err != nil {
		return models.Sale{}, fmt.Errorf("enqueue sale: %w", err)
	}

	log.Info().
		Str("func", "salesService.CreateSale").
		Str("offline_id", sale.OfflineID).
		Str("queue_id", item.QueueID).
		Msg("sale recorded locally and queued for sync")

	return sale, nil
}

// UpdateSale implements [SalesService]. The update is merged into the local
// cache first and enqueued second, mirroring the create path. The queued
// payload carries the merged sale; the enqueue generates a fresh client ref
// for the update mutation itself.
func (s *salesService) UpdateSale(ctx context.Context, session models.Session, offlineID string, patch models.Sale) (models.Sale, error) {
	log := logger.FromContext(ctx)

	if session.StoreID == "" {
		return models.Sale{}, store.ErrMissingStoreScope
	}

	sale, err := s.sales.Get(ctx, session.StoreID, offlineID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("load cached sale: %w", err)
	}

	if patch.ProductName != "" {
		sale.ProductName = patch.ProductName
	}
	if patch.Quantity != 0 {
		sale.Quantity = patch.Quantity
	}
	if patch.UnitPrice != 0 {
		sale.UnitPrice = patch.UnitPrice
	}
	if patch.TotalPrice != 0 {
		sale.TotalPrice = patch.TotalPrice
	}
	if patch.PaymentMethod != "" {
		sale.PaymentMethod = patch.PaymentMethod
	}

	if err := s.sales.Update(ctx, sale); err != nil {
		return models.Sale{}, fmt.Errorf("update sale locally: %w", err)
	}

	payload, err := json.Marshal(sale)
	if err != nil {
		return models.Sale{}, fmt.Errorf("marshal sale payload: %w", err)
	}

	item, err := s.queue.Enqueue(ctx, models.QueueItem{
		StoreID:    session.StoreID,
		EntityType: models.EntityTypeSale,
		Operation:  models.OperationUpdate,
		Payload:    payload,
	})
	if err != nil {
		return models.Sale{}, fmt.Errorf("enqueue sale update: %w", err)
	}

	log.Info().
		Str("func", "salesService.UpdateSale").
		Str("offline_id", sale.OfflineID).
		Str("queue_id", item.QueueID).
		Msg("sale updated locally and queued for sync")

	return sale, nil
}

// ListSales implements [SalesService].
func (s *salesService) ListSales(ctx context.Context, session models.Session) ([]models.Sale, error) {
	if session.StoreID == "" {
		return nil, store.ErrMissingStoreScope
	}
	return s.sales.ListByStore(ctx, session.StoreID)
}
