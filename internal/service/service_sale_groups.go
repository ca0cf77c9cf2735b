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

type saleGroupsService struct {
	groups store.SaleGroupRepository
	queue  store.QueueRepository
	uuid   *utils.UUIDGenerator

	logger *logger.Logger
}

// NewSaleGroupsService constructs a [SaleGroupsService].
func NewSaleGroupsService(groups store.SaleGroupRepository, queue store.QueueRepository, logger *logger.Logger) SaleGroupsService {
	return &saleGroupsService{
		groups: groups,
		queue:  queue,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// CreateSaleGroup implements [SaleGroupsService]. The caller enqueues the
// group before its line items; FIFO drain order then guarantees the group
// reaches the remote first.
func (s *saleGroupsService) CreateSaleGroup(ctx context.Context, session models.Session, group models.SaleGroup) (models.SaleGroup, error) {
	log := logger.FromContext(ctx)

	if session.StoreID == "" {
		return models.SaleGroup{}, store.ErrMissingStoreScope
	}

	group.OfflineID = s.uuid.Generate()
	group.ClientRef = s.uuid.Generate()
	group.StoreID = session.StoreID
	group.CreatedBy = session.Email
	group.SyncedRemoteID = nil
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return models.SaleGroup{}, fmt.Errorf("save sale group locally: %w", err)
	}

	payload, err := json.Marshal(group)
	if err != nil {
		return models.SaleGroup{}, fmt.Errorf("marshal sale group payload: %w", err)
	}

	item, err := s.queue.Enqueue(ctx, models.QueueItem{
		StoreID:    session.StoreID,
		EntityType: models.EntityTypeSaleGroup,
		Operation:  models.OperationCreate,
		Payload:    payload,
		ClientRef:  group.ClientRef,
	})
	if err != nil {
		return models.SaleGroup{}, fmt.Errorf("enqueue sale group: %w", err)
	}

	log.Info().
		Str("func", "saleGroupsService.CreateSaleGroup").
		Str("offline_id", group.OfflineID).
		Str("queue_id", item.QueueID).
		Msg("sale group recorded locally and queued for sync")

	return group, nil
}

// UpdateSaleGroup implements [SaleGroupsService]. Typical use is closing a
// basket: the status flips and the totals settle. The queued payload carries
// the merged group; if the group's create is still in the queue, FIFO order
// delivers the create first.
func (s *saleGroupsService) UpdateSaleGroup(ctx context.Context, session models.Session, offlineID string, patch models.SaleGroup) (models.SaleGroup, error) {
	log := logger.FromContext(ctx)

	if session.StoreID == "" {
		return models.SaleGroup{}, store.ErrMissingStoreScope
	}

	group, err := s.groups.Get(ctx, session.StoreID, offlineID)
	if err != nil {
		return models.SaleGroup{}, fmt.Errorf("load cached sale group: %w", err)
	}

	if patch.TotalAmount != 0 {
		group.TotalAmount = patch.TotalAmount
	}
	if patch.ItemCount != 0 {
		group.ItemCount = patch.ItemCount
	}
	if patch.PaymentMethod != "" {
		group.PaymentMethod = patch.PaymentMethod
	}
	if patch.Status != "" {
		group.Status = patch.Status
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return models.SaleGroup{}, fmt.Errorf("update sale group locally: %w", err)
	}

	payload, err := json.Marshal(group)
	if err != nil {
		return models.SaleGroup{}, fmt.Errorf("marshal sale group payload: %w", err)
	}

	item, err := s.queue.Enqueue(ctx, models.QueueItem{
		StoreID:    session.StoreID,
		EntityType: models.EntityTypeSaleGroup,
		Operation:  models.OperationUpdate,
		Payload:    payload,
	})
	if err != nil {
		return models.SaleGroup{}, fmt.Errorf("enqueue sale group update: %w", err)
	}

	log.Info().
		Str("func", "saleGroupsService.UpdateSaleGroup").
		Str("offline_id", group.OfflineID).
		Str("queue_id", item.QueueID).
		Msg("sale group updated locally and queued for sync")

	return group, nil
}

// ListSaleGroups implements [SaleGroupsService].
func (s *saleGroupsService) ListSaleGroups(ctx context.Context, session models.Session) ([]models.SaleGroup, error) {
	if session.StoreID == "" {
		return nil, store.ErrMissingStoreScope
	}
	return s.groups.ListByStore(ctx, session.StoreID)
}
