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

type adjustmentsService struct {
	adjustments store.AdjustmentRepository
	queue       store.QueueRepository
	uuid        *utils.UUIDGenerator

	logger *logger.Logger
}

// NewAdjustmentsService constructs an [AdjustmentsService].
func NewAdjustmentsService(adjustments store.AdjustmentRepository, queue store.QueueRepository, logger *logger.Logger) AdjustmentsService {
	return &adjustmentsService{
		adjustments: adjustments,
		queue:       queue,
		uuid:        utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

// CreateAdjustment implements [AdjustmentsService].
func (s *adjustmentsService) CreateAdjustment(ctx context.Context, session models.Session, adjustment models.InventoryAdjustment) (models.InventoryAdjustment, error) {
	log := logger.FromContext(ctx)

	if session.StoreID == "" {
		return models.InventoryAdjustment{}, store.ErrMissingStoreScope
	}

	adjustment.OfflineID = s.uuid.Generate()
	adjustment.ClientRef = s.uuid.Generate()
	adjustment.StoreID = session.StoreID
	adjustment.AdjustedBy = session.Email
	adjustment.SyncedRemoteID = nil
	if adjustment.CreatedAt.IsZero() {
		adjustment.CreatedAt = time.Now().UTC()
	}

	if err := s.adjustments.Save(ctx, adjustment); err != nil {
		return models.InventoryAdjustment{}, fmt.Errorf("save adjustment locally: %w", err)
	}

	payload, err := json.Marshal(adjustment)
	if err != nil {
		return models.InventoryAdjustment{}, fmt.Errorf("marshal adjustment payload: %w", err)
	}

	item, err := s.queue.Enqueue(ctx, models.QueueItem{
		StoreID:    session.StoreID,
		EntityType: models.EntityTypeInventoryAdjustment,
		Operation:  models.OperationCreate,
		Payload:    payload,
		ClientRef:  adjustment.ClientRef,
	})
	if err != nil {
		return models.InventoryAdjustment{}, fmt.Errorf("enqueue adjustment: %w", err)
	}

	log.Info().
		Str("func", "adjustmentsService.CreateAdjustment").
		Str("offline_id", adjustment.OfflineID).
		Str("queue_id", item.QueueID).
		Int64("product_id", adjustment.ProductID).
		Msg("inventory adjustment recorded locally and queued for sync")

	return adjustment, nil
}

// ListAdjustments implements [AdjustmentsService].
func (s *adjustmentsService) ListAdjustments(ctx context.Context, session models.Session) ([]models.InventoryAdjustment, error) {
	if session.StoreID == "" {
		return nil, store.ErrMissingStoreScope
	}
	return s.adjustments.ListByStore(ctx, session.StoreID)
}
