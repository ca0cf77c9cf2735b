// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// adjustmentHandler replays inventory adjustments. Adjustments are
// create-only: a wrong correction is compensated by a new one, never edited.
type adjustmentHandler struct {
	adjustments store.AdjustmentRepository
	remote      adapter.RemoteService
	logger      *logger.Logger
}

// NewAdjustmentHandler constructs the [SyncHandler] for inventory
// adjustments.
func NewAdjustmentHandler(adjustments store.AdjustmentRepository, remote adapter.RemoteService, logger *logger.Logger) SyncHandler {
	return &adjustmentHandler{
		adjustments: adjustments,
		remote:      remote,
		logger:      logger,
	}
}

// Create implements [SyncHandler]. Duplicate detection is by client ref.
func (h *adjustmentHandler) Create(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	log := logger.FromContext(ctx)

	var adjustment models.InventoryAdjustment
	if err := json.Unmarshal(item.Payload, &adjustment); err != nil {
		return HandlerOutcome{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	table := item.EntityType.RemoteTable()

	existing, err := h.remote.Query(ctx, table, models.Filter{
		"client_ref": item.ClientRef,
		"store_id":   item.StoreID,
	})
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("duplicate check for adjustment: %w", err)
	}
	if len(existing) > 0 {
		remoteID := existing[0].ID()
		if err = h.adjustments.MarkSynced(ctx, adjustment.OfflineID, remoteID); err != nil {
			return HandlerOutcome{}, fmt.Errorf("reconcile duplicate adjustment: %w", err)
		}

		log.Info().
			Str("func", "adjustmentHandler.Create").
			Str("client_ref", item.ClientRef).
			Int64("remote_id", remoteID).
			Msg("adjustment already exists remotely, skipping")
		return HandlerOutcome{Skipped: true, RemoteID: remoteID}, nil
	}

	stored, err := h.remote.Insert(ctx, table, adjustment.ToRemote())
	if err != nil {
		if errors.Is(err, adapter.ErrConflict) {
			return h.reconcileConflict(ctx, table, item, adjustment.OfflineID)
		}
		return HandlerOutcome{}, fmt.Errorf("insert adjustment: %w", err)
	}

	remoteID := stored.ID()
	if err = h.adjustments.MarkSynced(ctx, adjustment.OfflineID, remoteID); err != nil {
		return HandlerOutcome{}, fmt.Errorf("mark adjustment synced: %w", err)
	}

	return HandlerOutcome{RemoteID: remoteID}, nil
}

// Update implements [SyncHandler]. Always refuses: the entity is
// create-only.
func (h *adjustmentHandler) Update(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	return HandlerOutcome{}, fmt.Errorf("%w: %s", ErrUpdateNotSupported, item.EntityType)
}

func (h *adjustmentHandler) reconcileConflict(ctx context.Context, table string, item models.QueueItem, offlineID string) (HandlerOutcome, error) {
	existing, err := h.remote.Query(ctx, table, models.Filter{
		"client_ref": item.ClientRef,
		"store_id":   item.StoreID,
	})
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("resolve adjustment conflict: %w", err)
	}
	if len(existing) == 0 {
		return HandlerOutcome{}, fmt.Errorf("adjustment conflict without matching client ref %s", item.ClientRef)
	}

	remoteID := existing[0].ID()
	if err = h.adjustments.MarkSynced(ctx, offlineID, remoteID); err != nil {
		return HandlerOutcome{}, fmt.Errorf("reconcile adjustment after conflict: %w", err)
	}

	return HandlerOutcome{Skipped: true, RemoteID: remoteID}, nil
}
