// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// saleGroupHandler replays sale-group mutations. Groups sync before their
// line items (FIFO guarantees enqueue order), so this handler has no parent
// dependency of its own.
type saleGroupHandler struct {
	groups store.SaleGroupRepository
	remote adapter.RemoteService
	logger *logger.Logger
}

// NewSaleGroupHandler constructs the [SyncHandler] for sale groups.
func NewSaleGroupHandler(groups store.SaleGroupRepository, remote adapter.RemoteService, logger *logger.Logger) SyncHandler {
	return &saleGroupHandler{
		groups: groups,
		remote: remote,
		logger: logger,
	}
}

// Create implements [SyncHandler]. Duplicate detection goes through the
// client ref only: a remote row carrying the item's idempotency token means
// the mutation already landed during a previous, partially-completed pass.
func (h *saleGroupHandler) Create(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	log := logger.FromContext(ctx)

	var group models.SaleGroup
	if err := json.Unmarshal(item.Payload, &group); err != nil {
		return HandlerOutcome{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	table := item.EntityType.RemoteTable()

	existing, err := h.remote.Query(ctx, table, models.Filter{
		"client_ref": item.ClientRef,
		"store_id":   item.StoreID,
	})
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("duplicate check for sale group: %w", err)
	}
	if len(existing) > 0 {
		remoteID := existing[0].ID()
		if err = h.groups.MarkSynced(ctx, group.OfflineID, remoteID); err != nil {
			return HandlerOutcome{}, fmt.Errorf("reconcile duplicate sale group: %w", err)
		}

		log.Info().
			Str("func", "saleGroupHandler.Create").
			Str("client_ref", item.ClientRef).
			Int64("remote_id", remoteID).
			Msg("sale group already exists remotely, skipping")
		return HandlerOutcome{Skipped: true, RemoteID: remoteID}, nil
	}

	stored, err := h.remote.Insert(ctx, table, group.ToRemote())
	if err != nil {
		// A conflict means the row landed between the duplicate check and
		// the write; resolve it by the client ref like any other replay.
		if errors.Is(err, adapter.ErrConflict) {
			return h.reconcileConflict(ctx, table, item, group.OfflineID)
		}
		return HandlerOutcome{}, fmt.Errorf("insert sale group: %w", err)
	}

	remoteID := stored.ID()
	if err = h.groups.MarkSynced(ctx, group.OfflineID, remoteID); err != nil {
		return HandlerOutcome{}, fmt.Errorf("mark sale group synced: %w", err)
	}

	return HandlerOutcome{RemoteID: remoteID}, nil
}

// Update implements [SyncHandler]. The group must already be reconciled;
// only the mutable fields travel to the remote.
func (h *saleGroupHandler) Update(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	var group models.SaleGroup
	if err := json.Unmarshal(item.Payload, &group); err != nil {
		return HandlerOutcome{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	cached, err := h.groups.Get(ctx, item.StoreID, group.OfflineID)
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("load sale group for update: %w", err)
	}
	if !cached.Reconciled() {
		return HandlerOutcome{}, fmt.Errorf("%w: sale group %s", ErrNotReconciled, group.OfflineID)
	}

	remoteID := *cached.SyncedRemoteID
	changes := models.RemoteRecord{
		"status":         group.Status,
		"payment_method": group.PaymentMethod,
		"total_amount":   group.TotalAmount,
		"item_count":     group.ItemCount,
	}

	if _, err = h.remote.Update(ctx, item.EntityType.RemoteTable(),
		models.Filter{"id": strconv.FormatInt(remoteID, 10)}, changes); err != nil {
		return HandlerOutcome{}, fmt.Errorf("update sale group: %w", err)
	}

	return HandlerOutcome{RemoteID: remoteID}, nil
}

func (h *saleGroupHandler) reconcileConflict(ctx context.Context, table string, item models.QueueItem, offlineID string) (HandlerOutcome, error) {
	existing, err := h.remote.Query(ctx, table, models.Filter{
		"client_ref": item.ClientRef,
		"store_id":   item.StoreID,
	})
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("resolve sale group conflict: %w", err)
	}
	if len(existing) == 0 {
		return HandlerOutcome{}, fmt.Errorf("sale group conflict without matching client ref %s", item.ClientRef)
	}

	remoteID := existing[0].ID()
	if err = h.groups.MarkSynced(ctx, offlineID, remoteID); err != nil {
		return HandlerOutcome{}, fmt.Errorf("reconcile sale group after conflict: %w", err)
	}

	return HandlerOutcome{Skipped: true, RemoteID: remoteID}, nil
}
