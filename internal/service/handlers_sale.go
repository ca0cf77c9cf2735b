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

// saleHandler replays sale mutations. It carries the richest duplicate
// detection of the three handlers: the client ref check first, then the
// natural key (device serial + creator email) as a fallback for queued items
// that predate client-ref support. Both checks reconcile and skip.
type saleHandler struct {
	sales  store.SaleRepository
	groups store.SaleGroupRepository
	remote adapter.RemoteService
	logger *logger.Logger
}

// NewSaleHandler constructs the [SyncHandler] for sales.
func NewSaleHandler(sales store.SaleRepository, groups store.SaleGroupRepository, remote adapter.RemoteService, logger *logger.Logger) SyncHandler {
	return &saleHandler{
		sales:  sales,
		groups: groups,
		remote: remote,
		logger: logger,
	}
}

// Create implements [SyncHandler].
//
// When the sale belongs to a basket, the parent group's remote identity is
// resolved from the local cache before the write. A group still awaiting
// reconciliation fails the item; FIFO order means the group normally synced
// earlier in the same pass, so the failure only occurs when the group itself
// failed — and the sale retries on the next drain.
func (h *saleHandler) Create(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	log := logger.FromContext(ctx)

	var sale models.Sale
	if err := json.Unmarshal(item.Payload, &sale); err != nil {
		return HandlerOutcome{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	table := item.EntityType.RemoteTable()

	if outcome, found, err := h.findDuplicate(ctx, table, item, sale); err != nil {
		return HandlerOutcome{}, err
	} else if found {
		log.Info().
			Str("func", "saleHandler.Create").
			Str("client_ref", item.ClientRef).
			Int64("remote_id", outcome.RemoteID).
			Msg("sale already exists remotely, skipping")
		return outcome, nil
	}

	groupRemoteID, err := h.resolveParentGroup(ctx, item.StoreID, sale.SaleGroupRef)
	if err != nil {
		return HandlerOutcome{}, err
	}

	stored, err := h.remote.Insert(ctx, table, sale.ToRemote(groupRemoteID))
	if err != nil {
		if errors.Is(err, adapter.ErrConflict) {
			return h.reconcileConflict(ctx, table, item, sale.OfflineID)
		}
		return HandlerOutcome{}, fmt.Errorf("insert sale: %w", err)
	}

	remoteID := stored.ID()
	if err = h.sales.MarkSynced(ctx, sale.OfflineID, remoteID); err != nil {
		return HandlerOutcome{}, fmt.Errorf("mark sale synced: %w", err)
	}

	return HandlerOutcome{RemoteID: remoteID}, nil
}

// Update implements [SyncHandler]. Only reconciled sales can be updated
// remotely; the payload's mutable fields travel as a partial record.
func (h *saleHandler) Update(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	var sale models.Sale
	if err := json.Unmarshal(item.Payload, &sale); err != nil {
		return HandlerOutcome{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	cached, err := h.sales.Get(ctx, item.StoreID, sale.OfflineID)
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("load sale for update: %w", err)
	}
	if !cached.Reconciled() {
		return HandlerOutcome{}, fmt.Errorf("%w: sale %s", ErrNotReconciled, sale.OfflineID)
	}

	remoteID := *cached.SyncedRemoteID
	changes := models.RemoteRecord{
		"product_name":   sale.ProductName,
		"quantity":       sale.Quantity,
		"unit_price":     sale.UnitPrice,
		"total_price":    sale.TotalPrice,
		"payment_method": sale.PaymentMethod,
	}

	if _, err = h.remote.Update(ctx, item.EntityType.RemoteTable(),
		models.Filter{"id": strconv.FormatInt(remoteID, 10)}, changes); err != nil {
		return HandlerOutcome{}, fmt.Errorf("update sale: %w", err)
	}

	return HandlerOutcome{RemoteID: remoteID}, nil
}

// findDuplicate runs the two duplicate checks in order: client ref, then
// natural key. A hit reconciles the cached sale and reports found=true.
func (h *saleHandler) findDuplicate(ctx context.Context, table string, item models.QueueItem, sale models.Sale) (HandlerOutcome, bool, error) {
	byRef, err := h.remote.Query(ctx, table, models.Filter{
		"client_ref": item.ClientRef,
		"store_id":   item.StoreID,
	})
	if err != nil {
		return HandlerOutcome{}, false, fmt.Errorf("duplicate check by client ref: %w", err)
	}

	match := byRef
	if len(match) == 0 && sale.DeviceSerial != "" {
		byNaturalKey, nkErr := h.remote.Query(ctx, table, models.Filter{
			"device_serial": sale.DeviceSerial,
			"created_by":    sale.CreatedBy,
			"store_id":      item.StoreID,
		})
		if nkErr != nil {
			return HandlerOutcome{}, false, fmt.Errorf("duplicate check by natural key: %w", nkErr)
		}
		match = byNaturalKey
	}

	if len(match) == 0 {
		return HandlerOutcome{}, false, nil
	}

	remoteID := match[0].ID()
	if err = h.sales.MarkSynced(ctx, sale.OfflineID, remoteID); err != nil {
		return HandlerOutcome{}, false, fmt.Errorf("reconcile duplicate sale: %w", err)
	}

	return HandlerOutcome{Skipped: true, RemoteID: remoteID}, true, nil
}

// resolveParentGroup looks up the remote identity of the sale's basket.
// Returns nil for standalone sales.
func (h *saleHandler) resolveParentGroup(ctx context.Context, storeID, saleGroupRef string) (*int64, error) {
	if saleGroupRef == "" {
		return nil, nil
	}

	group, err := h.groups.Get(ctx, storeID, saleGroupRef)
	if err != nil {
		return nil, fmt.Errorf("load parent sale group %s: %w", saleGroupRef, err)
	}
	if !group.Reconciled() {
		return nil, fmt.Errorf("%w: %s", ErrParentNotReconciled, saleGroupRef)
	}

	return group.SyncedRemoteID, nil
}

func (h *saleHandler) reconcileConflict(ctx context.Context, table string, item models.QueueItem, offlineID string) (HandlerOutcome, error) {
	existing, err := h.remote.Query(ctx, table, models.Filter{
		"client_ref": item.ClientRef,
		"store_id":   item.StoreID,
	})
	if err != nil {
		return HandlerOutcome{}, fmt.Errorf("resolve sale conflict: %w", err)
	}
	if len(existing) == 0 {
		return HandlerOutcome{}, fmt.Errorf("sale conflict without matching client ref %s", item.ClientRef)
	}

	remoteID := existing[0].ID()
	if err = h.sales.MarkSynced(ctx, offlineID, remoteID); err != nil {
		return HandlerOutcome{}, fmt.Errorf("reconcile sale after conflict: %w", err)
	}

	return HandlerOutcome{Skipped: true, RemoteID: remoteID}, nil
}
