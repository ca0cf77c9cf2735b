// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local durable store: an SQLite-backed mutation
// queue plus cache tables for the domain entities mirrored from the remote
// backend. Everything in this package must survive process restarts and
// network loss — the queue is the single source of truth for mutations made
// while disconnected.
package store

import (
	"context"

	"github.com/MKhiriev/go-pos-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

// QueueRepository is the ordered collection of pending mutations. Items are
// listed and drained in FIFO enqueue order, always scoped per store.
type QueueRepository interface {
	// Enqueue records a new pending mutation. It always succeeds locally (no
	// network required): a fresh queue id is assigned, a client ref is
	// generated when the item does not already carry one, and status is set
	// to pending. Returns the stored item.
	Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error)

	// ListPending returns all items with status in {pending, failed} for the
	// store, in enqueue (FIFO) order. Re-querying reflects current state,
	// not a frozen snapshot.
	ListPending(ctx context.Context, storeID string) ([]models.QueueItem, error)

	// MarkSyncing transitions the item to the syncing status.
	MarkSyncing(ctx context.Context, queueID string) error

	// MarkSynced transitions the item to the synced status and clears any
	// failure reason.
	MarkSynced(ctx context.Context, queueID string) error

	// MarkFailed transitions the item to the failed status, records the
	// failure reason, and increments the retry count.
	MarkFailed(ctx context.Context, queueID, reason string) error

	// Count returns the number of items with status in {pending, failed} for
	// the store — the figure that drives whether the engine has work.
	Count(ctx context.Context, storeID string) (int, error)

	// Clear deletes all queue items for the store. This is an explicit
	// user-invoked escape hatch, never called automatically.
	Clear(ctx context.Context, storeID string) error
}

// SaleRepository persists locally cached sales.
type SaleRepository interface {
	// Save inserts the sale into the local cache.
	Save(ctx context.Context, sale models.Sale) error

	// Get returns the sale identified by offlineID within the store.
	// Returns [ErrSaleNotFound] if no such sale exists.
	Get(ctx context.Context, storeID, offlineID string) (models.Sale, error)

	// Update overwrites the mutable fields of the cached sale. Identity
	// fields (offline id, store id, client ref) are never touched. Returns
	// [ErrSaleNotFound] if no such sale exists.
	Update(ctx context.Context, sale models.Sale) error

	// ListByStore returns all cached sales for the store, newest first.
	ListByStore(ctx context.Context, storeID string) ([]models.Sale, error)

	// MarkSynced links the sale's local identity to remoteID. Once set, the
	// record is reconciled and must not be re-submitted.
	MarkSynced(ctx context.Context, offlineID string, remoteID int64) error
}

// SaleGroupRepository persists locally cached sale groups.
type SaleGroupRepository interface {
	Save(ctx context.Context, group models.SaleGroup) error

	// Get returns the group identified by offlineID within the store.
	// Returns [ErrSaleGroupNotFound] if no such group exists.
	Get(ctx context.Context, storeID, offlineID string) (models.SaleGroup, error)

	// Update overwrites the mutable fields of the cached group. Returns
	// [ErrSaleGroupNotFound] if no such group exists.
	Update(ctx context.Context, group models.SaleGroup) error

	ListByStore(ctx context.Context, storeID string) ([]models.SaleGroup, error)

	// MarkSynced links the group's local identity to remoteID.
	MarkSynced(ctx context.Context, offlineID string, remoteID int64) error
}

// AdjustmentRepository persists locally cached inventory adjustments.
type AdjustmentRepository interface {
	Save(ctx context.Context, adjustment models.InventoryAdjustment) error

	// Get returns the adjustment identified by offlineID within the store.
	// Returns [ErrAdjustmentNotFound] if no such adjustment exists.
	Get(ctx context.Context, storeID, offlineID string) (models.InventoryAdjustment, error)

	ListByStore(ctx context.Context, storeID string) ([]models.InventoryAdjustment, error)

	// MarkSynced links the adjustment's local identity to remoteID.
	MarkSynced(ctx context.Context, offlineID string, remoteID int64) error
}
