// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service contains the sync engine and everything that feeds it: the
// per-entity sync handlers, the handler registry, the connectivity monitor,
// the trigger controller, and the enqueue convenience services consumed by
// the UI-facing HTTP layer.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// HandlerOutcome is the result of replaying one queue item against the
// remote backend.
type HandlerOutcome struct {
	// Skipped is true when the mutation was detected as already applied
	// remotely (duplicate by client ref or natural key). Skipped items are
	// reconciled locally and count as synced.
	Skipped bool

	// RemoteID is the remote identity of the record the item maps to,
	// whether freshly written or found by the duplicate check.
	RemoteID int64
}

// SyncHandler translates one queued mutation of a single entity type into a
// remote call plus a local cache update.
//
// Handlers never retry: any remote error is returned as-is and retry is the
// sync engine's responsibility on the next drain pass. Side effects are
// confined to at most one remote write (zero when skipped) and one local
// cache update.
type SyncHandler interface {
	// Create replays a create mutation. It must query the remote system for
	// an existing record carrying the item's client ref (and, where the
	// entity has one, its natural key) before writing; a hit reconciles the
	// local cache and returns a skipped outcome without a second write.
	Create(ctx context.Context, item models.QueueItem) (HandlerOutcome, error)

	// Update replays an update mutation against the already-reconciled
	// remote record. Returns [ErrUpdateNotSupported] for create-only
	// entities.
	Update(ctx context.Context, item models.QueueItem) (HandlerOutcome, error)
}

// SyncEngine orchestrates draining the queue against the remote backend.
type SyncEngine interface {
	// SyncAll runs one drain pass for the store: all pending and failed
	// items in FIFO order, strictly sequential, one handler call per item.
	//
	// Returns a zero [models.SyncResult] and nil error immediately when a
	// drain for the store is already in flight. Returns [ErrSyncPaused]
	// when paused, [ErrOffline] when offline, and the store package's
	// missing-scope error when storeID is empty; none of these touch the
	// queue.
	SyncAll(ctx context.Context, storeID string) (models.SyncResult, error)

	// Pause stops new items from being processed. An in-progress item
	// completes normally; the flag is checked before each next item.
	Pause()

	// Resume lifts a pause.
	Resume()

	// Paused reports whether the engine is paused.
	Paused() bool

	// ClearQueue deletes all queue items for the store. Explicit operator
	// escape hatch, never invoked automatically.
	ClearQueue(ctx context.Context, storeID string) error

	// QueueCount returns the number of items still awaiting sync for the
	// store.
	QueueCount(ctx context.Context, storeID string) (int, error)

	// Status returns the observable engine snapshot for the store.
	Status(ctx context.Context, storeID string) models.SyncStatus
}

// ConnectivityMonitor tracks whether the remote backend is reachable and
// publishes transitions to subscribers.
type ConnectivityMonitor interface {
	// IsOnline reports the current connectivity state.
	IsOnline() bool

	// SetOnline records a state change and, on an actual transition,
	// notifies all subscribers. Used by the health probe and by tests.
	SetOnline(online bool)

	// Subscribe returns a channel receiving the new state on every
	// transition, plus an unsubscribe func that closes the channel.
	Subscribe() (<-chan bool, func())

	// RunProbe pings the remote backend every interval and feeds the result
	// into SetOnline. Blocks until ctx is cancelled.
	RunProbe(ctx context.Context, interval time.Duration)
}

// TriggerController decides when the engine should attempt a drain. It never
// touches the queue itself.
type TriggerController interface {
	// Start launches the background trigger loop for the store: a debounced
	// drain on every offline-to-online transition, and a fixed-interval
	// ticker while online and unpaused. Stops any previously running loop.
	Start(ctx context.Context, storeID string)

	// Stop cancels the loop and blocks until it has fully exited. Safe to
	// call when not running.
	Stop()
}

// SalesService is the UI-facing surface for recording sales: optimistic
// local write plus queue entry, no network required.
type SalesService interface {
	// CreateSale assigns the sale its offline identity and idempotency
	// token, caches it locally and enqueues the create mutation. Returns
	// the stored sale.
	CreateSale(ctx context.Context, session models.Session, sale models.Sale) (models.Sale, error)

	// UpdateSale merges the mutable fields of patch into the cached sale
	// identified by offlineID, persists the result and enqueues the update
	// mutation. Identity fields on patch are ignored. Returns the merged
	// sale.
	UpdateSale(ctx context.Context, session models.Session, offlineID string, patch models.Sale) (models.Sale, error)

	// ListSales returns the locally cached sales for the session's store.
	ListSales(ctx context.Context, session models.Session) ([]models.Sale, error)
}

// SaleGroupsService is the UI-facing surface for checkout baskets. The group
// is enqueued before its line items so FIFO order delivers it first.
type SaleGroupsService interface {
	CreateSaleGroup(ctx context.Context, session models.Session, group models.SaleGroup) (models.SaleGroup, error)

	// UpdateSaleGroup merges the mutable fields of patch into the cached
	// group identified by offlineID, persists the result and enqueues the
	// update mutation. Returns the merged group.
	UpdateSaleGroup(ctx context.Context, session models.Session, offlineID string, patch models.SaleGroup) (models.SaleGroup, error)

	ListSaleGroups(ctx context.Context, session models.Session) ([]models.SaleGroup, error)
}

// AdjustmentsService is the UI-facing surface for manual stock corrections.
type AdjustmentsService interface {
	CreateAdjustment(ctx context.Context, session models.Session, adjustment models.InventoryAdjustment) (models.InventoryAdjustment, error)
	ListAdjustments(ctx context.Context, session models.Session) ([]models.InventoryAdjustment, error)
}
