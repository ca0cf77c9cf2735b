// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// syncEngine drains the mutation queue against the remote backend.
//
// One engine serves all stores of the process; each store's drain is
// independent and guarded by its own in-flight flag, so two stores can drain
// concurrently while a second drain for the same store is a no-op. Within
// one store's pass processing is strictly sequential in FIFO order — later
// items may reference identities created by earlier ones.
type syncEngine struct {
	queue    store.QueueRepository
	registry *HandlerRegistry
	monitor  ConnectivityMonitor
	logger   *logger.Logger

	paused atomic.Bool

	mu       sync.RWMutex
	inFlight map[string]bool
	progress map[string]models.SyncProgress
	lastSync map[string]time.Time
	lastErr  map[string]string
}

// NewSyncEngine constructs a [SyncEngine] in the idle, unpaused state.
func NewSyncEngine(queue store.QueueRepository, registry *HandlerRegistry, monitor ConnectivityMonitor, logger *logger.Logger) SyncEngine {
	return &syncEngine{
		queue:    queue,
		registry: registry,
		monitor:  monitor,
		logger:   logger,
		inFlight: make(map[string]bool),
		progress: make(map[string]models.SyncProgress),
		lastSync: make(map[string]time.Time),
		lastErr:  make(map[string]string),
	}
}

// SyncAll implements [SyncEngine].
func (e *syncEngine) SyncAll(ctx context.Context, storeID string) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return models.SyncResult{}, store.ErrMissingStoreScope
	}
	if e.paused.Load() {
		return models.SyncResult{}, ErrSyncPaused
	}
	if !e.monitor.IsOnline() {
		return models.SyncResult{}, ErrOffline
	}

	if !e.acquire(storeID) {
		log.Debug().
			Str("func", "syncEngine.SyncAll").
			Str("store_id", storeID).
			Msg("drain already in flight, skipping")
		return models.SyncResult{}, nil
	}
	defer e.release(storeID)

	items, err := e.queue.ListPending(ctx, storeID)
	if err != nil {
		return models.SyncResult{}, err
	}
	if len(items) == 0 {
		return models.SyncResult{}, nil
	}

	log.Info().
		Str("func", "syncEngine.SyncAll").
		Str("store_id", storeID).
		Int("total", len(items)).
		Msg("starting drain pass")

	var result models.SyncResult
	for i, item := range items {
		// Cooperative pause: checked before each item, never mid-item.
		if e.paused.Load() {
			log.Info().
				Str("func", "syncEngine.SyncAll").
				Str("store_id", storeID).
				Int("processed", i).
				Msg("pause requested, interrupting drain")
			break
		}
		if ctx.Err() != nil {
			break
		}

		e.setProgress(storeID, models.SyncProgress{Current: i + 1, Total: len(items)})

		if err := e.processItem(ctx, item); err != nil {
			result.Failed++
			e.setLastError(storeID, err.Error())

			log.Warn().
				Err(err).
				Str("func", "syncEngine.SyncAll").
				Str("queue_id", item.QueueID).
				Str("entity_type", string(item.EntityType)).
				Msg("queue item failed to sync")
			continue
		}
		result.Synced++
	}

	e.finishPass(storeID, result)

	log.Info().
		Str("func", "syncEngine.SyncAll").
		Str("store_id", storeID).
		Int("synced", result.Synced).
		Int("failed", result.Failed).
		Msg("drain pass finished")

	return result, nil
}

// processItem runs one item through its handler and records the outcome.
// The returned error has already been written to the item's failure reason;
// it is reported only so the caller can count it.
func (e *syncEngine) processItem(ctx context.Context, item models.QueueItem) error {
	if err := e.queue.MarkSyncing(ctx, item.QueueID); err != nil {
		return err
	}

	outcome, err := e.dispatch(ctx, item)
	if err != nil {
		if markErr := e.queue.MarkFailed(ctx, item.QueueID, err.Error()); markErr != nil {
			e.logger.Err(markErr).
				Str("func", "syncEngine.processItem").
				Str("queue_id", item.QueueID).
				Msg("failed to mark queue item failed")
		}
		return err
	}

	if err = e.queue.MarkSynced(ctx, item.QueueID); err != nil {
		return err
	}

	if outcome.Skipped {
		e.logger.Debug().
			Str("func", "syncEngine.processItem").
			Str("queue_id", item.QueueID).
			Int64("remote_id", outcome.RemoteID).
			Msg("item skipped as remote duplicate, counted as synced")
	}

	return nil
}

func (e *syncEngine) dispatch(ctx context.Context, item models.QueueItem) (HandlerOutcome, error) {
	handler, err := e.registry.Handler(item.EntityType)
	if err != nil {
		return HandlerOutcome{}, err
	}

	switch item.Operation {
	case models.OperationUpdate:
		return handler.Update(ctx, item)
	default:
		return handler.Create(ctx, item)
	}
}

// Pause implements [SyncEngine].
func (e *syncEngine) Pause() {
	e.paused.Store(true)
}

// Resume implements [SyncEngine].
func (e *syncEngine) Resume() {
	e.paused.Store(false)
}

// Paused implements [SyncEngine].
func (e *syncEngine) Paused() bool {
	return e.paused.Load()
}

// ClearQueue implements [SyncEngine].
func (e *syncEngine) ClearQueue(ctx context.Context, storeID string) error {
	return e.queue.Clear(ctx, storeID)
}

// QueueCount implements [SyncEngine].
func (e *syncEngine) QueueCount(ctx context.Context, storeID string) (int, error) {
	return e.queue.Count(ctx, storeID)
}

// Status implements [SyncEngine]. The queue count is read live; a count
// error degrades to zero rather than failing the snapshot.
func (e *syncEngine) Status(ctx context.Context, storeID string) models.SyncStatus {
	count, err := e.queue.Count(ctx, storeID)
	if err != nil {
		count = 0
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	status := models.SyncStatus{
		Online:     e.monitor.IsOnline(),
		Syncing:    e.inFlight[storeID],
		Paused:     e.paused.Load(),
		QueueCount: count,
		Progress:   e.progress[storeID],
		LastError:  e.lastErr[storeID],
	}
	if ts, ok := e.lastSync[storeID]; ok {
		t := ts
		status.LastSyncAt = &t
	}

	return status
}

func (e *syncEngine) acquire(storeID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight[storeID] {
		return false
	}
	e.inFlight[storeID] = true
	e.lastErr[storeID] = ""
	return true
}

func (e *syncEngine) release(storeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, storeID)
	delete(e.progress, storeID)
}

func (e *syncEngine) setProgress(storeID string, p models.SyncProgress) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress[storeID] = p
}

func (e *syncEngine) setLastError(storeID, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr[storeID] = msg
}

func (e *syncEngine) finishPass(storeID string, _ models.SyncResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSync[storeID] = time.Now().UTC()
}
