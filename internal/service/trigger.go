// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

// triggerController schedules drains without ever touching the queue
// itself. Two automatic triggers feed the engine: a debounced drain on each
// offline-to-online transition, and a fixed-interval ticker while online
// and unpaused. The debounce absorbs flaky reconnects — if the device drops
// offline again before the delay elapses, no drain is attempted.
type triggerController struct {
	engine  SyncEngine
	monitor ConnectivityMonitor
	logger  *logger.Logger

	syncInterval  time.Duration
	debounceDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTriggerController creates a [TriggerController] that is idle until
// Start is called. Non-positive durations fall back to 30s sync interval
// and 2s debounce.
func NewTriggerController(engine SyncEngine, monitor ConnectivityMonitor, syncInterval, debounceDelay time.Duration, logger *logger.Logger) TriggerController {
	if syncInterval <= 0 {
		syncInterval = 30 * time.Second
	}
	if debounceDelay <= 0 {
		debounceDelay = 2 * time.Second
	}

	return &triggerController{
		engine:        engine,
		monitor:       monitor,
		logger:        logger,
		syncInterval:  syncInterval,
		debounceDelay: debounceDelay,
	}
}

// Start implements [TriggerController]. It stops any previously running
// loop, then launches a background goroutine subscribed to connectivity
// transitions. The goroutine exits when ctx is cancelled or Stop is called.
func (c *triggerController) Start(ctx context.Context, storeID string) {
	c.Stop()

	c.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.run(loopCtx, storeID)
	}()
}

// Stop implements [TriggerController].
func (c *triggerController) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

func (c *triggerController) run(ctx context.Context, storeID string) {
	transitions, unsubscribe := c.monitor.Subscribe()
	defer unsubscribe()

	t := time.NewTicker(c.syncInterval)
	defer t.Stop()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	// A nil channel blocks forever, which is exactly what we want until a
	// debounce window is open.
	var debounceFired <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case online, ok := <-transitions:
			if !ok {
				return
			}
			if online {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.NewTimer(c.debounceDelay)
				debounceFired = debounce.C
			} else if debounce != nil {
				// went offline during the debounce window: cancel the
				// scheduled drain entirely
				debounce.Stop()
				debounceFired = nil
			}

		case <-debounceFired:
			debounceFired = nil
			c.drain(ctx, storeID, "online transition")

		case <-t.C:
			if !c.monitor.IsOnline() || c.engine.Paused() {
				continue
			}
			c.drain(ctx, storeID, "periodic tick")
		}
	}
}

func (c *triggerController) drain(ctx context.Context, storeID, reason string) {
	result, err := c.engine.SyncAll(ctx, storeID)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("func", "triggerController.drain").
			Str("store_id", storeID).
			Str("reason", reason).
			Msg("scheduled drain did not run")
		return
	}

	c.logger.Debug().
		Str("func", "triggerController.drain").
		Str("store_id", storeID).
		Str("reason", reason).
		Int("synced", result.Synced).
		Int("failed", result.Failed).
		Msg("scheduled drain finished")
}
