package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

// recordingEngine counts SyncAll calls; the trigger tests only care about
// when drains get scheduled, not what they do.
type recordingEngine struct {
	mu     sync.Mutex
	stores []string
	paused atomic.Bool
}

func (e *recordingEngine) SyncAll(_ context.Context, storeID string) (models.SyncResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stores = append(e.stores, storeID)
	return models.SyncResult{}, nil
}

func (e *recordingEngine) Pause()       { e.paused.Store(true) }
func (e *recordingEngine) Resume()      { e.paused.Store(false) }
func (e *recordingEngine) Paused() bool { return e.paused.Load() }

func (e *recordingEngine) ClearQueue(context.Context, string) error { return nil }
func (e *recordingEngine) QueueCount(context.Context, string) (int, error) {
	return 0, nil
}
func (e *recordingEngine) Status(context.Context, string) models.SyncStatus {
	return models.SyncStatus{}
}

func (e *recordingEngine) drains() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.stores)
}

func TestTrigger_OnlineTransitionDrainsAfterDebounce(t *testing.T) {
	engine := &recordingEngine{}
	monitor := NewConnectivityMonitor(nil, logger.Nop())

	trigger := NewTriggerController(engine, monitor, time.Hour, 20*time.Millisecond, logger.Nop())
	trigger.Start(context.Background(), "store-1")
	defer trigger.Stop()

	monitor.SetOnline(true)

	assert.Eventually(t, func() bool { return engine.drains() == 1 },
		2*time.Second, 5*time.Millisecond)
}

func TestTrigger_OfflineDuringDebounceCancelsDrain(t *testing.T) {
	engine := &recordingEngine{}
	monitor := NewConnectivityMonitor(nil, logger.Nop())

	trigger := NewTriggerController(engine, monitor, time.Hour, 80*time.Millisecond, logger.Nop())
	trigger.Start(context.Background(), "store-1")
	defer trigger.Stop()

	monitor.SetOnline(true)
	time.Sleep(20 * time.Millisecond) // inside the debounce window
	monitor.SetOnline(false)

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, engine.drains())
}

func TestTrigger_ReconnectRestartsDebounce(t *testing.T) {
	engine := &recordingEngine{}
	monitor := NewConnectivityMonitor(nil, logger.Nop())

	trigger := NewTriggerController(engine, monitor, time.Hour, 50*time.Millisecond, logger.Nop())
	trigger.Start(context.Background(), "store-1")
	defer trigger.Stop()

	// flap: online, offline, online again — only the last transition drains
	monitor.SetOnline(true)
	time.Sleep(10 * time.Millisecond)
	monitor.SetOnline(false)
	time.Sleep(10 * time.Millisecond)
	monitor.SetOnline(true)

	assert.Eventually(t, func() bool { return engine.drains() == 1 },
		2*time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, engine.drains())
}

func TestTrigger_PeriodicTickDrainsWhileOnline(t *testing.T) {
	engine := &recordingEngine{}
	monitor := NewConnectivityMonitor(nil, logger.Nop())
	monitor.SetOnline(true)

	trigger := NewTriggerController(engine, monitor, 20*time.Millisecond, time.Hour, logger.Nop())
	trigger.Start(context.Background(), "store-1")
	defer trigger.Stop()

	assert.Eventually(t, func() bool { return engine.drains() >= 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestTrigger_TickSkippedWhileOffline(t *testing.T) {
	engine := &recordingEngine{}
	monitor := NewConnectivityMonitor(nil, logger.Nop())

	trigger := NewTriggerController(engine, monitor, 15*time.Millisecond, time.Hour, logger.Nop())
	trigger.Start(context.Background(), "store-1")
	defer trigger.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, engine.drains())
}

func TestTrigger_TickSkippedWhilePaused(t *testing.T) {
	engine := &recordingEngine{}
	engine.Pause()
	monitor := NewConnectivityMonitor(nil, logger.Nop())
	monitor.SetOnline(true)

	trigger := NewTriggerController(engine, monitor, 15*time.Millisecond, time.Hour, logger.Nop())
	trigger.Start(context.Background(), "store-1")
	defer trigger.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, engine.drains())
}

func TestTrigger_StopIsIdempotent(t *testing.T) {
	engine := &recordingEngine{}
	monitor := NewConnectivityMonitor(nil, logger.Nop())

	trigger := NewTriggerController(engine, monitor, time.Hour, time.Hour, logger.Nop())
	trigger.Start(context.Background(), "store-1")

	trigger.Stop()
	trigger.Stop()
}
