// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

// connectivityMonitor is an event-channel implementation of
// [ConnectivityMonitor]. State changes arrive either from the health probe
// loop or from an explicit SetOnline call; only actual transitions are
// published, repeated probes of the same state are silent.
type connectivityMonitor struct {
	remote adapter.RemoteService
	logger *logger.Logger

	mu          sync.Mutex
	online      bool
	nextID      int
	subscribers map[int]chan bool
}

// NewConnectivityMonitor constructs a monitor that starts offline; the
// first successful probe (or an explicit SetOnline) flips it.
func NewConnectivityMonitor(remote adapter.RemoteService, logger *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		remote:      remote,
		logger:      logger,
		subscribers: make(map[int]chan bool),
	}
}

// IsOnline implements [ConnectivityMonitor].
func (m *connectivityMonitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline implements [ConnectivityMonitor]. Subscriber channels are
// buffered; a subscriber that has not consumed the previous event misses
// the intermediate state but always observes the latest one on next read.
func (m *connectivityMonitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	subscribers := make([]chan bool, 0, len(m.subscribers))
	for _, ch := range m.subscribers {
		subscribers = append(subscribers, ch)
	}
	m.mu.Unlock()

	m.logger.Info().
		Str("func", "connectivityMonitor.SetOnline").
		Bool("online", online).
		Msg("connectivity transition")

	for _, ch := range subscribers {
		select {
		case ch <- online:
		default:
			// subscriber is lagging; it will read current state next time
		}
	}
}

// Subscribe implements [ConnectivityMonitor].
func (m *connectivityMonitor) Subscribe() (<-chan bool, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	ch := make(chan bool, 1)
	m.subscribers[id] = ch

	unsubscribe := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// RunProbe implements [ConnectivityMonitor]. Each tick pings the remote
// health endpoint with a budget of the probe interval itself, so a hung
// probe cannot pile up.
func (m *connectivityMonitor) RunProbe(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		m.SetOnline(m.remote.Ping(probeCtx) == nil)
	}

	probe()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			probe()
		}
	}
}
