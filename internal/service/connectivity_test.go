package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/mock"
)

func TestConnectivity_StartsOffline(t *testing.T) {
	m := NewConnectivityMonitor(nil, logger.Nop())
	assert.False(t, m.IsOnline())
}

func TestConnectivity_PublishesTransitions(t *testing.T) {
	m := NewConnectivityMonitor(nil, logger.Nop())

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.SetOnline(true)

	select {
	case online := <-events:
		assert.True(t, online)
	case <-time.After(time.Second):
		t.Fatal("expected an online event")
	}

	m.SetOnline(false)

	select {
	case online := <-events:
		assert.False(t, online)
	case <-time.After(time.Second):
		t.Fatal("expected an offline event")
	}
}

func TestConnectivity_SameStateIsSilent(t *testing.T) {
	m := NewConnectivityMonitor(nil, logger.Nop())

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.SetOnline(false) // already offline

	select {
	case <-events:
		t.Fatal("no event expected for a repeated state")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectivity_UnsubscribeClosesChannel(t *testing.T) {
	m := NewConnectivityMonitor(nil, logger.Nop())

	events, unsubscribe := m.Subscribe()
	unsubscribe()

	_, ok := <-events
	assert.False(t, ok)

	// publishing after unsubscribe must not panic
	m.SetOnline(true)
}

func TestConnectivity_ProbeFlipsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteService(ctrl)

	// first probe fails, subsequent ones succeed
	failed := remote.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("unreachable"))
	remote.EXPECT().Ping(gomock.Any()).Return(nil).MinTimes(1).After(failed)

	m := NewConnectivityMonitor(remote, logger.Nop())

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.RunProbe(ctx, 10*time.Millisecond)
	}()

	select {
	case online := <-events:
		assert.True(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the probe to bring the monitor online")
	}

	require.True(t, m.IsOnline())

	cancel()
	<-done
}
