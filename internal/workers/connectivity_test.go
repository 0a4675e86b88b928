package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivanblancs/weave-sync/internal/logger"
)

// spyDrain counts drain invocations.
type spyDrain struct {
	calls atomic.Int64
}

func (d *spyDrain) drain(context.Context) {
	d.calls.Add(1)
}

func waitForCalls(t *testing.T, counter *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if counter.Load() >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, want, counter.Load())
}

// ── transitions ──────────────────────────────────────────────────────────────

func TestConnectivityMonitor_OfflineToOnlineTriggersOneDrain(t *testing.T) {
	events := make(chan bool)
	spy := &spyDrain{}
	m := NewConnectivityMonitor(events, false, spy.drain, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	events <- true
	waitForCalls(t, &spy.calls, 1)

	// Staying online produces no further drains.
	events <- true
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), spy.calls.Load())
}

func TestConnectivityMonitor_GoingOfflineHasNoSideEffect(t *testing.T) {
	events := make(chan bool)
	spy := &spyDrain{}
	m := NewConnectivityMonitor(events, true, spy.drain, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	events <- false
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), spy.calls.Load())
	assert.False(t, m.Online())
}

func TestConnectivityMonitor_InitiallyOnlineDoesNotDrainOnFirstOnlineEvent(t *testing.T) {
	events := make(chan bool)
	spy := &spyDrain{}
	m := NewConnectivityMonitor(events, true, spy.drain, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	// Already online at startup: the first online sample is not a
	// transition.
	events <- true
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestConnectivityMonitor_FlappingDrainsOncePerTransition(t *testing.T) {
	events := make(chan bool)
	spy := &spyDrain{}
	m := NewConnectivityMonitor(events, false, spy.drain, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	for i := 0; i < 3; i++ {
		events <- true
		events <- false
	}
	events <- true

	waitForCalls(t, &spy.calls, 4)
}

// ── lifecycle ────────────────────────────────────────────────────────────────

func TestConnectivityMonitor_StopBeforeStart_NoPanic(t *testing.T) {
	m := NewConnectivityMonitor(make(chan bool), false, func(context.Context) {}, logger.Nop())
	assert.NotPanics(t, m.Stop)
}

func TestConnectivityMonitor_DoubleStop_NoPanic(t *testing.T) {
	m := NewConnectivityMonitor(make(chan bool), false, func(context.Context) {}, logger.Nop())
	m.Start(context.Background())
	m.Stop()
	assert.NotPanics(t, m.Stop)
}

func TestConnectivityMonitor_StopWaitsForDrain(t *testing.T) {
	events := make(chan bool)
	done := make(chan struct{})
	finished := atomic.Bool{}

	m := NewConnectivityMonitor(events, false, func(context.Context) {
		<-done
		finished.Store(true)
	}, logger.Nop())
	m.Start(context.Background())

	events <- true
	time.Sleep(10 * time.Millisecond)
	close(done)
	m.Stop()

	assert.True(t, finished.Load(), "Stop must wait for the in-flight drain")
}

// ── probe ────────────────────────────────────────────────────────────────────

func TestConnectivityProbe_EmitsCheckResults(t *testing.T) {
	online := atomic.Bool{}
	p := NewConnectivityProbe(func(context.Context) bool {
		return online.Load()
	}, 5*time.Millisecond, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	select {
	case got := <-p.Events():
		assert.False(t, got)
	case <-time.After(time.Second):
		t.Fatal("probe emitted nothing")
	}

	online.Store(true)
	deadline := time.After(time.Second)
	for {
		select {
		case got := <-p.Events():
			if got {
				return
			}
		case <-deadline:
			t.Fatal("probe never reported online")
		}
	}
}

func TestConnectivityProbe_FeedsMonitor(t *testing.T) {
	online := atomic.Bool{}
	p := NewConnectivityProbe(func(context.Context) bool {
		return online.Load()
	}, 5*time.Millisecond, logger.Nop())

	spy := &spyDrain{}
	m := NewConnectivityMonitor(p.Events(), false, spy.drain, logger.Nop())

	p.Start(context.Background())
	m.Start(context.Background())
	defer m.Stop()
	defer p.Stop()

	online.Store(true)
	waitForCalls(t, &spy.calls, 1)
}
