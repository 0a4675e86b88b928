package workers

import (
	"context"
	"sync"

	"github.com/Ivanblancs/weave-sync/internal/logger"
)

// ConnectivityMonitor is a two-state machine (offline, online) driven by a
// boolean event source. Every offline-to-online transition triggers exactly
// one queue drain; going offline has no side effect, in-flight syncs are
// left to fail naturally. There is no debounce: rapid flapping produces one
// drain per transition into online, and drains may overlap.
type ConnectivityMonitor struct {
	events <-chan bool
	drain  func(context.Context)
	logger *logger.Logger

	mu     sync.Mutex
	online bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityMonitor builds a monitor over the given event source.
// initiallyOnline mirrors the environment state at startup.
func NewConnectivityMonitor(events <-chan bool, initiallyOnline bool, drain func(context.Context), log *logger.Logger) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		events: events,
		drain:  drain,
		logger: log,
		online: initiallyOnline,
	}
}

// Run implements Worker. It starts the monitor with a background context.
func (m *ConnectivityMonitor) Run() {
	m.Start(context.Background())
}

// Start launches the monitor loop. It stops any previously running loop
// first. The loop exits when ctx is cancelled or Stop is called.
func (m *ConnectivityMonitor) Start(ctx context.Context) {
	m.Stop()

	m.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-loopCtx.Done():
				return
			case online, ok := <-m.events:
				if !ok {
					return
				}
				m.transition(loopCtx, online)
			}
		}
	}()
}

// Stop cancels the monitor loop and blocks until it, and any drain it
// started, has exited. Safe to call when the monitor is not running.
func (m *ConnectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Online reports the last observed connectivity state.
func (m *ConnectivityMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *ConnectivityMonitor) transition(ctx context.Context, online bool) {
	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	m.mu.Unlock()

	if !online || wasOnline {
		return
	}

	m.logger.Info().
		Str("func", "ConnectivityMonitor.transition").
		Msg("back online, draining pending records")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.drain(ctx)
	}()
}
