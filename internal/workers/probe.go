package workers

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/Ivanblancs/weave-sync/internal/logger"
)

// ConnectivityProbe adapts a reachability check into the boolean event
// stream the monitor consumes. It emits the check result every interval;
// the monitor itself deduplicates non-transitions.
type ConnectivityProbe struct {
	check    func(context.Context) bool
	interval time.Duration
	events   chan bool
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityProbe builds a probe over the given check. If interval is
// zero or negative it defaults to 30 seconds.
func NewConnectivityProbe(check func(context.Context) bool, interval time.Duration, log *logger.Logger) *ConnectivityProbe {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &ConnectivityProbe{
		check:    check,
		interval: interval,
		events:   make(chan bool, 1),
		logger:   log,
	}
}

// TCPCheck returns a reachability check that dials the given host:port.
func TCPCheck(address string, timeout time.Duration) func(context.Context) bool {
	dialer := &net.Dialer{Timeout: timeout}
	return func(ctx context.Context) bool {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}
}

// Events is the stream the connectivity monitor listens on.
func (p *ConnectivityProbe) Events() <-chan bool {
	return p.events
}

// Run implements Worker.
func (p *ConnectivityProbe) Run() {
	p.Start(context.Background())
}

// Start launches the probe loop, stopping any previous one first.
func (p *ConnectivityProbe) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				online := p.check(loopCtx)
				select {
				case p.events <- online:
				case <-loopCtx.Done():
					return
				default:
					// Monitor is behind; drop the sample, the next tick
					// carries fresher state anyway.
				}
			}
		}
	}()
}

// Stop cancels the probe loop and blocks until it has exited.
func (p *ConnectivityProbe) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
