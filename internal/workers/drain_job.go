package workers

import (
	"context"
	"sync"
	"time"
)

// DrainJob calls the queue drain on a ticker, as a safety net on top of the
// event-driven connectivity monitor. The job is idle until Start is called.
type DrainJob struct {
	drain    func(context.Context)
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDrainJob(drain func(context.Context), interval time.Duration) *DrainJob {
	return &DrainJob{drain: drain, interval: interval}
}

// Run implements Worker.
func (j *DrainJob) Run() {
	j.Start(context.Background())
}

// Start stops any previously running job, then launches a background
// goroutine that drains every interval. If the interval is zero or negative
// it defaults to 5 minutes. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *DrainJob) Start(ctx context.Context) {
	interval := j.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.drain(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *DrainJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
