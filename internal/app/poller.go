package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/buildboard/buildboard/internal/state"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// FetchFunc loads one fresh value for a Poller.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Poller refreshes a state.Cache every Interval. A result that arrives after
// Stop is discarded.
type Poller[T any] struct {
	Name  string
	Fetch FetchFunc[T]
	Cache *state.Cache[T]
	// Interval is the wait between fetches. With Backoff unset it is exact,
	// failures included.
	Interval time.Duration
	// Backoff doubles the wait per consecutive failure, up to maxBackoff.
	Backoff bool
	Logger  *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start launches the refresh loop, fetching once immediately. It is a no-op
// when the poller is already running.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.gen++
	gen := p.gen

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(loopCtx, gen)
	}()
}

// Stop cancels the loop and any in-flight fetch. Once Stop returns the cache
// is no longer written by this run.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.gen++
}

// Running reports whether Start has been called without a matching Stop.
func (p *Poller[T]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Run starts the poller and blocks until ctx is done.
func (p *Poller[T]) Run(ctx context.Context) error {
	p.Start(ctx)
	<-ctx.Done()
	p.Stop()
	p.Wait()
	return nil
}

// Wait blocks until every loop started so far has exited.
func (p *Poller[T]) Wait() {
	p.wg.Wait()
}

func (p *Poller[T]) loop(ctx context.Context, gen uint64) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	for {
		failures := p.refresh(ctx, gen)
		timer := time.NewTimer(p.nextWait(failures, interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// refresh fetches once and applies the result if gen is still current. It
// returns the cache's consecutive failure count.
func (p *Poller[T]) refresh(ctx context.Context, gen uint64) int {
	value, err := p.Fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return 0
	}
	p.Cache.Update(value, err)
	if err != nil {
		p.logger().Warn("poll failed", "poller", p.Name, "error", err)
	}
	return p.Cache.Snapshot().ConsecutiveFailures
}

func (p *Poller[T]) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Poller[T]) nextWait(failures int, interval time.Duration) time.Duration {
	if !p.Backoff {
		return interval
	}
	return calculateBackoff(failures, interval)
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff. Intervals already longer than the cap are left alone.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 || interval >= maxBackoff {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
