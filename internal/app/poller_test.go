package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/buildboard/buildboard/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_LongInterval(t *testing.T) {
	if got := calculateBackoff(3, 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("calculateBackoff(3, 5m) = %v, want 5m", got)
	}
}

func TestPollerNextWait(t *testing.T) {
	fixed := &Poller[int]{}
	if got := fixed.nextWait(5, 10*time.Second); got != 10*time.Second {
		t.Fatalf("fixed nextWait(5, 10s) = %v, want 10s", got)
	}
	backoff := &Poller[int]{Backoff: true}
	if got := backoff.nextWait(1, 10*time.Second); got != 20*time.Second {
		t.Fatalf("backoff nextWait(1, 10s) = %v, want 20s", got)
	}
}

func TestPollerKeepsIntervalWhileFailing(t *testing.T) {
	cache := &state.Cache[int]{}
	var calls atomic.Int32
	p := &Poller[int]{
		Name:     "count",
		Cache:    cache,
		Interval: 5 * time.Millisecond,
		Fetch: func(context.Context) (int, error) {
			calls.Add(1)
			return 0, errors.New("down")
		},
	}
	p.Start(context.Background())
	defer p.Wait()
	defer p.Stop()

	// Doubling from 5ms would allow only a handful of calls in this window.
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 12 {
		if time.Now().After(deadline) {
			t.Fatalf("fetches = %d, want at least 12 at a fixed 5ms period", calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPollerFetchesImmediately(t *testing.T) {
	cache := &state.Cache[int]{}
	fetched := make(chan struct{}, 1)
	p := &Poller[int]{
		Name:     "count",
		Cache:    cache,
		Interval: time.Hour,
		Fetch: func(context.Context) (int, error) {
			select {
			case fetched <- struct{}{}:
			default:
			}
			return 42, nil
		},
	}
	p.Start(context.Background())
	<-fetched
	p.Stop()
	p.Wait()

	snap := cache.Snapshot()
	if !snap.HasValue || snap.Value != 42 {
		t.Fatalf("snapshot = %+v, want value 42", snap)
	}
	if p.Running() {
		t.Fatal("Running() = true after Stop")
	}
}

func TestPollerDiscardsResultAfterStop(t *testing.T) {
	cache := &state.Cache[int]{}
	entered := make(chan struct{})
	release := make(chan struct{})
	p := &Poller[int]{
		Cache:    cache,
		Interval: time.Hour,
		Fetch: func(context.Context) (int, error) {
			close(entered)
			<-release
			return 7, nil
		},
	}
	p.Start(context.Background())
	<-entered
	p.Stop()
	close(release)
	p.Wait()

	if snap := cache.Snapshot(); snap.HasValue {
		t.Fatalf("cache updated after Stop: %+v", snap)
	}
}

func TestPollerKeepsValueOnFailure(t *testing.T) {
	cache := &state.Cache[int]{}
	cache.Set(3)
	done := make(chan struct{})
	p := &Poller[int]{
		Cache:    cache,
		Interval: time.Hour,
		Fetch: func(context.Context) (int, error) {
			defer close(done)
			return 0, errors.New("backend down")
		},
	}
	p.Start(context.Background())
	<-done
	p.Stop()
	p.Wait()

	snap := cache.Snapshot()
	if snap.Value != 3 || !snap.Failed() {
		t.Fatalf("snapshot = %+v, want previous value with error", snap)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	first := make(chan struct{}, 4)
	p := &Poller[int]{
		Cache:    &state.Cache[int]{},
		Interval: time.Hour,
		Fetch: func(context.Context) (int, error) {
			calls.Add(1)
			first <- struct{}{}
			return 1, nil
		},
	}
	ctx := context.Background()
	p.Start(ctx)
	p.Start(ctx)
	<-first
	p.Stop()
	p.Wait()
	if got := calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
}

func TestPollerRunReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller[int]{
		Cache:    &state.Cache[int]{},
		Interval: time.Hour,
		Fetch:    func(context.Context) (int, error) { return 1, nil },
	}
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
