package janitor

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeBoard implements Board for tests.
type fakeBoard struct {
	mu      sync.Mutex
	removed int
	calls   int
	lastNow time.Time
}

func (f *fakeBoard) PruneExpired(_ context.Context, now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastNow = now
	return f.removed
}

func (f *fakeBoard) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestJanitorRunCycle(t *testing.T) {
	fb := &fakeBoard{removed: 3}
	j := New(fb, Config{Interval: time.Hour})
	j.runCycle(context.Background())
	if fb.callCount() != 1 {
		t.Fatalf("expected one prune call, got %d", fb.calls)
	}
	if fb.lastNow.IsZero() {
		t.Fatal("prune must receive a real now")
	}
}

func TestJanitorTicksAndStops(t *testing.T) {
	fb := &fakeBoard{}
	j := New(fb, Config{Interval: 5 * time.Millisecond})
	j.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for fb.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatal("janitor never ticked")
		case <-time.After(time.Millisecond):
		}
	}

	j.Stop() // must not hang
	calls := fb.callCount()
	time.Sleep(20 * time.Millisecond)
	if fb.callCount() != calls {
		t.Fatal("janitor kept pruning after Stop")
	}
}

func TestJanitorStopOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	j := New(&fakeBoard{}, Config{Interval: time.Millisecond})
	j.Start(ctx)
	cancel()

	select {
	case <-j.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not exit on context cancel")
	}
}

func TestJanitorStartTwiceIsNoop(t *testing.T) {
	j := New(&fakeBoard{}, Config{Interval: time.Hour})
	ctx := context.Background()
	j.Start(ctx)
	j.Start(ctx) // second Start must not spawn another loop
	j.Stop()
}

func TestJanitorDefaultInterval(t *testing.T) {
	j := New(&fakeBoard{}, Config{})
	if j.cfg.Interval != time.Second {
		t.Fatalf("default interval = %v, want 1s", j.cfg.Interval)
	}
}
