package shutdown

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestShutdownRunsAllCallbacks(t *testing.T) {
	var ran int32
	m := NewManager()
	for i := 0; i < 3; i++ {
		m.OnShutdown(func(context.Context) {
			atomic.AddInt32(&ran, 1)
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Shutdown(ctx)

	if got := atomic.LoadInt32(&ran); got != 3 {
		t.Fatalf("ran %d callbacks, want 3", got)
	}
}

func TestShutdownHonorsDeadline(t *testing.T) {
	m := NewManager()
	m.OnShutdown(func(ctx context.Context) {
		<-ctx.Done() // never volunteers to finish
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	m.Shutdown(ctx)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("shutdown blocked for %v past the deadline", elapsed)
	}
}

func TestShutdownWithNoCallbacks(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	m.Shutdown(ctx) // must return immediately
}
