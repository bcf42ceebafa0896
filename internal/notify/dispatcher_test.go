package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherRunsTasks(t *testing.T) {
	d := NewDispatcher(testLogger(), 2, 8)

	var ran atomic.Int32

	for i := 0; i < 5; i++ {
		d.Enqueue("test", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := ran.Load(); got != 5 {
		t.Fatalf("expected 5 tasks run, got %d", got)
	}
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	d := NewDispatcher(testLogger(), 1, 8)

	var after atomic.Bool

	d.Enqueue("failing", func(ctx context.Context) error {
		return errors.New("boom")
	})
	d.Enqueue("following", func(ctx context.Context) error {
		after.Store(true)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !after.Load() {
		t.Fatalf("worker stopped after a failed task")
	}
}

func TestDispatcherDropsWhenClosed(t *testing.T) {
	d := NewDispatcher(testLogger(), 1, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	// must not panic or block
	d.Enqueue("late", func(ctx context.Context) error { return nil })

	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
