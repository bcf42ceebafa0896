// Package notify runs best-effort background work, mainly outbound mail.
// Tasks are fire-and-forget: the enqueuing request never waits on them and
// a failed task is only logged.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type task struct {
	kind string
	fn   func(ctx context.Context) error
}

type Dispatcher struct {
	log   *slog.Logger
	tasks chan task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts workers goroutines draining a buffer-sized queue.
func NewDispatcher(log *slog.Logger, workers, buffer int) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	if buffer <= 0 {
		buffer = 64
	}

	d := &Dispatcher{
		log:   log,
		tasks: make(chan task, buffer),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for t := range d.tasks {
		start := time.Now()

		// tasks outlive the originating request on purpose
		err := t.fn(context.Background())

		if err != nil {
			d.log.Error("background task failed",
				"kind", t.kind,
				"err", err,
				"took_ms", time.Since(start).Milliseconds(),
			)
			continue
		}

		d.log.Debug("background task done",
			"kind", t.kind,
			"took_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Enqueue hands a task to the pool without blocking. When the queue is full
// or the dispatcher already closed the task is dropped and logged; that is
// the contract, not an error the caller can act on.
func (d *Dispatcher) Enqueue(kind string, fn func(ctx context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.log.Warn("background task dropped, dispatcher closed", "kind", kind)
		return
	}

	select {
	case d.tasks <- task{kind: kind, fn: fn}:
	default:
		d.log.Warn("background task dropped, queue full", "kind", kind)
	}
}

// Close stops accepting work and waits for in-flight tasks until ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
