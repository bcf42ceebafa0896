// Package cached wraps the event read path in a short-lived cache for the
// public pages.
package cached

import (
	"context"
	"time"

	"github.com/mooncircle/mooncircle/internal/cache"
	"github.com/mooncircle/mooncircle/internal/domain/event"
)

type EventReader interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]event.Event, error)
	ListPast(ctx context.Context, now time.Time) ([]event.Event, error)
	NextUpcoming(ctx context.Context, now time.Time) (event.Event, error)
}

// Events caches the list queries; GetByID always goes to storage because the
// detail page renders seat counts right after a registration attempt.
type Events struct {
	inner EventReader
	lists *cache.Cache[[]event.Event]
	next  *cache.Cache[event.Event]
}

func NewEvents(inner EventReader, ttl time.Duration) *Events {
	return &Events{
		inner: inner,
		lists: cache.New[[]event.Event](ttl),
		next:  cache.New[event.Event](ttl),
	}
}

func (e *Events) GetByID(ctx context.Context, id string) (event.Event, error) {
	return e.inner.GetByID(ctx, id)
}

func (e *Events) ListUpcoming(ctx context.Context, now time.Time) ([]event.Event, error) {
	return e.list(ctx, "events:upcoming:v1", e.inner.ListUpcoming, now)
}

func (e *Events) ListPast(ctx context.Context, now time.Time) ([]event.Event, error) {
	return e.list(ctx, "events:past:v1", e.inner.ListPast, now)
}

func (e *Events) NextUpcoming(ctx context.Context, now time.Time) (event.Event, error) {
	const key = "events:next:v1"

	if hit, ok := e.next.Get(key); ok {
		return hit, nil
	}

	ev, err := e.inner.NextUpcoming(ctx, now)
	if err != nil {
		// event.ErrNotFound included: an empty calendar is cheap to re-ask
		return event.Event{}, err
	}

	e.next.Set(key, ev)
	return ev, nil
}

func (e *Events) list(ctx context.Context, key string, fetch func(context.Context, time.Time) ([]event.Event, error), now time.Time) ([]event.Event, error) {
	if hit, ok := e.lists.Get(key); ok {
		return hit, nil
	}

	events, err := fetch(ctx, now)
	if err != nil {
		return nil, err
	}

	e.lists.Set(key, events)
	return events, nil
}
