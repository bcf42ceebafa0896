package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mooncircle/mooncircle/internal/domain/event"
	"github.com/mooncircle/mooncircle/internal/observability"
)

const eventColumns = `id, title, start_at, location, description, duration, spots_total, spots_taken, image, created_at, updated_at`

type EventsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{pool: pool, prom: prom}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event

	err := row.Scan(&e.ID, &e.Title, &e.StartAt, &e.Location, &e.Description, &e.Duration,
		&e.SpotsTotal, &e.SpotsTaken, &e.Image, &e.CreatedAt, &e.UpdatedAt)

	return e, err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var e event.Event

	err := r.observe("events.get_by_id", func() error {
		var scanErr error
		e, scanErr = scanEvent(r.pool.QueryRow(ctx,
			`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// ListUpcoming returns events starting after now, soonest first.
func (r *EventsRepo) ListUpcoming(ctx context.Context, now time.Time) ([]event.Event, error) {
	return r.list(ctx, "events.list_upcoming",
		`SELECT `+eventColumns+` FROM events WHERE start_at > $1 ORDER BY start_at ASC, id ASC`, now)
}

// ListPast returns events already started, most recent first.
func (r *EventsRepo) ListPast(ctx context.Context, now time.Time) ([]event.Event, error) {
	return r.list(ctx, "events.list_past",
		`SELECT `+eventColumns+` FROM events WHERE start_at <= $1 ORDER BY start_at DESC, id ASC`, now)
}

func (r *EventsRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]event.Event, error) {
	var rows pgx.Rows

	err := r.observe(op, func() error {
		var qErr error
		rows, qErr = r.pool.Query(ctx, query, args...)
		return qErr
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]event.Event, 0)

	for rows.Next() {
		e, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, e)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return out, nil
}

// NextUpcoming returns the soonest future event, or event.ErrNotFound when
// nothing is scheduled.
func (r *EventsRepo) NextUpcoming(ctx context.Context, now time.Time) (event.Event, error) {
	var e event.Event

	err := r.observe("events.next_upcoming", func() error {
		var scanErr error
		e, scanErr = scanEvent(r.pool.QueryRow(ctx,
			`SELECT `+eventColumns+` FROM events WHERE start_at > $1 ORDER BY start_at ASC, id ASC LIMIT 1`, now))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// Create inserts an event row; used by the seed step, events are otherwise
// managed out of band.
func (r *EventsRepo) Create(ctx context.Context, e event.Event) error {
	return r.observe("events.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO events(`+eventColumns+`) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			e.ID, e.Title, e.StartAt, e.Location, e.Description, e.Duration,
			e.SpotsTotal, e.SpotsTaken, e.Image, e.CreatedAt, e.UpdatedAt)
		return err
	})
}

// Count is used by the seed step to keep reruns idempotent.
func (r *EventsRepo) Count(ctx context.Context) (int, error) {
	var total int

	err := r.observe("events.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total)
	})

	return total, err
}
