package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mooncircle/mooncircle/internal/domain/event"
	"github.com/mooncircle/mooncircle/internal/domain/registration"
	"github.com/mooncircle/mooncircle/internal/observability"
	"github.com/mooncircle/mooncircle/internal/utils"
)

type RegistrationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRegistrationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{pool: pool, prom: prom}
}

func (repo *RegistrationsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// CreateTx performs the whole check-then-write sequence inside the given
// transaction: lock the event row, re-validate capacity and uniqueness
// against the fresh row, insert the registration and bump the seat counter.
// Both writes commit or roll back together.
func (repo *RegistrationsRepo) CreateTx(ctx context.Context, tx pgx.Tx, req registration.CreateRegistrationRequest) (reg registration.Registration, err error) {
	// 1) lock event row and reload the counters
	var spotsTotal, spotsTaken int

	err = repo.observe("registrations.create_tx.event_lock", func() error {
		return tx.QueryRow(ctx, `
			SELECT spots_total, spots_taken
			FROM events
			WHERE id = $1
			FOR UPDATE
		`, req.EventID).Scan(&spotsTotal, &spotsTaken)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = event.ErrNotFound
		}
		return
	}

	// 2) full check against the just-read counters
	if spotsTaken >= spotsTotal {
		err = registration.ErrEventFull
		return
	}

	// 3) one registration per (event, email)
	var exists bool

	err = repo.observe("registrations.create_tx.duplicate_check", func() error {
		return tx.QueryRow(ctx, `SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND email = $2
		)`, req.EventID, req.Email).Scan(&exists)
	})

	if err != nil {
		return
	}

	if exists {
		err = registration.ErrAlreadyRegistered
		return
	}

	// 4) insert + conditional seat increment
	reg = registration.NewFromCreateRequest(req)

	err = repo.observe("registrations.create_tx.insert", func() error {
		_, e := tx.Exec(ctx, `
			INSERT INTO registrations (id, event_id, name, email, phone, message, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, reg.ID, reg.EventID, reg.Name, reg.Email, reg.Phone, reg.Message, reg.CreatedAt)
		return e
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "registrations_event_email_uniq" {
			err = registration.ErrAlreadyRegistered
		}
		reg = registration.Registration{}
		return
	}

	// the guard keeps spots_taken <= spots_total even if two commits race
	// past the FOR UPDATE somehow; zero rows means the event filled up
	var tag pgconn.CommandTag

	err = repo.observe("registrations.create_tx.seat_increment", func() error {
		var e error
		tag, e = tx.Exec(ctx, `
			UPDATE events
			SET spots_taken = spots_taken + 1, updated_at = NOW()
			WHERE id = $1 AND spots_taken < spots_total
		`, req.EventID)
		return e
	})

	if err != nil {
		reg = registration.Registration{}
		return
	}

	if tag.RowsAffected() == 0 {
		reg = registration.Registration{}
		err = registration.ErrEventFull
		return
	}

	return
}

// Create runs CreateTx in its own transaction. Every call begins fresh, so a
// caller retrying after a transient failure re-reads the event state.
func (repo *RegistrationsRepo) Create(ctx context.Context, req registration.CreateRegistrationRequest) (reg registration.Registration, err error) {
	tx, err := repo.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	reg, err = repo.CreateTx(ctx, tx, req)

	if err != nil {
		return
	}

	err = tx.Commit(ctx)

	if err != nil {
		reg = registration.Registration{}
		return
	}

	return
}

func (repo *RegistrationsRepo) GetByID(ctx context.Context, id string) (found registration.Registration, err error) {
	err = repo.observe("registrations.get_by_id", func() error {
		return repo.pool.QueryRow(ctx, `
			SELECT id, event_id, name, email, phone, message, created_at
			FROM registrations
			WHERE id = $1
		`, id).Scan(&found.ID, &found.EventID, &found.Name, &found.Email, &found.Phone, &found.Message, &found.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = registration.ErrNotFound
		}
		found = registration.Registration{}
		return
	}

	return
}

// ListRecent backs the admin debug listing, newest first. A non-nil cursor
// resumes strictly after the (created_at, id) position of the previous page.
func (repo *RegistrationsRepo) ListRecent(ctx context.Context, after *utils.RegistrationCursor, limit int) (regs []registration.Registration, err error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, event_id, name, email, phone, message, created_at
		FROM registrations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	args := []interface{}{limit}

	if after != nil {
		query = `
			SELECT id, event_id, name, email, phone, message, created_at
			FROM registrations
			WHERE (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`
		args = append(args, after.CreatedAt, after.ID)
	}

	var rows pgx.Rows

	err = repo.observe("registrations.list_recent", func() error {
		var qErr error
		rows, qErr = repo.pool.Query(ctx, query, args...)
		return qErr
	})

	if err != nil {
		return
	}

	defer rows.Close()

	regs = make([]registration.Registration, 0, limit)

	for rows.Next() {
		var r registration.Registration

		scanErr := rows.Scan(&r.ID, &r.EventID, &r.Name, &r.Email, &r.Phone, &r.Message, &r.CreatedAt)
		if scanErr != nil {
			err = scanErr
			return
		}
		regs = append(regs, r)
	}

	err = rows.Err()
	return
}
