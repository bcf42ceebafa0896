package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mooncircle/mooncircle/internal/domain/contact"
	"github.com/mooncircle/mooncircle/internal/observability"
)

type ContactRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewContactRepo(pool *pgxpool.Pool, prom *observability.Prom) *ContactRepo {
	return &ContactRepo{pool: pool, prom: prom}
}

func (repo *ContactRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create appends a contact message. No duplicate or capacity rules apply,
// a single insert is the whole commit.
func (repo *ContactRepo) Create(ctx context.Context, req contact.CreateMessageRequest) (msg contact.Message, err error) {
	msg = contact.NewFromCreateRequest(req)

	err = repo.observe("contact.create", func() error {
		_, e := repo.pool.Exec(ctx, `
			INSERT INTO contact_messages (id, name, email, phone, topics, message, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, msg.ID, msg.Name, msg.Email, msg.Phone, contact.JoinTopics(msg.Topics), msg.Message, msg.CreatedAt)
		return e
	})

	if err != nil {
		msg = contact.Message{}
		return
	}

	return
}

func (repo *ContactRepo) GetByID(ctx context.Context, id string) (msg contact.Message, err error) {
	var topics string

	err = repo.observe("contact.get_by_id", func() error {
		return repo.pool.QueryRow(ctx, `
			SELECT id, name, email, phone, topics, message, created_at
			FROM contact_messages
			WHERE id = $1
		`, id).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Phone, &topics, &msg.Message, &msg.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = contact.ErrNotFound
		}
		msg = contact.Message{}
		return
	}

	msg.Topics = contact.SplitTopics(topics)
	return
}
