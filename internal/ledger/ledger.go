// Package ledger owns the two write paths of the site: event registrations
// with seat accounting, and contact-message intake. Both run their storage
// commit under the same bounded retry, and both hand the committed record to
// the notification dispatcher best-effort.
package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mooncircle/mooncircle/internal/domain/contact"
	"github.com/mooncircle/mooncircle/internal/domain/event"
	"github.com/mooncircle/mooncircle/internal/domain/registration"
	"github.com/mooncircle/mooncircle/internal/i18n"
	"github.com/mooncircle/mooncircle/internal/notifications"
	"github.com/mooncircle/mooncircle/internal/observability"
	"github.com/mooncircle/mooncircle/internal/retry"
)

// ErrPersistence means every commit attempt failed transiently. The caller
// may tell the user to try again later; no partial write is left behind.
var ErrPersistence = errors.New("storage unavailable")

type EventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

type RegistrationStore interface {
	// Create must run the whole check-then-write sequence in one fresh
	// transaction per call, so every retry re-reads the event state.
	Create(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error)
}

type ContactStore interface {
	Create(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error)
}

type Dispatcher interface {
	Enqueue(kind string, fn func(ctx context.Context) error)
}

type Ledger struct {
	events        EventStore
	registrations RegistrationStore
	contacts      ContactStore

	notifier   notifications.Notifier
	dispatcher Dispatcher
	runner     *retry.Runner
	retryable  func(error) bool
	locale     *i18n.Locale
	log        *slog.Logger
	prom       *observability.Prom
}

type Config struct {
	Events        EventStore
	Registrations RegistrationStore
	Contacts      ContactStore
	Notifier      notifications.Notifier
	Dispatcher    Dispatcher
	// Retryable classifies transient storage errors; everything else is
	// surfaced immediately.
	Retryable func(error) bool
	// Runner overrides the default commit-retry runner; tests use it to
	// skip real backoff delays.
	Runner *retry.Runner
	Locale *i18n.Locale
	Log    *slog.Logger
	Prom   *observability.Prom
}

func New(cfg Config) *Ledger {
	runner := cfg.Runner
	if runner == nil {
		runner = retry.New(retry.DefaultPolicy(cfg.Retryable))
	}

	return &Ledger{
		events:        cfg.Events,
		registrations: cfg.Registrations,
		contacts:      cfg.Contacts,
		notifier:      cfg.Notifier,
		dispatcher:    cfg.Dispatcher,
		runner:        runner,
		retryable:     cfg.Retryable,
		locale:        cfg.Locale,
		log:           cfg.Log,
		prom:          cfg.Prom,
	}
}

// Register moves (eventID, participant) from Unregistered to Registered, or
// rejects with event.ErrNotFound, registration.ErrEventFull or
// registration.ErrAlreadyRegistered. Rejections never mutate anything; a
// success inserts exactly one row and takes exactly one seat.
func (l *Ledger) Register(ctx context.Context, eventID string, req registration.CreateRegistrationRequest) (registration.Registration, error) {
	req.EventID = eventID

	var reg registration.Registration
	var ev event.Event

	err := l.runner.Do(ctx, func(ctx context.Context) error {
		// fresh read every attempt: a just-filled event must reject as
		// Full on retry, not overbook
		e, err := l.events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}

		if e.IsFull() {
			return registration.ErrEventFull
		}

		r, err := l.registrations.Create(ctx, req)
		if err != nil {
			return err
		}

		ev = e
		reg = r
		return nil
	})

	if err != nil {
		l.countRegister(registerResult(err))

		if l.retryable != nil && l.retryable(err) {
			l.log.Error("registration commit retries exhausted", "event", eventID, "err", err)
			return registration.Registration{}, ErrPersistence
		}
		return registration.Registration{}, err
	}

	l.countRegister("ok")
	l.enqueueConfirmation(ev, reg)

	return reg, nil
}

// SubmitContact appends a contact message unconditionally under the same
// commit-retry discipline, then notifies best-effort.
func (l *Ledger) SubmitContact(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error) {
	var msg contact.Message

	err := l.runner.Do(ctx, func(ctx context.Context) error {
		m, err := l.contacts.Create(ctx, req)
		if err != nil {
			return err
		}

		msg = m
		return nil
	})

	if err != nil {
		if l.retryable != nil && l.retryable(err) {
			l.log.Error("contact commit retries exhausted", "err", err)
			return contact.Message{}, ErrPersistence
		}
		return contact.Message{}, err
	}

	l.enqueueReceipt(msg)

	return msg, nil
}

func (l *Ledger) enqueueConfirmation(ev event.Event, reg registration.Registration) {
	input := notifications.RegistrationConfirmation{
		RegistrationID: reg.ID,
		EventID:        ev.ID,
		EventTitle:     ev.Title,
		EventDate:      l.locale.FormatDateTime(ev.StartAt),
		EventLocation:  ev.Location,
		Name:           reg.Name,
		Email:          reg.Email,
	}

	l.dispatcher.Enqueue("registration_confirmation", func(ctx context.Context) error {
		return l.notifier.SendRegistrationConfirmation(ctx, input)
	})
}

func (l *Ledger) enqueueReceipt(msg contact.Message) {
	input := notifications.ContactReceipt{
		MessageID: msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Topics:    msg.Topics,
		Message:   msg.Message,
	}

	l.dispatcher.Enqueue("contact_receipt", func(ctx context.Context) error {
		return l.notifier.SendContactReceipt(ctx, input)
	})
}

func (l *Ledger) countRegister(result string) {
	if l.prom != nil {
		l.prom.RegisterAttempts.WithLabelValues(result).Inc()
	}
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, registration.ErrEventFull):
		return "full"
	case errors.Is(err, registration.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, event.ErrNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
