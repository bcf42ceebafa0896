package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mooncircle/mooncircle/internal/domain/event"
	"github.com/mooncircle/mooncircle/internal/domain/registration"
	"github.com/mooncircle/mooncircle/internal/ledger"
)

type EventReader interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]event.Event, error)
	ListPast(ctx context.Context, now time.Time) ([]event.Event, error)
	NextUpcoming(ctx context.Context, now time.Time) (event.Event, error)
}

type RegistrationReader interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
}

type Registrar interface {
	Register(ctx context.Context, eventID string, req registration.CreateRegistrationRequest) (registration.Registration, error)
}

// Flash codes carried on the detail redirect after a rejected registration.
const (
	flashFull      = "full"
	flashDuplicate = "duplicate"
	flashStorage   = "storage"
)

var flashMessages = map[string]string{
	flashFull:      "Brak wolnych miejsc na to wydarzenie.",
	flashDuplicate: "Ten adres e-mail jest już zapisany na to wydarzenie.",
	flashStorage:   "Nie udało się zapisać zgłoszenia. Spróbuj ponownie za chwilę.",
}

type EventsHandler struct {
	events        EventReader
	registrations RegistrationReader
	registrar     Registrar
	views         *ViewBuilder
	log           *slog.Logger
	now           func() time.Time
}

func NewEventsHandler(events EventReader, registrations RegistrationReader, registrar Registrar, views *ViewBuilder, log *slog.Logger) *EventsHandler {
	return &EventsHandler{
		events:        events,
		registrations: registrations,
		registrar:     registrar,
		views:         views,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// List renders upcoming events first, past events greyed out below.
func (h *EventsHandler) List(ctx *gin.Context) {
	now := h.now()

	upcoming, err := h.events.ListUpcoming(ctx.Request.Context(), now)
	if err != nil {
		h.log.Error("list upcoming events", "err", err)
		RenderInternal(ctx)
		return
	}

	past, err := h.events.ListPast(ctx.Request.Context(), now)
	if err != nil {
		h.log.Error("list past events", "err", err)
		RenderInternal(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "events.html", gin.H{
		"Title":    "Wydarzenia",
		"Upcoming": h.views.Events(upcoming, now),
		"Past":     h.views.Events(past, now),
	})
}

// Detail renders one event with its registration form. A flash code from a
// rejected registration arrives as ?err= and shows above the form.
func (h *EventsHandler) Detail(ctx *gin.Context) {
	id := ctx.Param("id")
	if uuid.Validate(id) != nil {
		RenderNotFound(ctx)
		return
	}

	e, err := h.events.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RenderNotFound(ctx)
			return
		}
		h.log.Error("load event", "event", id, "err", err)
		RenderInternal(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "event_detail.html", gin.H{
		"Title":  e.Title,
		"Event":  h.views.Event(e, h.now()),
		"Flash":  flashMessages[ctx.Query("err")],
		"Errors": map[string]string{},
		"Form":   emptyForm(),
	})
}

// Register commits a registration and redirects to the confirmation page.
// Business rejections redirect back to the detail page with a flash code;
// validation failures re-render the detail page with per-field messages.
func (h *EventsHandler) Register(ctx *gin.Context) {
	id := ctx.Param("id")
	if uuid.Validate(id) != nil {
		RenderNotFound(ctx)
		return
	}

	var req registration.CreateRegistrationRequest

	fieldErrs, ok := BindForm(ctx, &req)
	if !ok {
		h.rerenderDetail(ctx, id, req, fieldErrs)
		return
	}

	reg, err := h.registrar.Register(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			RenderNotFound(ctx)
		case errors.Is(err, registration.ErrEventFull):
			RedirectSeeOther(ctx, detailURL(id, flashFull))
		case errors.Is(err, registration.ErrAlreadyRegistered):
			RedirectSeeOther(ctx, detailURL(id, flashDuplicate))
		case errors.Is(err, ledger.ErrPersistence):
			RedirectSeeOther(ctx, detailURL(id, flashStorage))
		default:
			h.log.Error("register", "event", id, "err", err)
			RenderInternal(ctx)
		}
		return
	}

	RedirectSeeOther(ctx, "/registration-confirmed/"+reg.ID)
}

// Confirmed renders the post-registration page with the event summary.
func (h *EventsHandler) Confirmed(ctx *gin.Context) {
	id := ctx.Param("id")
	if uuid.Validate(id) != nil {
		RenderNotFound(ctx)
		return
	}

	reg, err := h.registrations.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			RenderNotFound(ctx)
			return
		}
		h.log.Error("load registration", "registration", id, "err", err)
		RenderInternal(ctx)
		return
	}

	e, err := h.events.GetByID(ctx.Request.Context(), reg.EventID)
	if err != nil {
		h.log.Error("load event for confirmation", "event", reg.EventID, "err", err)
		RenderInternal(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "registration_confirmed.html", gin.H{
		"Title":        "Zgłoszenie przyjęte",
		"Registration": reg,
		"Event":        h.views.Event(e, h.now()),
	})
}

func (h *EventsHandler) rerenderDetail(ctx *gin.Context, id string, req registration.CreateRegistrationRequest, fieldErrs map[string]string) {
	e, err := h.events.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RenderNotFound(ctx)
			return
		}
		h.log.Error("load event", "event", id, "err", err)
		RenderInternal(ctx)
		return
	}

	ctx.HTML(http.StatusUnprocessableEntity, "event_detail.html", gin.H{
		"Title":  e.Title,
		"Event":  h.views.Event(e, h.now()),
		"Errors": fieldErrs,
		"Form": gin.H{
			"Name":    req.Name,
			"Email":   req.Email,
			"Phone":   req.Phone,
			"Message": req.Message,
		},
	})
}

func detailURL(id, flash string) string {
	return "/events/" + id + "?err=" + url.QueryEscape(flash)
}
