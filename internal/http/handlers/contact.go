package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mooncircle/mooncircle/internal/domain/contact"
	"github.com/mooncircle/mooncircle/internal/ledger"
)

type ContactReader interface {
	GetByID(ctx context.Context, id string) (contact.Message, error)
}

type ContactSubmitter interface {
	SubmitContact(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error)
}

// ContactTopics is the fixed checkbox set on the contact form.
var ContactTopics = []string{
	"Kręgi i wydarzenia",
	"Olejki eteryczne",
	"Woda wodorowa",
	"Joga",
	"Zielona żywność",
	"Inne",
}

type ContactHandler struct {
	messages  ContactReader
	submitter ContactSubmitter
	log       *slog.Logger
}

func NewContactHandler(messages ContactReader, submitter ContactSubmitter, log *slog.Logger) *ContactHandler {
	return &ContactHandler{
		messages:  messages,
		submitter: submitter,
		log:       log,
	}
}

func (h *ContactHandler) Form(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "contact.html", gin.H{
		"Title":    "Kontakt",
		"Topics":   ContactTopics,
		"Errors":   map[string]string{},
		"Selected": map[string]bool{},
		"Form":     emptyForm(),
	})
}

// Submit stores the message and redirects to its thank-you page. Validation
// failures re-render the form with the entered values; a storage outage
// re-renders with a form-level message instead of losing the text.
func (h *ContactHandler) Submit(ctx *gin.Context) {
	var req contact.CreateMessageRequest

	fieldErrs, ok := BindForm(ctx, &req)
	if !ok {
		h.rerender(ctx, req, fieldErrs)
		return
	}

	msg, err := h.submitter.SubmitContact(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ledger.ErrPersistence) {
			h.rerender(ctx, req, map[string]string{
				"_form": "Nie udało się wysłać wiadomości. Spróbuj ponownie za chwilę.",
			})
			return
		}
		h.log.Error("submit contact message", "err", err)
		RenderInternal(ctx)
		return
	}

	RedirectSeeOther(ctx, "/contact-sent/"+msg.ID)
}

func (h *ContactHandler) Sent(ctx *gin.Context) {
	id := ctx.Param("id")
	if uuid.Validate(id) != nil {
		RenderNotFound(ctx)
		return
	}

	msg, err := h.messages.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RenderNotFound(ctx)
			return
		}
		h.log.Error("load contact message", "message", id, "err", err)
		RenderInternal(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "contact_sent.html", gin.H{
		"Title":   "Wiadomość wysłana",
		"Message": msg,
	})
}

func (h *ContactHandler) rerender(ctx *gin.Context, req contact.CreateMessageRequest, fieldErrs map[string]string) {
	selected := map[string]bool{}
	for _, t := range req.Topics {
		selected[t] = true
	}

	ctx.HTML(http.StatusUnprocessableEntity, "contact.html", gin.H{
		"Title":    "Kontakt",
		"Topics":   ContactTopics,
		"Errors":   fieldErrs,
		"Selected": selected,
		"Form": gin.H{
			"Name":    req.Name,
			"Email":   req.Email,
			"Phone":   req.Phone,
			"Message": req.Message,
		},
	})
}
