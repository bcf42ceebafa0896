package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mooncircle/mooncircle/internal/domain/contact"
	"github.com/mooncircle/mooncircle/internal/ledger"
)

type fakeContacts struct {
	byID func(ctx context.Context, id string) (contact.Message, error)
}

func (f *fakeContacts) GetByID(ctx context.Context, id string) (contact.Message, error) {
	return f.byID(ctx, id)
}

type fakeSubmitter struct {
	submit func(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error)
}

func (f *fakeSubmitter) SubmitContact(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error) {
	return f.submit(ctx, req)
}

func newContactRouter(h *ContactHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(testTemplates())
	r.GET("/contact", h.Form)
	r.POST("/contact", h.Submit)
	r.GET("/contact-sent/:id", h.Sent)
	return r
}

func TestContactForm(t *testing.T) {
	h := NewContactHandler(nil, nil, testLogger())
	r := newContactRouter(h)

	w := getPath(r, "/contact")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()

	for _, topic := range ContactTopics {
		if !strings.Contains(body, topic) {
			t.Errorf("form missing topic checkbox %q", topic)
		}
	}
}

func TestContactSubmitRedirects(t *testing.T) {
	msgID := uuid.NewString()

	submitter := &fakeSubmitter{
		submit: func(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error) {
			if req.Name != "Jan Nowak" {
				t.Errorf("name = %q", req.Name)
			}
			if len(req.Topics) != 2 {
				t.Errorf("topics = %v, want 2 entries", req.Topics)
			}
			return contact.Message{ID: msgID, Name: req.Name, Email: req.Email}, nil
		},
	}

	h := NewContactHandler(nil, submitter, testLogger())
	r := newContactRouter(h)

	w := postForm(r, "/contact", url.Values{
		"name":    {"Jan Nowak"},
		"email":   {"jan@example.com"},
		"topics":  {"Joga", "Olejki eteryczne"},
		"message": {"Proszę o więcej informacji o kręgach."},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	if loc := w.Header().Get("Location"); loc != "/contact-sent/"+msgID {
		t.Errorf("Location = %q", loc)
	}
}

func TestContactSubmitValidationRerenders(t *testing.T) {
	submitter := &fakeSubmitter{
		submit: func(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error) {
			t.Fatal("submitter must not be called on validation failure")
			return contact.Message{}, nil
		},
	}

	h := NewContactHandler(nil, submitter, testLogger())
	r := newContactRouter(h)

	w := postForm(r, "/contact", url.Values{
		"name":  {"Jan Nowak"},
		"email": {"jan@example.com"},
		// message missing
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	body := w.Body.String()

	if !strings.Contains(body, "To pole jest wymagane") {
		t.Errorf("body missing required-field error: %q", body)
	}

	if !strings.Contains(body, `value="Jan Nowak"`) {
		t.Errorf("body lost entered name: %q", body)
	}
}

func TestContactSubmitStorageDownKeepsText(t *testing.T) {
	submitter := &fakeSubmitter{
		submit: func(ctx context.Context, req contact.CreateMessageRequest) (contact.Message, error) {
			return contact.Message{}, ledger.ErrPersistence
		},
	}

	h := NewContactHandler(nil, submitter, testLogger())
	r := newContactRouter(h)

	w := postForm(r, "/contact", url.Values{
		"name":    {"Jan Nowak"},
		"email":   {"jan@example.com"},
		"message": {"Ta wiadomość nie może przepaść."},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	body := w.Body.String()

	if !strings.Contains(body, "Nie udało się wysłać wiadomości") {
		t.Errorf("body missing outage notice: %q", body)
	}

	if !strings.Contains(body, "Ta wiadomość nie może przepaść.") {
		t.Errorf("body lost the entered message text: %q", body)
	}
}

func TestContactSent(t *testing.T) {
	msgID := uuid.NewString()

	messages := &fakeContacts{
		byID: func(ctx context.Context, id string) (contact.Message, error) {
			if id != msgID {
				return contact.Message{}, contact.ErrNotFound
			}
			return contact.Message{ID: msgID, Name: "Jan Nowak", Email: "jan@example.com"}, nil
		},
	}

	h := NewContactHandler(messages, nil, testLogger())
	r := newContactRouter(h)

	w := getPath(r, "/contact-sent/"+msgID)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), "jan@example.com") {
		t.Errorf("thanks page missing reply address: %q", w.Body.String())
	}

	if w := getPath(r, "/contact-sent/"+uuid.NewString()); w.Code != http.StatusNotFound {
		t.Errorf("unknown message: status = %d, want 404", w.Code)
	}
}
