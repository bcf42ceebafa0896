package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mooncircle/mooncircle/internal/domain/registration"
	"github.com/mooncircle/mooncircle/internal/utils"
)

type fakeLister struct {
	regs      []registration.Registration
	gotCursor *utils.RegistrationCursor
}

func (f *fakeLister) ListRecent(ctx context.Context, after *utils.RegistrationCursor, limit int) ([]registration.Registration, error) {
	f.gotCursor = after

	if len(f.regs) > limit {
		return f.regs[:limit], nil
	}
	return f.regs, nil
}

func newAdminRouter(h *AdminHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/admin", h.RequireSecret())
	g.GET("/registrations", h.ListRegistrations)
	return r
}

func adminGet(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRequiresSecret(t *testing.T) {
	h := NewAdminHandler(&fakeLister{}, "s3cret", testLogger())
	r := newAdminRouter(h)

	tests := []struct {
		name string
		auth string
		want int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"correct", "Bearer s3cret", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if w := adminGet(r, tc.auth); w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestAdminListsRegistrations(t *testing.T) {
	lister := &fakeLister{regs: []registration.Registration{
		{ID: "r1", EventID: "e1", Name: "Anna Kowalska", Email: "anna@example.com"},
		{ID: "r2", EventID: "e1", Name: "Jan Nowak", Email: "jan@example.com"},
	}}

	h := NewAdminHandler(lister, "s3cret", testLogger())
	r := newAdminRouter(h)

	w := adminGet(r, "Bearer s3cret")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()

	if !strings.Contains(body, `"count":2`) {
		t.Errorf("body missing count: %q", body)
	}

	if !strings.Contains(body, "anna@example.com") {
		t.Errorf("body missing registration row: %q", body)
	}

	if strings.Contains(body, "next_cursor") {
		t.Errorf("short page must not advertise a next cursor: %q", body)
	}
}

func TestAdminPagination(t *testing.T) {
	regs := make([]registration.Registration, adminPageSize+1)
	for i := range regs {
		regs[i] = registration.Registration{
			ID:        "r" + strconv.Itoa(i),
			EventID:   "e1",
			CreatedAt: time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC).Add(-time.Duration(i) * time.Minute),
		}
	}

	lister := &fakeLister{regs: regs}
	h := NewAdminHandler(lister, "s3cret", testLogger())
	r := newAdminRouter(h)

	w := adminGet(r, "Bearer s3cret")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		NextCursor string `json:"next_cursor"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.NextCursor == "" {
		t.Fatal("full page must include next_cursor")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/registrations?cursor="+resp.NextCursor, nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("page 2 status = %d, want 200", w2.Code)
	}

	want := regs[adminPageSize-1]

	if lister.gotCursor == nil {
		t.Fatal("cursor did not reach the repo")
	}
	if lister.gotCursor.ID != want.ID || !lister.gotCursor.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("cursor = %+v, want position of %s", lister.gotCursor, want.ID)
	}
}

func TestAdminRejectsBadCursor(t *testing.T) {
	h := NewAdminHandler(&fakeLister{}, "s3cret", testLogger())
	r := newAdminRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/admin/registrations?cursor=%25garbage", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
