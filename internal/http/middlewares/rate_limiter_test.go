package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", NewRateLimiter(limit, window).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func post(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	r := limitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if w := post(r, "10.0.0.1:1234"); w.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d, want 204", i+1, w.Code)
		}
	}

	w := post(r, "10.0.0.1:1234")

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Error("429 must carry Retry-After")
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	r := limitedRouter(1, time.Minute)

	if w := post(r, "10.0.0.1:1234"); w.Code != http.StatusNoContent {
		t.Fatalf("first client: status = %d", w.Code)
	}

	if w := post(r, "10.0.0.2:1234"); w.Code != http.StatusNoContent {
		t.Errorf("second client blocked by first client's quota: status = %d", w.Code)
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	r := limitedRouter(1, 10*time.Millisecond)

	if w := post(r, "10.0.0.1:1234"); w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if w := post(r, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	time.Sleep(15 * time.Millisecond)

	if w := post(r, "10.0.0.1:1234"); w.Code != http.StatusNoContent {
		t.Errorf("after window: status = %d, want 204", w.Code)
	}
}
