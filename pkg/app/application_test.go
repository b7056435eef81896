package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"roomgrid/pkg/config"
	"roomgrid/pkg/logger"
	"roomgrid/pkg/middleware"
)

type routesFunc func(router *httprouter.Router)

func (f routesFunc) RegisterRoutes(router *httprouter.Router) {
	f(router)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		AuthToken:          "s3cret",
		CORSAllowedOrigins: []string{"https://board.example.com"},
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		ShutdownTimeout:    time.Second,
		Log:                logger.Discard(),
	}
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	a, _ := newCountingApplication(t)
	return a
}

// newCountingApplication also returns the number of POST handler runs.
func newCountingApplication(t *testing.T) (*Application, *int) {
	t.Helper()

	calls := 0

	health := routesFunc(func(router *httprouter.Router) {
		router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})
	api := routesFunc(func(router *httprouter.Router) {
		router.GET("/api/v1/whoami", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			if middleware.IsAuthenticated(r.Context()) {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		})
		router.POST("/api/v1/rooms/:id/calendar/next", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			calls++
			w.Header().Set(middleware.ViewerIDHeader, r.Header.Get(middleware.ViewerIDHeader))
			fmt.Fprintf(w, `{"call":%d,"detailed":%t}`, calls, middleware.IsAuthenticated(r.Context()))
		})
		router.POST("/api/v1/auth", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			calls++
			fmt.Fprintf(w, `{"authenticated":%t}`, middleware.IsAuthenticated(r.Context()))
		})
		router.GET(WebSocketPath, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			if _, ok := r.Context().Deadline(); ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	a := NewApplication(testConfig())
	a.SetApp(health, api)
	return a, &calls
}

func TestApplication_Routing(t *testing.T) {
	a := newTestApplication(t)
	defer a.gracefulShutdown()

	tests := []struct {
		name       string
		path       string
		headers    map[string]string
		expectCode int
	}{
		{"health bypasses the api stack", "/health", nil, http.StatusOK},
		{"anonymous caller", "/api/v1/whoami", nil, http.StatusUnauthorized},
		{"bearer token marks the request", "/api/v1/whoami", map[string]string{"Authorization": "Bearer s3cret"}, http.StatusOK},
		{"websocket path has no deadline", WebSocketPath, nil, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.expectCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.expectCode)
			}
		})
	}
}

func TestApplication_CORS(t *testing.T) {
	a := newTestApplication(t)
	defer a.gracefulShutdown()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Origin", "https://board.example.com")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://board.example.com" {
		t.Errorf("allowed origin header = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin was allowed: %q", got)
	}
}

func TestApplication_ShutdownHooksRunInReverse(t *testing.T) {
	a := newTestApplication(t)

	var order []string
	a.OnShutdown("poller", func() { order = append(order, "poller") })
	a.OnShutdown("hub", func() { order = append(order, "hub") })

	a.gracefulShutdown()

	if len(order) != 2 || order[0] != "hub" || order[1] != "poller" {
		t.Errorf("shutdown order = %v", order)
	}
}

func TestApplication_IdempotentReplayRespectsAccess(t *testing.T) {
	a, calls := newCountingApplication(t)
	defer a.gracefulShutdown()

	post := func(path, viewer, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Idempotency-Key", "1")
		if viewer != "" {
			req.Header.Set(middleware.ViewerIDHeader, viewer)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, req)
		return rec
	}

	const next = "/api/v1/rooms/r1/calendar/next"
	admin := post(next, "viewer-a", "s3cret")
	anon := post(next, "viewer-a", "")
	if !strings.Contains(admin.Body.String(), `"detailed":true`) {
		t.Fatalf("admin body = %s", admin.Body.String())
	}
	if strings.Contains(anon.Body.String(), `"detailed":true`) {
		t.Errorf("unauthenticated caller received the authenticated view: %s", anon.Body.String())
	}

	retry := post(next, "viewer-a", "s3cret")
	if retry.Body.String() != admin.Body.String() {
		t.Errorf("retry was not replayed: %s then %s", admin.Body.String(), retry.Body.String())
	}

	first := post(next, "", "")
	second := post(next, "", "")
	if first.Body.String() == second.Body.String() {
		t.Errorf("callers without a viewer id shared a cached response: %s", second.Body.String())
	}
	if got := second.Header().Get(middleware.ViewerIDHeader); got != "" {
		t.Errorf("replayed a viewer id to an anonymous caller: %q", got)
	}

	before := *calls
	post("/api/v1/auth", "viewer-a", "")
	authed := post("/api/v1/auth", "viewer-a", "s3cret")
	if *calls != before+2 || !strings.Contains(authed.Body.String(), `"authenticated":true`) {
		t.Errorf("auth answers must never be replayed, got %s after %d calls", authed.Body.String(), *calls-before)
	}
}
