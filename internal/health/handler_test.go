package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"innkeep/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Output: io.Discard})
}

func serve(h *Handler, path string) (*httptest.ResponseRecorder, Response) {
	router := httprouter.New()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestHealth(t *testing.T) {
	failing := Check{Name: "mongo", Ping: func(context.Context) error { return errors.New("down") }}
	rec, resp := serve(NewHandler(testLogger(), failing), "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "ok" {
		t.Errorf("status field = %q, want ok", resp.Status)
	}
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []Check
		wantCode   int
		wantStatus string
		wantDeps   map[string]string
	}{
		{
			name:       "all dependencies reachable",
			checks:     []Check{{Name: "mongo", Ping: ok}, {Name: "redis", Ping: ok}},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantDeps:   map[string]string{"mongo": "ok", "redis": "ok"},
		},
		{
			name:       "one dependency down",
			checks:     []Check{{Name: "mongo", Ping: down}, {Name: "redis", Ping: ok}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unavailable",
			wantDeps:   map[string]string{"mongo": "error", "redis": "ok"},
		},
		{
			name:       "no checks registered",
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantDeps:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := serve(NewHandler(testLogger(), tt.checks...), "/ready")

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantStatus)
			}
			if len(resp.Dependencies) != len(tt.wantDeps) {
				t.Fatalf("dependencies = %v, want %v", resp.Dependencies, tt.wantDeps)
			}
			for name, want := range tt.wantDeps {
				if got := resp.Dependencies[name]; got != want {
					t.Errorf("dependency %s = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestReady_PassesDeadline(t *testing.T) {
	var hadDeadline bool
	check := Check{Name: "mongo", Ping: func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}}

	serve(NewHandler(testLogger(), check), "/ready")

	if !hadDeadline {
		t.Error("expected readiness probe to run with a deadline")
	}
}
