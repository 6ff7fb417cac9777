package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name   string
		checks map[string]DependencyCheck
		code   int
		status string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{"all healthy", map[string]DependencyCheck{"mongo": ok, "redis": ok}, http.StatusOK, "ok"},
		{"one down", map[string]DependencyCheck{"mongo": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewReadinessHandler(tc.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			resp := decode[readinessResponse](t, rec)
			if resp.Status != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, resp.Status)
			}
			if len(resp.Dependencies) != len(tc.checks) {
				t.Fatalf("expected %d dependencies, got %d", len(tc.checks), len(resp.Dependencies))
			}
			if tc.name == "one down" && resp.Dependencies["redis"].Error == "" {
				t.Fatalf("expected redis error detail")
			}
		})
	}
}
