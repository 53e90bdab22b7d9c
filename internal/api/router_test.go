package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_OperationalEndpoints(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{"health probe", "/health", "payments worker is healthy"},
		{"banner", "/", "FCG Payments Worker - Running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if rec.Body.String() != tt.wantBody {
				t.Fatalf("expected body %q, got %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/internal/payments", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
}
