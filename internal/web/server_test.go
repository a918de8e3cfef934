package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/health", nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[map[string]string](t, w); got["status"] != "ok" {
		t.Errorf("status = %q, want ok", got["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	createProperty(t, srv, "Moda Flat")
	apiRequest(t, srv, "POST", "/api/properties", map[string]any{"name": ""})

	w := apiRequest(t, srv, "GET", "/metrics", nil)
	wantStatus(t, w, http.StatusOK)
	body, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(body)

	for _, want := range []string{
		`rentledger_http_requests_total{method="POST",route="/api/properties",status="201"} 1`,
		`rentledger_http_requests_total{method="POST",route="/api/properties",status="400"} 1`,
		`rentledger_ledger_operations_total{operation="create_property",result="ok"} 1`,
		`rentledger_ledger_operations_total{operation="create_property",result="invalid"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/api", "/api"},
		{"/api/", "/api"},
		{"/api/properties", "/api/properties"},
		{"/api/properties/abc-123", "/api/properties/{id}"},
		{"/api/properties/abc-123/reconcile", "/api/properties/{id}/reconcile"},
		{"/api/properties/abc-123/tenants", "/api/properties/{id}/tenants"},
		{"/api/reports/monthly", "/api/reports/monthly"},
		{"/api/reports/whatever", "other"},
		{"/api/unknown/thing", "other"},
		{"/favicon.ico", "other"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.path, nil)
		if got := routeLabel(r); got != tt.want {
			t.Errorf("routeLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
