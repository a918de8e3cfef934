package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecordOperation(t *testing.T) {
	m := New()
	m.RecordOperation("create_tenant", "ok")
	m.RecordOperation("create_tenant", "ok")
	m.RecordOperation("create_tenant", "invalid")

	out := scrape(t, m)
	assert.Contains(t, out, `rentledger_ledger_operations_total{operation="create_tenant",result="ok"} 2`)
	assert.Contains(t, out, `rentledger_ledger_operations_total{operation="create_tenant",result="invalid"} 1`)
}

func TestMiddleware(t *testing.T) {
	m := New()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h := m.Middleware(func(*http.Request) string { return "/api/properties" }, inner)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/properties", nil))

	out := scrape(t, m)
	assert.Contains(t, out, `rentledger_http_requests_total{method="POST",route="/api/properties",status="201"} 1`)
	assert.Contains(t, out, `rentledger_http_request_duration_seconds_count{method="POST",route="/api/properties"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordOperation("list_properties", "ok")

	assert.True(t, strings.Contains(scrape(t, a), "list_properties"))
	assert.False(t, strings.Contains(scrape(t, b), "list_properties"))
}
