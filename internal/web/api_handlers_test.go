package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/metrics"
	"github.com/evcraddock/rent-ledger/internal/payment"
	"github.com/evcraddock/rent-ledger/internal/property"
	"github.com/evcraddock/rent-ledger/internal/report"
	"github.com/evcraddock/rent-ledger/internal/settings"
	"github.com/evcraddock/rent-ledger/internal/store"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

var testNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

// testServer creates a server on a fresh SQLite database.
func testServer(t *testing.T) *Server {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})

	clock := func() time.Time { return testNow }
	m := metrics.New()
	svc := ledger.NewService(store.New(d), ledger.WithClock(clock), ledger.WithRecorder(m))
	return NewServer(svc, m, WithClock(clock))
}

func apiRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	reqBody := &bytes.Buffer{}
	if body != nil {
		if raw, ok := body.(string); ok {
			reqBody.WriteString(raw)
		} else if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, code, w.Body.String())
	}
}

func createProperty(t *testing.T, srv *Server, name string) *property.Property {
	t.Helper()
	w := apiRequest(t, srv, "POST", "/api/properties", map[string]any{
		"name":        name,
		"address":     "Bağdat Cd. 10, İstanbul",
		"type":        "Apartment",
		"monthlyRent": "1500",
	})
	wantStatus(t, w, http.StatusCreated)
	return decode[*property.Property](t, w)
}

func createTenant(t *testing.T, srv *Server, propertyID string) *tenant.Tenant {
	t.Helper()
	w := apiRequest(t, srv, "POST", "/api/tenants", map[string]any{
		"name":        "Ayşe Yılmaz",
		"email":       "ayse@example.com",
		"phone":       "555 000 0000",
		"propertyId":  propertyID,
		"monthlyRent": 1500,
		"leaseStart":  "2024-01-01",
		"leaseEnd":    "2024-07-01",
	})
	wantStatus(t, w, http.StatusCreated)
	return decode[*tenant.Tenant](t, w)
}

func TestAPIRoot(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api", "/api/"} {
		w := apiRequest(t, srv, "GET", path, nil)
		wantStatus(t, w, http.StatusOK)
		got := decode[map[string]string](t, w)
		if got["message"] != "API is running" {
			t.Errorf("%s: message = %q", path, got["message"])
		}
	}
}

func TestAPIPreflight(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "OPTIONS", "/api/properties/anything", nil)
	wantStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "{}" {
		t.Errorf("body = %q, want {}", w.Body.String())
	}

	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for k, want := range headers {
		if got := w.Header().Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestAPICORSOnErrors(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/nope", nil)
	wantStatus(t, w, http.StatusNotFound)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header on 404")
	}
}

func TestAPINotFound(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/nope"},
		{"POST", "/api"},
		{"PATCH", "/api/properties"},
		{"PUT", "/api/payments/p1"},
		{"DELETE", "/api/payments/p1"},
		{"PUT", "/api/expenses/e1"},
		{"GET", "/api/properties/a/b/c"},
		{"GET", "/api/reconcile"},
		{"GET", "/api/reports/yearly"},
		{"GET", "/elsewhere"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := apiRequest(t, srv, tt.method, tt.path, nil)
			wantStatus(t, w, http.StatusNotFound)
			got := decode[map[string]string](t, w)
			if got["error"] != "Not found" {
				t.Errorf("error = %q, want %q", got["error"], "Not found")
			}
		})
	}
}

func TestAPIListEmptyIsArray(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api/properties", "/api/tenants", "/api/payments", "/api/expenses", "/api/leases"} {
		w := apiRequest(t, srv, "GET", path, nil)
		wantStatus(t, w, http.StatusOK)
		if got := strings.TrimSpace(w.Body.String()); got != "[]" {
			t.Errorf("%s body = %q, want []", path, got)
		}
	}
}

func TestAPIPropertyLifecycle(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")

	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Status != property.StatusVacant {
		t.Errorf("status = %q, want Vacant", p.Status)
	}
	if !p.CreatedAt.Equal(testNow) {
		t.Errorf("createdAt = %v, want %v", p.CreatedAt, testNow)
	}

	w := apiRequest(t, srv, "GET", "/api/properties/"+p.ID, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[*property.Property](t, w); got.Name != "Moda Flat" {
		t.Errorf("name = %q", got.Name)
	}

	w = apiRequest(t, srv, "PUT", "/api/properties/"+p.ID, map[string]any{
		"name":        "Moda Loft",
		"address":     p.Address,
		"type":        "Studio",
		"monthlyRent": 1750.5,
	})
	wantStatus(t, w, http.StatusOK)
	updated := decode[*property.Property](t, w)
	if updated.Name != "Moda Loft" || updated.Type != property.TypeStudio {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.MonthlyRent.String() != "1750.5" {
		t.Errorf("monthlyRent = %s, want 1750.5", updated.MonthlyRent)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updatedAt")
	}

	w = apiRequest(t, srv, "GET", "/api/properties", nil)
	wantStatus(t, w, http.StatusOK)
	if list := decode[[]*property.Property](t, w); len(list) != 1 {
		t.Errorf("got %d properties, want 1", len(list))
	}

	w = apiRequest(t, srv, "DELETE", "/api/properties/"+p.ID, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[map[string]bool](t, w); !got["success"] {
		t.Errorf("delete body = %v", got)
	}

	w = apiRequest(t, srv, "GET", "/api/properties/"+p.ID, nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestAPIMoneyIsJSONNumber(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")

	w := apiRequest(t, srv, "GET", "/api/properties/"+p.ID, nil)
	wantStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"monthlyRent":1500`) {
		t.Errorf("expected numeric monthlyRent, got %s", w.Body.String())
	}
}

func TestAPIDeleteUnknownPropertySucceeds(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "DELETE", "/api/properties/missing", nil)
	wantStatus(t, w, http.StatusOK)
}

func TestAPIValidation(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name  string
		path  string
		body  any
		field string
	}{
		{
			name:  "property without name",
			path:  "/api/properties",
			body:  map[string]any{"address": "x", "type": "House", "monthlyRent": 10},
			field: "name",
		},
		{
			name:  "property with unknown type",
			path:  "/api/properties",
			body:  map[string]any{"name": "n", "address": "x", "type": "Castle", "monthlyRent": 10},
			field: "type",
		},
		{
			name:  "property with negative rent",
			path:  "/api/properties",
			body:  map[string]any{"name": "n", "address": "x", "type": "House", "monthlyRent": "-1"},
			field: "monthlyRent",
		},
		{
			name:  "payment for unknown tenant",
			path:  "/api/payments",
			body:  map[string]any{"tenantId": "ghost", "amount": 100, "date": "2024-06-01"},
			field: "tenantId",
		},
		{
			name:  "expense with zero amount",
			path:  "/api/expenses",
			body:  map[string]any{"description": "Paint", "amount": 0, "date": "2024-06-01", "category": "Repair"},
			field: "amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, "POST", tt.path, tt.body)
			wantStatus(t, w, http.StatusBadRequest)
			got := decode[map[string]string](t, w)
			if !strings.HasPrefix(got["error"], tt.field) {
				t.Errorf("error = %q, want it to name %q", got["error"], tt.field)
			}
		})
	}
}

func TestAPIInvalidJSON(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api/properties", "/api/tenants", "/api/payments", "/api/expenses"} {
		w := apiRequest(t, srv, "POST", path, "{not json")
		wantStatus(t, w, http.StatusBadRequest)
	}
	w := apiRequest(t, srv, "PUT", "/api/settings", `{"notifications": "yes"}`)
	wantStatus(t, w, http.StatusBadRequest)
}

func TestAPITenantDrivesOccupancy(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")
	tn := createTenant(t, srv, p.ID)

	if tn.PropertyName != "Moda Flat" {
		t.Errorf("propertyName = %q, want copied from property", tn.PropertyName)
	}
	if tn.RentStatus != tenant.RentStatusPending {
		t.Errorf("rentStatus = %q, want Pending", tn.RentStatus)
	}

	w := apiRequest(t, srv, "GET", "/api/properties/"+p.ID, nil)
	if got := decode[*property.Property](t, w); got.Status != property.StatusOccupied {
		t.Fatalf("status after tenant create = %q, want Occupied", got.Status)
	}

	w = apiRequest(t, srv, "DELETE", "/api/tenants/"+tn.ID, nil)
	wantStatus(t, w, http.StatusOK)

	w = apiRequest(t, srv, "GET", "/api/properties/"+p.ID, nil)
	if got := decode[*property.Property](t, w); got.Status != property.StatusVacant {
		t.Errorf("status after tenant delete = %q, want Vacant", got.Status)
	}

	w = apiRequest(t, srv, "DELETE", "/api/tenants/"+tn.ID, nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestAPIUpdateTenantMovesOccupancy(t *testing.T) {
	srv := testServer(t)
	a := createProperty(t, srv, "A")
	b := createProperty(t, srv, "B")
	tn := createTenant(t, srv, a.ID)

	w := apiRequest(t, srv, "PUT", "/api/tenants/"+tn.ID, map[string]any{
		"name":        tn.Name,
		"email":       tn.Email,
		"phone":       tn.Phone,
		"propertyId":  b.ID,
		"monthlyRent": "1600",
		"leaseStart":  tn.LeaseStart,
		"leaseEnd":    tn.LeaseEnd,
	})
	wantStatus(t, w, http.StatusOK)
	if got := decode[*tenant.Tenant](t, w); got.PropertyName != "B" {
		t.Errorf("propertyName = %q, want B", got.PropertyName)
	}

	statuses := map[string]property.Status{}
	w = apiRequest(t, srv, "GET", "/api/properties", nil)
	for _, p := range decode[[]*property.Property](t, w) {
		statuses[p.Name] = p.Status
	}
	if statuses["A"] != property.StatusVacant || statuses["B"] != property.StatusOccupied {
		t.Errorf("statuses = %v, want A Vacant and B Occupied", statuses)
	}
}

func TestAPIPaymentMarksTenantPaid(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")
	tn := createTenant(t, srv, p.ID)

	w := apiRequest(t, srv, "POST", "/api/payments", map[string]any{
		"tenantId": tn.ID,
		"amount":   "1500",
		"date":     "2024-06-01",
	})
	wantStatus(t, w, http.StatusCreated)
	pay := decode[*payment.Payment](t, w)
	if pay.Status != payment.StatusPaid {
		t.Errorf("status = %q, want Paid", pay.Status)
	}
	if pay.TenantName != tn.Name || pay.PropertyID != p.ID || pay.PropertyName != "Moda Flat" {
		t.Errorf("denormalized fields not copied: %+v", pay)
	}

	w = apiRequest(t, srv, "GET", "/api/payments/"+pay.ID, nil)
	wantStatus(t, w, http.StatusOK)

	w = apiRequest(t, srv, "GET", "/api/tenants/"+tn.ID, nil)
	if got := decode[*tenant.Tenant](t, w); got.RentStatus != tenant.RentStatusPaid {
		t.Errorf("rentStatus = %q, want Paid", got.RentStatus)
	}
}

func TestAPIExpenses(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "POST", "/api/expenses", map[string]any{
		"description": "Boiler service",
		"amount":      "320.75",
		"date":        "2024-06-03",
		"category":    "Maintenance",
	})
	wantStatus(t, w, http.StatusCreated)
	e := decode[*expense.Expense](t, w)
	if e.PropertyName != expense.GeneralPropertyName {
		t.Errorf("propertyName = %q, want General", e.PropertyName)
	}

	w = apiRequest(t, srv, "GET", "/api/expenses", nil)
	if list := decode[[]*expense.Expense](t, w); len(list) != 1 {
		t.Fatalf("got %d expenses, want 1", len(list))
	}

	w = apiRequest(t, srv, "DELETE", "/api/expenses/"+e.ID, nil)
	wantStatus(t, w, http.StatusOK)

	w = apiRequest(t, srv, "GET", "/api/expenses", nil)
	if list := decode[[]*expense.Expense](t, w); len(list) != 0 {
		t.Errorf("got %d expenses after delete, want 0", len(list))
	}
}

func TestAPISettings(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/settings", nil)
	wantStatus(t, w, http.StatusOK)
	first := decode[*settings.Settings](t, w)
	if first.Currency != "₺" || !first.Notifications {
		t.Errorf("defaults = %+v", first)
	}

	w = apiRequest(t, srv, "GET", "/api/settings", nil)
	if again := decode[*settings.Settings](t, w); again.ID != first.ID {
		t.Errorf("second read created a new row: %s != %s", again.ID, first.ID)
	}

	w = apiRequest(t, srv, "PUT", "/api/settings", map[string]any{"currency": "$"})
	wantStatus(t, w, http.StatusOK)
	got := decode[*settings.Settings](t, w)
	if got.Currency != "$" || !got.Notifications {
		t.Errorf("after update = %+v", got)
	}

	w = apiRequest(t, srv, "PUT", "/api/settings", map[string]any{"currency": ""})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestAPIReconcile(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")

	w := apiRequest(t, srv, "POST", "/api/reconcile", nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[map[string]int](t, w); got["updated"] != 0 {
		t.Errorf("updated = %d, want 0", got["updated"])
	}

	w = apiRequest(t, srv, "POST", "/api/properties/"+p.ID+"/reconcile", nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[*property.Property](t, w); got.Status != property.StatusVacant {
		t.Errorf("status = %q, want Vacant", got.Status)
	}

	w = apiRequest(t, srv, "POST", "/api/properties/missing/reconcile", nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestAPIDashboard(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")
	createProperty(t, srv, "Empty Flat")
	createTenant(t, srv, p.ID)

	w := apiRequest(t, srv, "GET", "/api/dashboard", nil)
	wantStatus(t, w, http.StatusOK)
	got := decode[report.Summary](t, w)

	if got.TotalProperties != 2 || got.OccupiedProperties != 1 || got.VacantProperties != 1 {
		t.Errorf("property counts = %+v", got)
	}
	if got.TotalTenants != 1 || got.PendingTenants != 1 {
		t.Errorf("tenant counts = %+v", got)
	}
	if got.RentDue.String() != "1500" {
		t.Errorf("rentDue = %s, want 1500", got.RentDue)
	}
	if got.ExpiringLeases != 1 {
		t.Errorf("expiringLeases = %d, want 1", got.ExpiringLeases)
	}
	if got.Currency != "₺" {
		t.Errorf("currency = %q", got.Currency)
	}
}

func TestAPILeases(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")
	tn := createTenant(t, srv, p.ID)

	w := apiRequest(t, srv, "GET", "/api/leases", nil)
	wantStatus(t, w, http.StatusOK)
	leases := decode[[]report.Lease](t, w)
	if len(leases) != 1 {
		t.Fatalf("got %d leases, want 1", len(leases))
	}
	if leases[0].TenantID != tn.ID || leases[0].State != report.LeaseExpiring {
		t.Errorf("lease = %+v", leases[0])
	}
}

func TestAPIMonthlyReport(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")
	tn := createTenant(t, srv, p.ID)
	apiRequest(t, srv, "POST", "/api/payments", map[string]any{"tenantId": tn.ID, "amount": 1500, "date": "2024-06-01"})
	apiRequest(t, srv, "POST", "/api/expenses", map[string]any{"description": "Tax", "amount": 200, "date": "2024-06-20", "category": "Tax"})

	w := apiRequest(t, srv, "GET", "/api/reports/monthly?year=2024", nil)
	wantStatus(t, w, http.StatusOK)
	months := decode[[]report.MonthTotal](t, w)
	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	june := months[5]
	if june.Income.String() != "1500" || june.Expenses.String() != "200" || june.Net.String() != "1300" {
		t.Errorf("june = %+v", june)
	}

	w = apiRequest(t, srv, "GET", "/api/reports/monthly?year=2023", nil)
	for _, m := range decode[[]report.MonthTotal](t, w) {
		if !m.Income.IsZero() || !m.Expenses.IsZero() {
			t.Errorf("2023 month %d not empty: %+v", m.Month, m)
		}
	}

	w = apiRequest(t, srv, "GET", "/api/reports/monthly?year=soon", nil)
	wantStatus(t, w, http.StatusBadRequest)
}

func TestAPIExpenseChart(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/reports/expenses.png", nil)
	wantStatus(t, w, http.StatusNotFound)

	apiRequest(t, srv, "POST", "/api/expenses", map[string]any{"description": "Paint", "amount": 120, "date": "2024-02-10", "category": "Repair"})
	apiRequest(t, srv, "POST", "/api/expenses", map[string]any{"description": "Water", "amount": 80, "date": "2024-03-05", "category": "Utilities"})

	w = apiRequest(t, srv, "GET", "/api/reports/expenses.png?year=2024", nil)
	wantStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestAPIPropertyTenants(t *testing.T) {
	srv := testServer(t)
	p := createProperty(t, srv, "Moda Flat")
	other := createProperty(t, srv, "Loft")

	w := apiRequest(t, srv, "GET", "/api/properties/"+p.ID+"/tenants", nil)
	wantStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty tenants body = %q, want []", w.Body.String())
	}

	tn := createTenant(t, srv, p.ID)
	createTenant(t, srv, other.ID)

	w = apiRequest(t, srv, "GET", "/api/properties/"+p.ID+"/tenants", nil)
	wantStatus(t, w, http.StatusOK)
	got := decode[[]*tenant.Tenant](t, w)
	if len(got) != 1 || got[0].ID != tn.ID {
		t.Errorf("tenants = %+v, want only %s", got, tn.ID)
	}

	w = apiRequest(t, srv, "GET", "/api/properties/nope/tenants", nil)
	wantStatus(t, w, http.StatusNotFound)
}
