// Package client provides an HTTP client for the rent-ledger REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/payment"
	"github.com/evcraddock/rent-ledger/internal/property"
	"github.com/evcraddock/rent-ledger/internal/report"
	"github.com/evcraddock/rent-ledger/internal/settings"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// Client is an HTTP client for the rent-ledger API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", resp.Status)
	}
	return nil
}

// ListProperties returns all properties, newest first.
func (c *Client) ListProperties(ctx context.Context) ([]*property.Property, error) {
	var props []*property.Property
	if err := c.get(ctx, "/api/properties", &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns one property.
func (c *Client) GetProperty(ctx context.Context, id string) (*property.Property, error) {
	var p property.Property
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPropertyTenants returns the tenants renting a property.
func (c *Client) ListPropertyTenants(ctx context.Context, id string) ([]*tenant.Tenant, error) {
	var tenants []*tenant.Tenant
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(id)+"/tenants", &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// CreateProperty adds a property.
func (c *Client) CreateProperty(ctx context.Context, in ledger.PropertyInput) (*property.Property, error) {
	var p property.Property
	if err := c.send(ctx, http.MethodPost, "/api/properties", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty replaces a property's fields.
func (c *Client) UpdateProperty(ctx context.Context, id string, in ledger.PropertyInput) (*property.Property, error) {
	var p property.Property
	if err := c.send(ctx, http.MethodPut, "/api/properties/"+url.PathEscape(id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a property.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/properties/"+url.PathEscape(id), nil, nil)
}

// ReconcileProperty recomputes one property's occupancy.
func (c *Client) ReconcileProperty(ctx context.Context, id string) (*property.Property, error) {
	var p property.Property
	if err := c.send(ctx, http.MethodPost, "/api/properties/"+url.PathEscape(id)+"/reconcile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReconcileAll recomputes every property's occupancy and returns how many
// changed.
func (c *Client) ReconcileAll(ctx context.Context) (int, error) {
	var resp struct {
		Updated int `json:"updated"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/reconcile", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

// ListTenants returns all tenants, newest first.
func (c *Client) ListTenants(ctx context.Context) ([]*tenant.Tenant, error) {
	var tenants []*tenant.Tenant
	if err := c.get(ctx, "/api/tenants", &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetTenant returns one tenant.
func (c *Client) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := c.get(ctx, "/api/tenants/"+url.PathEscape(id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTenant adds a tenant.
func (c *Client) CreateTenant(ctx context.Context, in ledger.TenantInput) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := c.send(ctx, http.MethodPost, "/api/tenants", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTenant replaces a tenant's fields.
func (c *Client) UpdateTenant(ctx context.Context, id string, in ledger.TenantInput) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := c.send(ctx, http.MethodPut, "/api/tenants/"+url.PathEscape(id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTenant removes a tenant.
func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/tenants/"+url.PathEscape(id), nil, nil)
}

// ListPayments returns all payments, most recent date first.
func (c *Client) ListPayments(ctx context.Context) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	if err := c.get(ctx, "/api/payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment records a payment.
func (c *Client) CreatePayment(ctx context.Context, in ledger.PaymentInput) (*payment.Payment, error) {
	var p payment.Payment
	if err := c.send(ctx, http.MethodPost, "/api/payments", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListExpenses returns all expenses, most recent date first.
func (c *Client) ListExpenses(ctx context.Context) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	if err := c.get(ctx, "/api/expenses", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense records an expense.
func (c *Client) CreateExpense(ctx context.Context, in ledger.ExpenseInput) (*expense.Expense, error) {
	var e expense.Expense
	if err := c.send(ctx, http.MethodPost, "/api/expenses", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/expenses/"+url.PathEscape(id), nil, nil)
}

// GetSettings returns the application settings.
func (c *Client) GetSettings(ctx context.Context) (*settings.Settings, error) {
	var s settings.Settings
	if err := c.get(ctx, "/api/settings", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings changes the fields set in in.
func (c *Client) UpdateSettings(ctx context.Context, in ledger.SettingsInput) (*settings.Settings, error) {
	var s settings.Settings
	if err := c.send(ctx, http.MethodPut, "/api/settings", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Dashboard returns the portfolio summary.
func (c *Client) Dashboard(ctx context.Context) (*report.Summary, error) {
	var s report.Summary
	if err := c.get(ctx, "/api/dashboard", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Leases returns every tenant's lease classification.
func (c *Client) Leases(ctx context.Context) ([]report.Lease, error) {
	var leases []report.Lease
	if err := c.get(ctx, "/api/leases", &leases); err != nil {
		return nil, err
	}
	return leases, nil
}

// Monthly returns the monthly income and expense totals of year.
func (c *Client) Monthly(ctx context.Context, year int) ([]report.MonthTotal, error) {
	var months []report.MonthTotal
	if err := c.get(ctx, "/api/reports/monthly?year="+strconv.Itoa(year), &months); err != nil {
		return nil, err
	}
	return months, nil
}

// ExpenseChart returns the PNG expense chart of year.
func (c *Client) ExpenseChart(ctx context.Context, year int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reports/expenses.png?year="+strconv.Itoa(year), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.send(ctx, http.MethodGet, path, nil, result)
}

// send performs a request with an optional JSON body and decodes the
// response into result when it is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// do executes an HTTP request and returns the body of a successful response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := "server error: " + http.StatusText(resp.StatusCode)
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return respBody, nil
}
