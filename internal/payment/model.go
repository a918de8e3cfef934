// Package payment provides the rent payment ledger model and data access.
package payment

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Status describes how much of a payment has been settled.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
	StatusPartial Status = "Partial"
)

// Statuses lists every payment status in display order.
var Statuses = []Status{StatusPaid, StatusPending, StatusPartial}

// ValidStatus returns true if s is a known payment status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPaid, StatusPending, StatusPartial:
		return true
	}
	return false
}

// Payment is an immutable ledger entry. Tenant and property names are
// copied from the tenant when the payment is recorded.
type Payment struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenantId"`
	TenantName   string          `json:"tenantName"`
	PropertyID   string          `json:"propertyId"`
	PropertyName string          `json:"propertyName"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func scanPayment(row interface{ Scan(...any) error }) (*Payment, error) {
	var p Payment
	var propertyID sql.NullString
	var status string

	err := row.Scan(
		&p.ID, &p.TenantID, &p.TenantName, &propertyID, &p.PropertyName,
		&p.Amount, &p.Date, &status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.PropertyID = propertyID.String
	p.Status = Status(status)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
