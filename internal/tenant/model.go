// Package tenant provides the tenant model and data access.
package tenant

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// RentStatus tracks whether the current rent has been paid.
type RentStatus string

const (
	RentStatusPending RentStatus = "Pending"
	RentStatusPaid    RentStatus = "Paid"
)

// ValidRentStatus returns true if s is a known rent status.
func ValidRentStatus(s string) bool {
	switch RentStatus(s) {
	case RentStatusPending, RentStatusPaid:
		return true
	}
	return false
}

// Tenant is a person renting a property. PropertyName is copied from the
// property when the tenant is written and is not kept in sync afterwards.
type Tenant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	PropertyID   string          `json:"propertyId"`
	PropertyName string          `json:"propertyName"`
	MonthlyRent  decimal.Decimal `json:"monthlyRent"`
	LeaseStart   string          `json:"leaseStart"`
	LeaseEnd     string          `json:"leaseEnd"`
	RentStatus   RentStatus      `json:"rentStatus"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

func scanTenant(row interface{ Scan(...any) error }) (*Tenant, error) {
	var t Tenant
	var propertyID sql.NullString
	var rentStatus string
	var updatedAt sql.NullTime

	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &propertyID, &t.PropertyName,
		&t.MonthlyRent, &t.LeaseStart, &t.LeaseEnd, &rentStatus,
		&t.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.PropertyID = propertyID.String
	t.RentStatus = RentStatus(rentStatus)
	if t.RentStatus == "" {
		t.RentStatus = RentStatusPending
	}
	t.CreatedAt = t.CreatedAt.UTC()
	if updatedAt.Valid {
		u := updatedAt.Time.UTC()
		t.UpdatedAt = &u
	}

	return &t, nil
}
