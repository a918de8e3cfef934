// Package property provides the rental property model and data access.
package property

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the kind of rental unit.
type Type string

const (
	TypeApartment  Type = "Apartment"
	TypeHouse      Type = "House"
	TypeCommercial Type = "Commercial"
	TypeStudio     Type = "Studio"
)

// Types lists every property type in display order.
var Types = []Type{TypeApartment, TypeHouse, TypeCommercial, TypeStudio}

// ValidType returns true if s is a known property type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeApartment, TypeHouse, TypeCommercial, TypeStudio:
		return true
	}
	return false
}

// Status is the occupancy of a property.
type Status string

const (
	StatusVacant   Status = "Vacant"
	StatusOccupied Status = "Occupied"
)

// ValidStatus returns true if s is a known occupancy status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusVacant, StatusOccupied:
		return true
	}
	return false
}

// Property is a rentable unit.
type Property struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Type        Type            `json:"type"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...any) error }) (*Property, error) {
	var p Property
	var typ, status string
	var updatedAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.Name, &p.Address, &typ, &p.MonthlyRent,
		&status, &p.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Type = Type(typ)
	p.Status = Status(status)
	if p.Status == "" {
		p.Status = StatusVacant
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		p.UpdatedAt = &t
	}

	return &p, nil
}
