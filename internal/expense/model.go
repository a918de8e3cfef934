// Package expense provides the property expense model and data access.
package expense

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense.
type Category string

const (
	CategoryMaintenance Category = "Maintenance"
	CategoryRepair      Category = "Repair"
	CategoryUtilities   Category = "Utilities"
	CategoryInsurance   Category = "Insurance"
	CategoryTax         Category = "Tax"
	CategoryOther       Category = "Other"
)

// Categories lists every expense category in display order.
var Categories = []Category{
	CategoryMaintenance, CategoryRepair, CategoryUtilities, CategoryInsurance, CategoryTax, CategoryOther,
}

// ValidCategory returns true if s is a known expense category.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryMaintenance, CategoryRepair, CategoryUtilities, CategoryInsurance, CategoryTax, CategoryOther:
		return true
	}
	return false
}

// GeneralPropertyName labels expenses that are not tied to a property.
const GeneralPropertyName = "General"

// Expense is money spent on a property or on the portfolio in general.
type Expense struct {
	ID           string          `json:"id"`
	PropertyID   string          `json:"propertyId"`
	PropertyName string          `json:"propertyName"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Category     Category        `json:"category"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func scanExpense(row interface{ Scan(...any) error }) (*Expense, error) {
	var e Expense
	var propertyID sql.NullString
	var category string

	err := row.Scan(
		&e.ID, &propertyID, &e.PropertyName, &e.Description,
		&e.Amount, &e.Date, &category, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.PropertyID = propertyID.String
	e.Category = Category(category)
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}
