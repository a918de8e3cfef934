package ledger

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evcraddock/rent-ledger/internal/money"
	"github.com/evcraddock/rent-ledger/internal/report"
)

// Amount is a money value as submitted by a client. It accepts a JSON
// number or a numeric string and is parsed during validation, so a bad
// value becomes a ValidationError rather than a decode failure.
type Amount struct {
	raw string
	set bool
}

// NewAmount returns an Amount holding s.
func NewAmount(s string) Amount {
	return Amount{raw: s, set: true}
}

// AmountOf returns an Amount holding d.
func AmountOf(d decimal.Decimal) Amount {
	return NewAmount(d.String())
}

// IsSet reports whether a value was supplied.
func (a Amount) IsSet() bool {
	return a.set && strings.TrimSpace(a.raw) != ""
}

func (a Amount) String() string {
	return a.raw
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = Amount{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = NewAmount(s)
	default:
		*a = NewAmount(string(b))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.raw)
}

// parse validates the amount for field. Zero is accepted only when
// allowZero is set; negative values never are.
func (a Amount) parse(field string, allowZero bool) (decimal.Decimal, error) {
	if !a.IsSet() {
		return decimal.Zero, invalid(field, "is required")
	}
	d, err := money.Parse(a.raw)
	if err != nil {
		return decimal.Zero, invalid(field, "must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, invalid(field, "must not be negative")
	}
	if !allowZero && d.IsZero() {
		return decimal.Zero, invalid(field, "must be greater than zero")
	}
	return d, nil
}

// PropertyInput is the body of a property create or update.
type PropertyInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Type        string `json:"type"`
	MonthlyRent Amount `json:"monthlyRent"`
	// Status is optional; empty means Vacant on create and unchanged on update.
	Status string `json:"status,omitempty"`
}

// TenantInput is the body of a tenant create or update.
type TenantInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PropertyID   string `json:"propertyId,omitempty"`
	PropertyName string `json:"propertyName,omitempty"`
	MonthlyRent  Amount `json:"monthlyRent"`
	LeaseStart   string `json:"leaseStart"`
	LeaseEnd     string `json:"leaseEnd"`
	RentStatus   string `json:"rentStatus,omitempty"`
}

// PaymentInput is the body of a payment create.
type PaymentInput struct {
	TenantID string `json:"tenantId"`
	Amount   Amount `json:"amount"`
	Date     string `json:"date"`
	Status   string `json:"status,omitempty"`
}

// ExpenseInput is the body of an expense create.
type ExpenseInput struct {
	PropertyID  string `json:"propertyId,omitempty"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

// SettingsInput is the body of a settings update. Nil fields keep their
// current values.
type SettingsInput struct {
	Currency      *string `json:"currency,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

func required(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", invalid(field, "is required")
	}
	return value, nil
}

func requiredDate(field, value string) (string, error) {
	v, err := required(field, value)
	if err != nil {
		return "", err
	}
	if _, err := report.ParseDate(v); err != nil {
		return "", invalid(field, "must be a date (YYYY-MM-DD)")
	}
	return v, nil
}
