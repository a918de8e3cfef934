package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/property"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// Summary is the dashboard overview.
type Summary struct {
	TotalProperties    int             `json:"totalProperties"`
	OccupiedProperties int             `json:"occupiedProperties"`
	VacantProperties   int             `json:"vacantProperties"`
	TotalTenants       int             `json:"totalTenants"`
	PendingTenants     int             `json:"pendingTenants"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"`
	RentDue            decimal.Decimal `json:"rentDue"`
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	ExpiringLeases     int             `json:"expiringLeases"`
	ExpiredLeases      int             `json:"expiredLeases"`
	Currency           string          `json:"currency"`
}

// Dashboard summarizes the portfolio as of now. Monthly income is the rent
// of tenants marked Paid and rent due the rent of those still Pending;
// monthly expenses cover the calendar month containing now.
func Dashboard(properties []*property.Property, tenants []*tenant.Tenant, expenses []*expense.Expense, currency string, now time.Time) Summary {
	s := Summary{
		TotalProperties: len(properties),
		TotalTenants:    len(tenants),
		MonthlyIncome:   decimal.Zero,
		RentDue:         decimal.Zero,
		Currency:        currency,
	}

	for _, p := range properties {
		if p.Status == property.StatusOccupied {
			s.OccupiedProperties++
		} else {
			s.VacantProperties++
		}
	}

	for _, t := range tenants {
		switch t.RentStatus {
		case tenant.RentStatusPaid:
			s.MonthlyIncome = s.MonthlyIncome.Add(t.MonthlyRent)
		case tenant.RentStatusPending:
			s.RentDue = s.RentDue.Add(t.MonthlyRent)
			s.PendingTenants++
		}

		end, err := ParseDate(t.LeaseEnd)
		if err != nil {
			continue
		}
		switch LeaseExpiry(end, now).State {
		case LeaseExpired:
			s.ExpiredLeases++
		case LeaseExpiring:
			s.ExpiringLeases++
		}
	}

	s.MonthlyExpenses = ExpensesIn(now.Year(), now.Month(), expenses)
	s.NetIncome = s.MonthlyIncome.Sub(s.MonthlyExpenses)
	return s
}
