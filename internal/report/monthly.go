package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/payment"
)

// MonthTotal is the income and expense total of one calendar month.
type MonthTotal struct {
	Month    int             `json:"month"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Monthly buckets payments and expenses of year by calendar month,
// January first. Records whose date does not parse are skipped.
func Monthly(year int, payments []*payment.Payment, expenses []*expense.Expense) []MonthTotal {
	months := make([]MonthTotal, 12)
	for i := range months {
		m := time.Month(i + 1)
		months[i] = MonthTotal{
			Month:    i + 1,
			Label:    m.String()[:3],
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	for _, p := range payments {
		if i, ok := monthIndex(p.Date, year); ok {
			months[i].Income = months[i].Income.Add(p.Amount)
		}
	}
	for _, e := range expenses {
		if i, ok := monthIndex(e.Date, year); ok {
			months[i].Expenses = months[i].Expenses.Add(e.Amount)
		}
	}

	for i := range months {
		months[i].Net = months[i].Income.Sub(months[i].Expenses)
	}
	return months
}

// ExpensesIn sums the expenses dated in the given calendar month.
func ExpensesIn(year int, month time.Month, expenses []*expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if i, ok := monthIndex(e.Date, year); ok && i == int(month)-1 {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func monthIndex(date string, year int) (int, bool) {
	t, err := ParseDate(date)
	if err != nil || t.Year() != year {
		return 0, false
	}
	return int(t.Month()) - 1, true
}
