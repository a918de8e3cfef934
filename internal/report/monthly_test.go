package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/payment"
)

func TestMonthlyMarch(t *testing.T) {
	payments := []*payment.Payment{
		{Date: "2024-03-05", Amount: decimal.NewFromInt(1000)},
		{Date: "2024-03-20", Amount: decimal.NewFromInt(500)},
	}

	months := Monthly(2024, payments, nil)
	require.Len(t, months, 12)
	for _, m := range months {
		want := decimal.Zero
		if m.Month == 3 {
			want = decimal.NewFromInt(1500)
		}
		assert.True(t, m.Income.Equal(want), "month %d income = %s, want %s", m.Month, m.Income, want)
	}
	assert.Equal(t, "Mar", months[2].Label)
	assert.Equal(t, "Jan", months[0].Label)
}

func TestMonthlySkipsOtherYearsAndBadDates(t *testing.T) {
	payments := []*payment.Payment{
		{Date: "2023-03-05", Amount: decimal.NewFromInt(1000)},
		{Date: "not a date", Amount: decimal.NewFromInt(7)},
		{Date: "2024-12-31T23:00:00Z", Amount: decimal.NewFromInt(40)},
	}
	expenses := []*expense.Expense{
		{Date: "2024-12-01", Amount: decimal.NewFromInt(15)},
		{Date: "", Amount: decimal.NewFromInt(99)},
	}

	months := Monthly(2024, payments, expenses)
	dec := months[11]
	assert.True(t, dec.Income.Equal(decimal.NewFromInt(40)))
	assert.True(t, dec.Expenses.Equal(decimal.NewFromInt(15)))
	assert.True(t, dec.Net.Equal(decimal.NewFromInt(25)))
	assert.True(t, months[2].Income.IsZero())
}

func TestMonthlyConservesTotals(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		var payments []*payment.Payment
		var expenses []*expense.Expense
		inYear := decimal.Zero
		spent := decimal.Zero

		for i := 0; i < n; i++ {
			year := rapid.IntRange(2023, 2025).Draw(rt, fmt.Sprintf("year%d", i))
			month := rapid.IntRange(1, 12).Draw(rt, fmt.Sprintf("month%d", i))
			day := rapid.IntRange(1, 28).Draw(rt, fmt.Sprintf("day%d", i))
			cents := rapid.Int64Range(1, 1_000_000).Draw(rt, fmt.Sprintf("cents%d", i))
			amount := decimal.New(cents, -2)
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout)

			if rapid.Bool().Draw(rt, fmt.Sprintf("isPayment%d", i)) {
				payments = append(payments, &payment.Payment{Date: d, Amount: amount})
				if year == 2024 {
					inYear = inYear.Add(amount)
				}
			} else {
				expenses = append(expenses, &expense.Expense{Date: d, Amount: amount})
				if year == 2024 {
					spent = spent.Add(amount)
				}
			}
		}

		income, out := decimal.Zero, decimal.Zero
		for _, m := range Monthly(2024, payments, expenses) {
			if !m.Net.Equal(m.Income.Sub(m.Expenses)) {
				rt.Fatalf("month %d: net %s != %s - %s", m.Month, m.Net, m.Income, m.Expenses)
			}
			income = income.Add(m.Income)
			out = out.Add(m.Expenses)
		}
		if !income.Equal(inYear) {
			rt.Fatalf("income %s, want %s", income, inYear)
		}
		if !out.Equal(spent) {
			rt.Fatalf("expenses %s, want %s", out, spent)
		}
	})
}

func TestExpensesIn(t *testing.T) {
	expenses := []*expense.Expense{
		{Date: "2024-06-01", Amount: decimal.NewFromInt(100)},
		{Date: "2024-06-30", Amount: decimal.NewFromInt(50)},
		{Date: "2024-07-01", Amount: decimal.NewFromInt(9)},
		{Date: "2023-06-15", Amount: decimal.NewFromInt(9)},
	}

	got := ExpensesIn(2024, time.June, expenses)
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "got %s", got)
}
