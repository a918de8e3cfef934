package report

import (
	"errors"
	"fmt"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"

	"github.com/evcraddock/rent-ledger/internal/expense"
)

// ErrNoExpenses is returned by ExpenseChart when there is nothing to draw.
var ErrNoExpenses = errors.New("no expenses to chart")

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category expense.Category `json:"category"`
	Total    decimal.Decimal  `json:"total"`
}

// ByCategory totals the expenses of year per category, in category order.
// Categories without expenses are omitted.
func ByCategory(year int, expenses []*expense.Expense) []CategoryTotal {
	sums := make(map[expense.Category]decimal.Decimal)
	for _, e := range expenses {
		if _, ok := monthIndex(e.Date, year); !ok {
			continue
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	var totals []CategoryTotal
	for _, c := range expense.Categories {
		if sum, ok := sums[c]; ok {
			totals = append(totals, CategoryTotal{Category: c, Total: sum})
		}
	}
	return totals
}

// ExpenseChart renders a PNG pie chart of the expenses of year by category.
func ExpenseChart(year int, expenses []*expense.Expense) ([]byte, error) {
	totals := ByCategory(year, expenses)
	if len(totals) == 0 {
		return nil, ErrNoExpenses
	}

	values := make([]float64, 0, len(totals))
	names := make([]string, 0, len(totals))
	for _, t := range totals {
		values = append(values, t.Total.InexactFloat64())
		names = append(names, string(t.Category))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Expenses by Category - %d", year),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("creating chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf, nil
}
