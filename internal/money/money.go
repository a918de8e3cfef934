// Package money holds amount parsing and currency display helpers.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultSymbol is the currency symbol used until settings say otherwise.
const DefaultSymbol = "₺"

// Symbols lists the currency symbols offered by the settings screen.
var Symbols = []string{"₺", "$", "€", "£", "¥"}

var symbolCodes = map[string]string{
	"₺": gomoney.TRY,
	"$": gomoney.USD,
	"€": gomoney.EUR,
	"£": gomoney.GBP,
	"¥": gomoney.JPY,
}

// Parse converts a user-supplied amount to a decimal.
// Surrounding whitespace is ignored; an empty string is an error.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// Sum adds up amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders an amount for display with the given currency symbol,
// e.g. "₺1,500.00". Unknown symbols are prefixed to a two-decimal amount.
func Format(amount decimal.Decimal, symbol string) string {
	var f *gomoney.Formatter
	if code, ok := symbolCodes[symbol]; ok {
		f = gomoney.GetCurrency(code).Formatter()
	} else {
		f = gomoney.NewFormatter(2, ".", ",", symbol, "$1")
	}
	return f.Format(amount.Shift(int32(f.Fraction)).Round(0).IntPart())
}
