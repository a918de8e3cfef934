package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1500", "1500", false},
		{" 12.50 ", "12.5", false},
		{"-3", "-3", false},
		{"", "", true},
		{"abc", "", true},
		{"1,500", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		symbol string
		want   string
	}{
		{"1500", "₺", "₺1,500.00"},
		{"1234.5", "$", "$1,234.50"},
		{"99.99", "€", "€99.99"},
		{"0", "£", "£0.00"},
		{"1500", "¥", "¥1,500"},
		{"-250", "$", "-$250.00"},
		{"10", "CHF ", "CHF 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol+tt.amount, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.amount), tt.symbol)
			if got != tt.want {
				t.Errorf("Format(%s, %q) = %q, want %q", tt.amount, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestSum(t *testing.T) {
	got := Sum(decimal.NewFromInt(1000), decimal.RequireFromString("500.25"))
	if !got.Equal(decimal.RequireFromString("1500.25")) {
		t.Errorf("Sum = %s, want 1500.25", got)
	}
	if !Sum().IsZero() {
		t.Error("empty Sum should be zero")
	}
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount decimal.Decimal `json:"amount"`
	}{decimal.RequireFromString("1500.5")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"amount":1500.5}` {
		t.Errorf("got %s", b)
	}
}
