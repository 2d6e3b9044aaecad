package money_test

import (
	"testing"

	"github.com/darwincarillo2003/liquidation-backend/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formatted peso amount", "₱10,000.00", "10000"},
		{"plain number", "500", "500"},
		{"decimal with grouping", "₱1,234.56", "1234.56"},
		{"whitespace padded", " 2,500.00 ", "2500"},
		{"negative", "-₱120.50", "-120.5"},
		{"empty string", "", "0"},
		{"garbage", "abc", "0"},
		{"mixed garbage keeps numeric prefix", "12a.5x0", "12.5"},
		{"second dot terminates parse", "1.2.3", "1.2"},
		{"lone dot", ".", "0"},
		{"lone minus", "-", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			assert.True(t, money.Parse(tt.in).Equal(want), "Parse(%q) = %s, want %s", tt.in, money.Parse(tt.in), want)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero stays blank", "0", ""},
		{"small amount", "500", "₱500.00"},
		{"thousands grouping", "10000", "₱10,000.00"},
		{"millions grouping", "1234567.891", "₱1,234,567.89"},
		{"rounds half up", "1.005", "₱1.01"},
		{"negative", "-120.5", "-₱120.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, money.Format(d))
		})
	}
}

// Formatting then parsing must land back on the rounded source value.
func TestParseFormatRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.01", "1", "12.34", "999.99", "1000", "12500", "5251", "1234567.89"} {
		d, err := decimal.NewFromString(raw)
		assert.NoError(t, err)
		got := money.Parse(money.Format(d))
		assert.True(t, got.Equal(money.Round2(d)), "round trip of %s produced %s", raw, got)
	}
}
