package core

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"85000", "85000", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.00", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"NaN", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestAmountFromFloat(t *testing.T) {
	if _, err := AmountFromFloat(12.5); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, f := range []float64{0, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := AmountFromFloat(f); err == nil {
			t.Fatalf("%v expected error", f)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"85000", "INR", "₹85,000.00"},
		{"1234567.891", "INR", "₹1,234,567.89"},
		{"0.5", "", "₹0.50"},
		{"12.3", "XYZ", "12.30 XYZ"},
		{"100000000000000000000", "INR", "100000000000000000000.00 INR"},
		// one paisa past the largest int64 minor-unit count
		{"92233720368547758.08", "INR", "92233720368547758.08 INR"},
		{"92233720368547758.07", "INR", "₹92,233,720,368,547,758.07"},
	}
	for _, tc := range cases {
		got := FormatAmount(decimal.RequireFromString(tc.amount), tc.currency)
		if got != tc.want {
			t.Errorf("FormatAmount(%s, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}
