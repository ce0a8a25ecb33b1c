// Package core provides the ledger domain model.
//
// This file contains amount parsing and validation plus display formatting
// for monetary values.
package core

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used for display when none is configured.
const DefaultCurrency = money.INR

// ParseAmount converts a decimal string into a positive amount.
//
// Surrounding whitespace is ignored. Signs are rejected, as are zero and
// anything decimal.NewFromString does not accept (NaN, Inf, "1.2.3").
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("-1")    -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// AmountFromFloat converts a float, rejecting NaN, infinities and values
// that are not strictly positive.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrInvalidAmount
	}
	d := decimal.NewFromFloat(f)
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// FormatAmount renders d as a currency string, grouped by thousands with
// the currency symbol as prefix (e.g. "₹85,000.00").
// Unknown currency codes, and amounts too large to count in minor units,
// fall back to "<fixed> <code>".
func FormatAmount(d decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return d.StringFixed(2) + " " + code
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).BigInt()
	if !minor.IsInt64() {
		return d.StringFixed(int32(cur.Fraction)) + " " + code
	}
	return money.New(minor.Int64(), code).Display()
}
