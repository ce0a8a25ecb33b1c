package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, core.Summary{
		TotalIncome:      decimal.NewFromInt(85000),
		TotalExpenses:    decimal.NewFromInt(3135),
		TotalInvestments: decimal.NewFromInt(10000),
		Balance:          decimal.NewFromInt(81865),
		Savings:          decimal.NewFromInt(71865),
	}, "INR")

	out := buf.String()
	for _, want := range []string{"₹85,000.00", "₹3,135.00", "₹81,865.00", "₹71,865.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSeries(t *testing.T) {
	var buf bytes.Buffer
	printSeries(&buf, core.Series{
		Labels:   []string{"9 Mar", "10 Mar"},
		Income:   []decimal.Decimal{decimal.Zero, decimal.NewFromInt(100)},
		Expenses: []decimal.Decimal{decimal.NewFromInt(5), decimal.Zero},
	}, "INR")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "10 Mar") || !strings.Contains(lines[2], "₹100.00") {
		t.Errorf("last row = %q", lines[2])
	}
}

func TestPrintGoals(t *testing.T) {
	var buf bytes.Buffer
	printGoals(&buf, []core.Goal{
		{Name: "Trip", Target: decimal.NewFromInt(1000), Current: decimal.NewFromInt(250)},
	}, "INR")
	if !strings.Contains(buf.String(), " 25% [#####...............]") {
		t.Errorf("goals output = %q", buf.String())
	}
}

func TestPrintTransactions(t *testing.T) {
	var buf bytes.Buffer
	printTransactions(&buf, []core.Transaction{{
		Type:     core.Expense,
		Category: "food",
		Amount:   decimal.NewFromInt(285),
		Vendor:   "Cafe",
		Date:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}}, "INR")
	out := buf.String()
	for _, want := range []string{"2025-03-10", "expense", "Food & Dining", "Cafe", "₹285.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("transactions output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[....]"},
		{50, "[##..]"},
		{100, "[####]"},
		{-30, "[....]"},
		{250, "[####]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.pct, 4); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
