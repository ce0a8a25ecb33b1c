package core

import "github.com/shopspring/decimal"

// Summary holds the ledger totals.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	Balance          decimal.Decimal `json:"balance"`
	Savings          decimal.Decimal `json:"savings"`
}

// Series is a day-bucketed sequence used for charting. All slices have the
// same length, one entry per calendar day, oldest first.
type Series struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// BalancePoint is the running balance at the end of a calendar day.
type BalancePoint struct {
	Label   string          `json:"label"`
	Balance decimal.Decimal `json:"balance"`
}

// Presets are the periods offered by the dashboard period selector. Any
// positive number of days is accepted.
var Presets = []int{7, 30, 90, 365}
