package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

const (
	dayKeyLayout = "2006-01-02"
	// LabelLayout formats series labels ("15 Oct").
	LabelLayout = "2 Jan"
)

// Summarize computes the ledger totals in a single pass.
func Summarize(txs []core.Transaction) core.Summary {
	income, expenses, investments := decimal.Zero, decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			income = income.Add(tx.Amount)
		case core.Expense:
			expenses = expenses.Add(tx.Amount)
		case core.Investment:
			investments = investments.Add(tx.Amount)
		}
	}
	return core.Summary{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		TotalInvestments: investments,
		Balance:          income.Sub(expenses),
		Savings:          income.Sub(expenses).Sub(investments),
	}
}

// BuildSeries buckets income and expense amounts into periodDays calendar
// days ending today (in loc), oldest first. Days without transactions are
// kept with zero values; investments are not charted.
func BuildSeries(txs []core.Transaction, periodDays int, now time.Time, loc *time.Location) (core.Series, error) {
	loc = orLocal(loc)
	days, err := window(periodDays, now, loc)
	if err != nil {
		return core.Series{}, err
	}

	series := core.Series{
		Labels:   make([]string, len(days)),
		Income:   make([]decimal.Decimal, len(days)),
		Expenses: make([]decimal.Decimal, len(days)),
	}
	index := make(map[string]int, len(days))
	for i, day := range days {
		index[day.Format(dayKeyLayout)] = i
		series.Labels[i] = day.Format(LabelLayout)
		series.Income[i] = decimal.Zero
		series.Expenses[i] = decimal.Zero
	}

	for _, tx := range txs {
		i, ok := index[tx.Date.In(loc).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		switch tx.Type {
		case core.Income:
			series.Income[i] = series.Income[i].Add(tx.Amount)
		case core.Expense:
			series.Expenses[i] = series.Expenses[i].Add(tx.Amount)
		}
	}
	return series, nil
}

// BuildBalanceSeries returns the running balance (income minus expenses) at
// the end of each day in the window. Transactions before the window form the
// opening balance; transactions after today are ignored.
func BuildBalanceSeries(txs []core.Transaction, periodDays int, now time.Time, loc *time.Location) ([]core.BalancePoint, error) {
	loc = orLocal(loc)
	days, err := window(periodDays, now, loc)
	if err != nil {
		return nil, err
	}

	deltas := make([]decimal.Decimal, len(days))
	for i := range deltas {
		deltas[i] = decimal.Zero
	}
	index := make(map[string]int, len(days))
	for i, day := range days {
		index[day.Format(dayKeyLayout)] = i
	}

	opening := decimal.Zero
	start := days[0]
	for _, tx := range txs {
		var signed decimal.Decimal
		switch tx.Type {
		case core.Income:
			signed = tx.Amount
		case core.Expense:
			signed = tx.Amount.Neg()
		default:
			continue
		}
		local := tx.Date.In(loc)
		if i, ok := index[local.Format(dayKeyLayout)]; ok {
			deltas[i] = deltas[i].Add(signed)
		} else if local.Before(start) {
			opening = opening.Add(signed)
		}
	}

	points := make([]core.BalancePoint, len(days))
	running := opening
	for i, day := range days {
		running = running.Add(deltas[i])
		points[i] = core.BalancePoint{Label: day.Format(LabelLayout), Balance: running}
	}
	return points, nil
}

// GoalProgressPercent returns round(current / target * 100), or 0 when the
// target is zero.
func GoalProgressPercent(g core.Goal) int {
	if g.Target.IsZero() {
		return 0
	}
	return int(g.Current.Div(g.Target).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// window returns midnight of each calendar day from today-(periodDays-1) to
// today, in loc.
func window(periodDays int, now time.Time, loc *time.Location) ([]time.Time, error) {
	if periodDays <= 0 {
		return nil, &core.ValidationError{Field: "period", Err: core.ErrInvalidPeriod}
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	days := make([]time.Time, periodDays)
	for i := 0; i < periodDays; i++ {
		days[i] = today.AddDate(0, 0, i-(periodDays-1))
	}
	return days, nil
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
