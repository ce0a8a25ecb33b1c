// Package seed loads demo transactions and goals from a YAML file into a
// ledger at startup.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"finboard/internal/core"
)

const dateLayout = "2006-01-02"

// File is the on-disk seed format.
//
//	transactions:
//	  - type: income
//	    category: salary
//	    amount: "85000"
//	    days_ago: 3
//	goals:
//	  - name: Emergency Fund
//	    target: "100000"
//	    current: "25000"
type File struct {
	Transactions []Transaction `yaml:"transactions"`
	Goals        []Goal        `yaml:"goals"`
}

// Transaction is dated either relative to today (DaysAgo) or absolutely
// (Date, YYYY-MM-DD). When both are empty the transaction is dated now.
type Transaction struct {
	Type        string `yaml:"type"`
	Category    string `yaml:"category"`
	Amount      string `yaml:"amount"`
	Description string `yaml:"description"`
	Vendor      string `yaml:"vendor"`
	DaysAgo     *int   `yaml:"days_ago"`
	Date        string `yaml:"date"`
}

type Goal struct {
	Name    string `yaml:"name"`
	Target  string `yaml:"target"`
	Current string `yaml:"current"`
}

// Target is the part of the ledger the seeder writes to.
type Target interface {
	ImportTransaction(ctx context.Context, in core.TransactionInput, date time.Time) (core.Transaction, error)
	AddGoal(ctx context.Context, name string, target decimal.Decimal) (core.Goal, error)
	UpdateGoalProgress(ctx context.Context, id string, current decimal.Decimal) (core.Goal, error)
	Now() time.Time
	Location() *time.Location
}

// Result counts what Apply inserted.
type Result struct {
	Transactions int
	Goals        int
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed YAML: %w", err)
	}
	return &f, nil
}

// Apply inserts every transaction and goal in f. It stops at the first
// invalid entry and reports its position; entries before it stay applied.
func Apply(ctx context.Context, t Target, f *File) (Result, error) {
	var res Result
	now := t.Now().In(t.Location())

	for i, st := range f.Transactions {
		in, date, err := st.resolve(now, t.Location())
		if err != nil {
			return res, fmt.Errorf("seed transaction %d: %w", i, err)
		}
		if _, err := t.ImportTransaction(ctx, in, date); err != nil {
			return res, fmt.Errorf("seed transaction %d: %w", i, err)
		}
		res.Transactions++
	}

	for i, sg := range f.Goals {
		if err := applyGoal(ctx, t, sg); err != nil {
			return res, fmt.Errorf("seed goal %d: %w", i, err)
		}
		res.Goals++
	}
	return res, nil
}

func (st Transaction) resolve(now time.Time, loc *time.Location) (core.TransactionInput, time.Time, error) {
	typ, err := core.ParseTransactionType(st.Type)
	if err != nil {
		return core.TransactionInput{}, time.Time{}, err
	}
	amount, err := core.ParseAmount(st.Amount)
	if err != nil {
		return core.TransactionInput{}, time.Time{}, &core.ValidationError{Field: "amount", Err: err}
	}

	date := now
	switch {
	case st.Date != "":
		d, err := time.ParseInLocation(dateLayout, st.Date, loc)
		if err != nil {
			return core.TransactionInput{}, time.Time{}, &core.ValidationError{Field: "date", Err: err}
		}
		y, m, day := now.In(loc).Date()
		if d.After(time.Date(y, m, day, 0, 0, 0, 0, loc)) {
			return core.TransactionInput{}, time.Time{}, &core.ValidationError{Field: "date", Err: core.ErrFutureDate}
		}
		// Noon keeps the transaction on the same calendar day across DST shifts.
		date = d.Add(12 * time.Hour)
		// Seeded rows never sort ahead of transactions added from now on.
		if date.After(now) {
			date = now
		}
	case st.DaysAgo != nil:
		if *st.DaysAgo < 0 {
			return core.TransactionInput{}, time.Time{}, &core.ValidationError{Field: "days_ago", Err: core.ErrInvalidDate}
		}
		date = now.AddDate(0, 0, -*st.DaysAgo)
	}

	in := core.TransactionInput{
		Type:        typ,
		Category:    st.Category,
		Amount:      amount,
		Description: st.Description,
		Vendor:      st.Vendor,
	}
	return in, date, nil
}

func applyGoal(ctx context.Context, t Target, sg Goal) error {
	target, err := core.ParseAmount(sg.Target)
	if err != nil {
		return &core.ValidationError{Field: "target", Err: core.ErrInvalidTarget}
	}
	g, err := t.AddGoal(ctx, sg.Name, target)
	if err != nil {
		return err
	}
	if sg.Current == "" {
		return nil
	}
	current, err := decimal.NewFromString(sg.Current)
	if err != nil {
		return &core.ValidationError{Field: "current", Err: core.ErrInvalidAmount}
	}
	_, err = t.UpdateGoalProgress(ctx, g.ID, current)
	return err
}
