package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income     TransactionType = "income"
	Expense    TransactionType = "expense"
	Investment TransactionType = "investment"
)

type (
	TransactionType string

	// Transaction is a single recorded money movement. It is never mutated
	// after creation.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Vendor      string          `json:"vendor"`
		Date        time.Time       `json:"date"`
	}

	// TransactionInput carries the caller-supplied fields of a new transaction.
	TransactionInput struct {
		Type        TransactionType
		Category    string
		Amount      decimal.Decimal
		Description string
		Vendor      string
	}

	// Goal is a named savings target with current progress.
	Goal struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Target  decimal.Decimal `json:"target"`
		Current decimal.Decimal `json:"current"`
	}
)

// IsValid reports whether t is one of the three known variants.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Investment:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType normalizes s and validates it.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	return t, nil
}

// Normalize trims the free-form fields, lowercases the category and fills
// description and vendor from the category display name when blank.
func (in TransactionInput) Normalize() TransactionInput {
	in.Type = TransactionType(strings.ToLower(strings.TrimSpace(string(in.Type))))
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Description = strings.TrimSpace(in.Description)
	in.Vendor = strings.TrimSpace(in.Vendor)

	name := CategoryName(in.Category)
	if in.Description == "" {
		in.Description = name
	}
	if in.Vendor == "" {
		in.Vendor = name
	}
	return in
}

func (in TransactionInput) Validate() error {
	if !in.Type.IsValid() {
		return &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	if strings.TrimSpace(in.Category) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	if err := ValidateAmount(in.Amount); err != nil {
		return &ValidationError{Field: "amount", Err: err}
	}
	if len(in.Description) > 200 {
		return &ValidationError{Field: "description", Err: ErrDescriptionTooLong}
	}
	return nil
}

// NewGoal validates name and target and returns a goal with zero progress.
// The ID is left for the caller to assign.
func NewGoal(name string, target decimal.Decimal) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Goal{}, &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if !target.IsPositive() {
		return Goal{}, &ValidationError{Field: "target", Err: ErrInvalidTarget}
	}
	return Goal{Name: name, Target: target, Current: decimal.Zero}, nil
}

// WithProgress returns a copy of g with Current clamped into [0, Target].
func (g Goal) WithProgress(current decimal.Decimal) Goal {
	switch {
	case current.IsNegative():
		current = decimal.Zero
	case current.GreaterThan(g.Target):
		current = g.Target
	}
	g.Current = current
	return g
}
