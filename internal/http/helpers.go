package http

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/ledger"
)

// sanitizeInput trims s and drops control characters other than tab and
// newlines.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// moneyView carries an exact decimal string plus its display form.
type moneyView struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

type transactionView struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Category     string    `json:"category"`
	CategoryName string    `json:"category_name"`
	Amount       moneyView `json:"amount"`
	Description  string    `json:"description"`
	Vendor       string    `json:"vendor"`
	Date         time.Time `json:"date"`
}

type summaryView struct {
	TotalIncome      moneyView `json:"total_income"`
	TotalExpenses    moneyView `json:"total_expenses"`
	TotalInvestments moneyView `json:"total_investments"`
	Balance          moneyView `json:"balance"`
	Savings          moneyView `json:"savings"`
	Revision         uint64    `json:"revision"`
}

type seriesView struct {
	PeriodDays int      `json:"period_days"`
	Labels     []string `json:"labels"`
	Income     []string `json:"income"`
	Expenses   []string `json:"expenses"`
}

type balancePointView struct {
	Label   string    `json:"label"`
	Balance moneyView `json:"balance"`
}

type balanceView struct {
	PeriodDays int                `json:"period_days"`
	Points     []balancePointView `json:"points"`
}

type goalView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Target          moneyView `json:"target"`
	Current         moneyView `json:"current"`
	ProgressPercent int       `json:"progress_percent"`
}

func (s *Server) money(d decimal.Decimal) moneyView {
	return moneyView{Value: d.StringFixed(2), Display: core.FormatAmount(d, s.opts.Currency)}
}

func (s *Server) transactionView(tx core.Transaction) transactionView {
	return transactionView{
		ID:           tx.ID,
		Type:         tx.Type.String(),
		Category:     tx.Category,
		CategoryName: core.CategoryName(tx.Category),
		Amount:       s.money(tx.Amount),
		Description:  tx.Description,
		Vendor:       tx.Vendor,
		Date:         tx.Date,
	}
}

func (s *Server) goalView(g core.Goal) goalView {
	return goalView{
		ID:              g.ID,
		Name:            g.Name,
		Target:          s.money(g.Target),
		Current:         s.money(g.Current),
		ProgressPercent: ledger.GoalProgressPercent(g),
	}
}

func decimalStrings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.StringFixed(2)
	}
	return out
}
