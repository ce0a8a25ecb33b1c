package http

import (
	"net/http"

	applog "finboard/internal/log"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summary(r.Context())
	if err != nil {
		writeError(w, r, applog.OpSummary, err)
		return
	}
	NewJSONResponse().Data(summaryView{
		TotalIncome:      s.money(sum.TotalIncome),
		TotalExpenses:    s.money(sum.TotalExpenses),
		TotalInvestments: s.money(sum.TotalInvestments),
		Balance:          s.money(sum.Balance),
		Savings:          s.money(sum.Savings),
		Revision:         s.svc.Ledger().Revision(),
	}).Write(w)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r.URL.Query(), s.opts.DefaultPeriodDays, s.opts.MaxPeriodDays)
	if err != nil {
		writeError(w, r, applog.OpSeries, err)
		return
	}
	series, err := s.svc.Series(r.Context(), period)
	if err != nil {
		writeError(w, r, applog.OpSeries, err)
		return
	}
	NewJSONResponse().Data(seriesView{
		PeriodDays: period,
		Labels:     series.Labels,
		Income:     decimalStrings(series.Income),
		Expenses:   decimalStrings(series.Expenses),
	}).Write(w)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r.URL.Query(), s.opts.DefaultPeriodDays, s.opts.MaxPeriodDays)
	if err != nil {
		writeError(w, r, applog.OpSeries, err)
		return
	}
	points, err := s.svc.BalanceSeries(r.Context(), period)
	if err != nil {
		writeError(w, r, applog.OpSeries, err)
		return
	}
	view := balanceView{PeriodDays: period, Points: make([]balancePointView, len(points))}
	for i, p := range points {
		view.Points[i] = balancePointView{Label: p.Label, Balance: s.money(p.Balance)}
	}
	NewJSONResponse().Data(view).Write(w)
}
