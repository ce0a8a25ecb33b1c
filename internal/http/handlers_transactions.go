package http

import (
	"errors"
	"net/http"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query())
	if err != nil {
		writeError(w, r, applog.OpList, err)
		return
	}
	txs, err := s.svc.ListTransactions(r.Context(), limit)
	if err != nil {
		writeError(w, r, applog.OpList, err)
		return
	}
	views := make([]transactionView, len(txs))
	for i, tx := range txs {
		views[i] = s.transactionView(tx)
	}
	NewJSONResponse().Data(map[string]any{"transactions": views}).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			NewJSONResponse().Status(http.StatusRequestEntityTooLarge).Error(err.Error()).Write(w)
			return
		}
		BadRequestError("invalid request body").Write(w)
		return
	}

	typ, err := core.ParseTransactionType(p.Get("type"))
	if err != nil {
		writeError(w, r, applog.OpCreate, err)
		return
	}
	amount, err := parseAmountField(p, "amount")
	if err != nil {
		writeError(w, r, applog.OpCreate, err)
		return
	}

	tx, err := s.svc.AddTransaction(r.Context(), core.TransactionInput{
		Type:        typ,
		Category:    p.Get("category"),
		Amount:      amount,
		Description: p.Get("description"),
		Vendor:      p.Get("vendor"),
	})
	if err != nil {
		writeError(w, r, applog.OpCreate, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/transactions/"+tx.ID).
		Data(s.transactionView(tx)).
		Write(w)
}

// handleDeleteTransaction answers 204 whether or not the id existed.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
