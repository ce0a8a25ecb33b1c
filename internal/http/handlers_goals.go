package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.ListGoals(r.Context())
	if err != nil {
		writeError(w, r, applog.OpList, err)
		return
	}
	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = s.goalView(g)
	}
	NewJSONResponse().Data(map[string]any{"goals": views}).Write(w)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	target, err := core.ParseAmount(p.Get("target"))
	if err != nil {
		writeError(w, r, applog.OpCreate, &core.ValidationError{Field: "target", Err: core.ErrInvalidTarget})
		return
	}
	g, err := s.svc.AddGoal(r.Context(), p.Get("name"), target)
	if err != nil {
		writeError(w, r, applog.OpCreate, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/goals/"+g.ID).
		Data(s.goalView(g)).
		Write(w)
}

// handleUpdateGoalProgress accepts any number for current; the ledger clamps
// it into [0, target].
func (s *Server) handleUpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	current, err := decimal.NewFromString(p.Get("current"))
	if err != nil {
		writeError(w, r, applog.OpUpdate, &core.ValidationError{Field: "current", Err: core.ErrInvalidAmount})
		return
	}
	g, err := s.svc.UpdateGoalProgress(r.Context(), r.PathValue("id"), current)
	if err != nil {
		writeError(w, r, applog.OpUpdate, err)
		return
	}
	NewJSONResponse().Data(s.goalView(g)).Write(w)
}
