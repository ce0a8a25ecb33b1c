// Package memory provides the default in-process ledger store. State lives
// for the lifetime of the process only.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"finboard/internal/core"
)

type Store struct {
	mu    sync.Mutex
	txs   []core.Transaction // most recent first
	goals []core.Goal        // creation order
}

func New() *Store {
	return &Store{}
}

// InsertTransaction places tx before every transaction dated at or before it.
func (s *Store) InsertTransaction(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.txs {
		if existing.ID == tx.ID {
			return fmt.Errorf("duplicate transaction id %q", tx.ID)
		}
	}
	i := sort.Search(len(s.txs), func(i int) bool {
		return !s.txs[i].Date.After(tx.Date)
	})
	s.txs = append(s.txs, core.Transaction{})
	copy(s.txs[i+1:], s.txs[i:])
	s.txs[i] = tx
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListTransactions(_ context.Context, limit int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.txs)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]core.Transaction(nil), s.txs[:n]...), nil
}

func (s *Store) InsertGoal(_ context.Context, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.goals {
		if existing.ID == g.ID {
			return fmt.Errorf("duplicate goal id %q", g.ID)
		}
	}
	s.goals = append(s.goals, g)
	return nil
}

func (s *Store) GetGoal(_ context.Context, id string) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return core.Goal{}, &core.NotFoundError{Resource: "goal", ID: id}
}

func (s *Store) UpdateGoal(_ context.Context, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == g.ID {
			s.goals[i] = g
			return nil
		}
	}
	return &core.NotFoundError{Resource: "goal", ID: g.ID}
}

func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...), nil
}
