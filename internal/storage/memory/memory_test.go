package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

func tx(id string, date time.Time) core.Transaction {
	return core.Transaction{ID: id, Type: core.Expense, Category: "food", Amount: decimal.NewFromInt(1), Date: date}
}

func TestInsertKeepsRecencyOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, item := range []core.Transaction{
		tx("a", base),
		tx("b", base.Add(time.Hour)),
		tx("c", base.Add(-24*time.Hour)),
		tx("d", base), // same instant as "a", inserted later
	} {
		if err := s.InsertTransaction(ctx, item); err != nil {
			t.Fatalf("insert %s: %v", item.ID, err)
		}
	}

	got, _ := s.ListTransactions(ctx, 0)
	want := []string{"b", "d", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	limited, _ := s.ListTransactions(ctx, 2)
	if len(limited) != 2 || limited[0].ID != "b" {
		t.Fatalf("unexpected limited list: %v", limited)
	}

	if err := s.InsertTransaction(ctx, tx("a", base)); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.InsertTransaction(ctx, tx("a", time.Now()))

	if ok, err := s.DeleteTransaction(ctx, "a"); !ok || err != nil {
		t.Fatalf("expected removal, got ok=%v err=%v", ok, err)
	}
	if ok, err := s.DeleteTransaction(ctx, "a"); ok || err != nil {
		t.Fatalf("expected no-op, got ok=%v err=%v", ok, err)
	}
}

func TestGoals(t *testing.T) {
	ctx := context.Background()
	s := New()
	g := core.Goal{ID: "g1", Name: "Car", Target: decimal.NewFromInt(100), Current: decimal.Zero}
	if err := s.InsertGoal(ctx, g); err != nil {
		t.Fatalf("insert goal: %v", err)
	}

	g.Current = decimal.NewFromInt(40)
	if err := s.UpdateGoal(ctx, g); err != nil {
		t.Fatalf("update goal: %v", err)
	}
	got, err := s.GetGoal(ctx, "g1")
	if err != nil || !got.Current.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected goal %+v err=%v", got, err)
	}

	if _, err := s.GetGoal(ctx, "missing"); !core.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.UpdateGoal(ctx, core.Goal{ID: "missing"}); !core.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	goals, _ := s.ListGoals(ctx)
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
}
