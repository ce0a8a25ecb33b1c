package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/ledger"
	applog "finboard/internal/log"
	"finboard/internal/storage/memory"
)

type fakePublisher struct {
	events []*amqp.LedgerEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, evt *amqp.LedgerEvent) error {
	f.events = append(f.events, evt)
	return f.err
}

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *DashboardService {
	t.Helper()
	l := ledger.New(memory.New(),
		ledger.WithClock(func() time.Time { return fixedNow }),
		ledger.WithLocation(time.UTC))
	logger := applog.New(applog.Config{Output: io.Discard})
	return NewDashboardService(l, logger, opts...)
}

func expense(amount int64) core.TransactionInput {
	return core.TransactionInput{Type: core.Expense, Category: "food", Amount: decimal.NewFromInt(amount)}
}

func TestDashboardService_PublishesEvents(t *testing.T) {
	pub := &fakePublisher{}
	s := newTestService(t, WithPublisher(pub))
	ctx := context.Background()

	tx, err := s.AddTransaction(ctx, expense(100))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	g, err := s.AddGoal(ctx, "Trip", decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if _, err := s.UpdateGoalProgress(ctx, g.ID, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("UpdateGoalProgress: %v", err)
	}
	if removed, err := s.DeleteTransaction(ctx, tx.ID); err != nil || !removed {
		t.Fatalf("DeleteTransaction = %v, %v", removed, err)
	}
	if removed, _ := s.DeleteTransaction(ctx, tx.ID); removed {
		t.Fatal("second delete should be a no-op")
	}

	want := []struct {
		typ amqp.EventType
		id  string
		rev uint64
	}{
		{amqp.EventTransactionAdded, tx.ID, 1},
		{amqp.EventGoalAdded, g.ID, 2},
		{amqp.EventGoalUpdated, g.ID, 3},
		{amqp.EventTransactionDeleted, tx.ID, 4},
	}
	if len(pub.events) != len(want) {
		t.Fatalf("published %d events, want %d", len(pub.events), len(want))
	}
	for i, w := range want {
		got := pub.events[i]
		if got.Type != w.typ || got.ID != w.id || got.Revision != w.rev {
			t.Errorf("event %d = %+v, want %v/%s/%d", i, got, w.typ, w.id, w.rev)
		}
	}
}

func TestDashboardService_PublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	s := newTestService(t, WithPublisher(pub))

	if _, err := s.AddTransaction(context.Background(), expense(10)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	txs, _ := s.ListTransactions(context.Background(), 0)
	if len(txs) != 1 {
		t.Errorf("transactions = %d, want 1", len(txs))
	}
}

func TestDashboardService_ValidationErrorsSkipPublish(t *testing.T) {
	pub := &fakePublisher{}
	s := newTestService(t, WithPublisher(pub))

	_, err := s.AddTransaction(context.Background(), core.TransactionInput{Type: core.Expense, Category: "food"})
	if !core.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, err := s.UpdateGoalProgress(context.Background(), "missing", decimal.NewFromInt(1)); !core.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events, want 0", len(pub.events))
	}
}

func TestDashboardService_SeriesCacheFollowsRevision(t *testing.T) {
	s := newTestService(t, WithSeriesCache(8, time.Hour))
	ctx := context.Background()

	if _, err := s.AddTransaction(ctx, expense(100)); err != nil {
		t.Fatal(err)
	}
	first, err := s.Series(ctx, 7)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if !first.Expenses[6].Equal(decimal.NewFromInt(100)) {
		t.Fatalf("today's expense = %s, want 100", first.Expenses[6])
	}

	if _, err := s.AddTransaction(ctx, expense(50)); err != nil {
		t.Fatal(err)
	}
	second, _ := s.Series(ctx, 7)
	if !second.Expenses[6].Equal(decimal.NewFromInt(150)) {
		t.Errorf("after mutation today's expense = %s, want 150", second.Expenses[6])
	}

	bal, err := s.BalanceSeries(ctx, 7)
	if err != nil {
		t.Fatalf("BalanceSeries: %v", err)
	}
	if !bal[6].Balance.Equal(decimal.NewFromInt(-150)) {
		t.Errorf("balance = %s, want -150", bal[6].Balance)
	}
	if len(s.Caches()) != 2 {
		t.Errorf("Caches = %d, want 2", len(s.Caches()))
	}

	if _, err := s.Series(ctx, 0); !core.IsValidation(err) {
		t.Errorf("Series(0) = %v, want validation error", err)
	}
}

func TestDashboardService_NoCacheNoPublisher(t *testing.T) {
	s := newTestService(t)
	if s.Caches() != nil {
		t.Error("caches should be nil without WithSeriesCache")
	}
	series, err := s.Series(context.Background(), 3)
	if err != nil || len(series.Labels) != 3 {
		t.Fatalf("Series = %+v, %v", series, err)
	}
	sum, err := s.Summary(context.Background())
	if err != nil || !sum.Balance.IsZero() {
		t.Errorf("Summary = %+v, %v", sum, err)
	}
}
