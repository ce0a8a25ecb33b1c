// Package ledger implements the ledger aggregator: it owns the transaction
// and goal collections and derives summaries and chart series from them.
//
// Nothing derived is stored. Every query rescans the current collection, so
// results are always consistent with the last mutation.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// Ledger serializes mutations so there is a single writer at any time.
type Ledger struct {
	mu       sync.RWMutex
	store    Store
	now      func() time.Time
	loc      *time.Location
	newID    func() (string, error)
	revision atomic.Uint64
}

type Option func(*Ledger)

// WithClock overrides the time source used for new transactions and for
// deciding which day is "today".
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the zone in which calendar days are computed.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) { l.loc = loc }
}

// WithIDGenerator overrides the ID source.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(l *Ledger) { l.newID = gen }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		newID: newUUIDv7,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Revision increments on every successful mutation. Callers caching derived
// data key it by revision.
func (l *Ledger) Revision() uint64 {
	return l.revision.Load()
}

// Location returns the zone used for calendar-day bucketing.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// Now returns the ledger's current time.
func (l *Ledger) Now() time.Time {
	return l.now()
}

// AddTransaction validates in, stamps it with a fresh ID and the current
// time and records it as the most recent transaction.
func (l *Ledger) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	return l.insert(ctx, in, l.now())
}

// ImportTransaction records a transaction with a caller-supplied date, as
// seed data does. It is placed in recency order by date.
func (l *Ledger) ImportTransaction(ctx context.Context, in core.TransactionInput, date time.Time) (core.Transaction, error) {
	if date.IsZero() {
		return core.Transaction{}, &core.ValidationError{Field: "date", Err: core.ErrInvalidDate}
	}
	return l.insert(ctx, in, date)
}

func (l *Ledger) insert(ctx context.Context, in core.TransactionInput, date time.Time) (core.Transaction, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}

	id, err := l.newID()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}
	tx := core.Transaction{
		ID:          id,
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		Vendor:      in.Vendor,
		// Round(0) strips the monotonic reading so stored and returned values compare equal.
		Date: date.Round(0),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.InsertTransaction(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	l.revision.Add(1)
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id. Deleting an
// unknown id is a no-op that reports false.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	removed, err := l.store.DeleteTransaction(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	if removed {
		l.revision.Add(1)
	}
	return removed, nil
}

// ListTransactions returns the most recent transactions first; limit <= 0
// returns all of them.
func (l *Ledger) ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	txs, err := l.store.ListTransactions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (l *Ledger) Summary(ctx context.Context) (core.Summary, error) {
	txs, err := l.ListTransactions(ctx, 0)
	if err != nil {
		return core.Summary{}, err
	}
	return Summarize(txs), nil
}

// Series returns periodDays daily income/expense buckets ending today.
func (l *Ledger) Series(ctx context.Context, periodDays int) (core.Series, error) {
	if periodDays <= 0 {
		return core.Series{}, &core.ValidationError{Field: "period", Err: core.ErrInvalidPeriod}
	}
	txs, err := l.ListTransactions(ctx, 0)
	if err != nil {
		return core.Series{}, err
	}
	return BuildSeries(txs, periodDays, l.now(), l.loc)
}

// BalanceSeries returns the end-of-day running balance for periodDays days
// ending today.
func (l *Ledger) BalanceSeries(ctx context.Context, periodDays int) ([]core.BalancePoint, error) {
	if periodDays <= 0 {
		return nil, &core.ValidationError{Field: "period", Err: core.ErrInvalidPeriod}
	}
	txs, err := l.ListTransactions(ctx, 0)
	if err != nil {
		return nil, err
	}
	return BuildBalanceSeries(txs, periodDays, l.now(), l.loc)
}

func (l *Ledger) AddGoal(ctx context.Context, name string, target decimal.Decimal) (core.Goal, error) {
	g, err := core.NewGoal(name, target)
	if err != nil {
		return core.Goal{}, err
	}
	if g.ID, err = l.newID(); err != nil {
		return core.Goal{}, fmt.Errorf("generate goal id: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.InsertGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	l.revision.Add(1)
	return g, nil
}

// UpdateGoalProgress sets the goal's current amount, clamped to [0, target].
func (l *Ledger) UpdateGoalProgress(ctx context.Context, id string, current decimal.Decimal) (core.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, err := l.store.GetGoal(ctx, strings.TrimSpace(id))
	if err != nil {
		if core.IsNotFound(err) {
			return core.Goal{}, err
		}
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	g = g.WithProgress(current)
	if err := l.store.UpdateGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	l.revision.Add(1)
	return g, nil
}

func (l *Ledger) ListGoals(ctx context.Context) ([]core.Goal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	goals, err := l.store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}
