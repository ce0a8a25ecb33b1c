// Package services orchestrates ledger operations with their side effects:
// change events on AMQP and cached chart series.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/amqp"
	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/ledger"
	applog "finboard/internal/log"
)

// Publisher delivers ledger change events. *amqp.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, evt *amqp.LedgerEvent) error
}

// DashboardService is the single entry point used by HTTP handlers and CLI
// commands. Mutations go to the ledger first; a failed publish is logged and
// never fails the mutation.
type DashboardService struct {
	ledger    *ledger.Ledger
	publisher Publisher
	logger    *applog.Logger
	series    *cache.LRUCache[core.Series]
	balance   *cache.LRUCache[[]core.BalancePoint]
}

type Option func(*DashboardService)

// WithPublisher enables change events. A nil publisher disables them.
func WithPublisher(p Publisher) Option {
	return func(s *DashboardService) { s.publisher = p }
}

// WithSeriesCache caches series and balance series for ttl, keyed by ledger
// revision, period and current day.
func WithSeriesCache(size int, ttl time.Duration) Option {
	return func(s *DashboardService) {
		if ttl <= 0 {
			return
		}
		s.series = cache.NewLRUCache[core.Series](size, ttl)
		s.balance = cache.NewLRUCache[[]core.BalancePoint](size, ttl)
	}
}

func NewDashboardService(l *ledger.Ledger, logger *applog.Logger, opts ...Option) *DashboardService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	s := &DashboardService{
		ledger: l,
		logger: logger.WithComponent(applog.ComponentLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Caches returns the series caches so a cache.Manager can sweep them.
func (s *DashboardService) Caches() []cache.Cleaner {
	if s.series == nil {
		return nil
	}
	return []cache.Cleaner{s.series, s.balance}
}

func (s *DashboardService) Ledger() *ledger.Ledger {
	return s.ledger
}

func (s *DashboardService) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	tx, err := s.ledger.AddTransaction(ctx, in)
	if err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithTransaction(tx.ID, tx.Type.String(), tx.Category, tx.Amount).
		WithRevision(s.ledger.Revision()).
		ToSlice()...)
	s.publish(ctx, amqp.EventTransactionAdded, tx.ID)
	return tx, nil
}

// DeleteTransaction reports whether a transaction was removed. Unknown ids
// are not an error.
func (s *DashboardService) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	removed, err := s.ledger.DeleteTransaction(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTxID, id,
		applog.FieldRevision, s.ledger.Revision())
	s.publish(ctx, amqp.EventTransactionDeleted, id)
	return true, nil
}

func (s *DashboardService) ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	return s.ledger.ListTransactions(ctx, limit)
}

func (s *DashboardService) Summary(ctx context.Context) (core.Summary, error) {
	return s.ledger.Summary(ctx)
}

func (s *DashboardService) Series(ctx context.Context, periodDays int) (core.Series, error) {
	if s.series == nil {
		return s.ledger.Series(ctx, periodDays)
	}
	return s.series.GetOrLoad(s.cacheKey(periodDays), func() (core.Series, error) {
		return s.ledger.Series(ctx, periodDays)
	})
}

func (s *DashboardService) BalanceSeries(ctx context.Context, periodDays int) ([]core.BalancePoint, error) {
	if s.balance == nil {
		return s.ledger.BalanceSeries(ctx, periodDays)
	}
	return s.balance.GetOrLoad(s.cacheKey(periodDays), func() ([]core.BalancePoint, error) {
		return s.ledger.BalanceSeries(ctx, periodDays)
	})
}

// cacheKey changes whenever the ledger is mutated or the calendar day rolls
// over, either of which changes the series.
func (s *DashboardService) cacheKey(periodDays int) string {
	day := s.ledger.Now().In(s.ledger.Location()).Format("2006-01-02")
	return fmt.Sprintf("%d:%d:%s", s.ledger.Revision(), periodDays, day)
}

func (s *DashboardService) AddGoal(ctx context.Context, name string, target decimal.Decimal) (core.Goal, error) {
	g, err := s.ledger.AddGoal(ctx, name, target)
	if err != nil {
		return core.Goal{}, err
	}
	s.logger.InfoContext(ctx, "Goal added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithGoal(g.ID, g.Name).
		WithRevision(s.ledger.Revision()).
		ToSlice()...)
	s.publish(ctx, amqp.EventGoalAdded, g.ID)
	return g, nil
}

func (s *DashboardService) UpdateGoalProgress(ctx context.Context, id string, current decimal.Decimal) (core.Goal, error) {
	g, err := s.ledger.UpdateGoalProgress(ctx, id, current)
	if err != nil {
		return core.Goal{}, err
	}
	s.logger.InfoContext(ctx, "Goal progress updated", applog.NewFields().
		WithOperation(applog.OpUpdate).
		WithGoal(g.ID, g.Name).
		WithRevision(s.ledger.Revision()).
		ToSlice()...)
	s.publish(ctx, amqp.EventGoalUpdated, g.ID)
	return g, nil
}

func (s *DashboardService) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return s.ledger.ListGoals(ctx)
}

func (s *DashboardService) publish(ctx context.Context, eventType amqp.EventType, id string) {
	if s.publisher == nil {
		return
	}
	evt := amqp.NewLedgerEvent(eventType, id, s.ledger.Revision())
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event", applog.NewFields().
			WithOperation(applog.OpPublish).
			WithError(err, applog.ErrorTypeNetwork).
			WithRevision(evt.Revision).
			ToSlice()...)
	}
}
