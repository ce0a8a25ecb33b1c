// Package storage provides a SQL-backed ledger store on top of a named,
// shared in-memory SQLite database. The database lives as long as the
// repository is open; nothing survives a restart.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// MemoryDSN returns the DSN of the shared in-memory database called name.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(name))
}

func NewSQLiteRepository(name string) (*SQLiteRepository, error) {
	dsn := MemoryDSN(name)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection serializes writes and keeps the in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransaction implements ledger.TransactionStore
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, tx core.Transaction) error {
	err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:          tx.ID,
		Type:        tx.Type.String(),
		Category:    tx.Category,
		Amount:      tx.Amount.String(),
		Description: tx.Description,
		Vendor:      tx.Vendor,
		OccurredAt:  tx.Date.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"type", tx.Type,
		"amount", tx.Amount.String())
	return nil
}

// DeleteTransaction implements ledger.TransactionStore
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	n, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return n > 0, nil
}

// ListTransactions implements ledger.TransactionStore
func (r *SQLiteRepository) ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	sqlLimit := int64(-1)
	if limit > 0 {
		sqlLimit = int64(limit)
	}
	rows, err := r.queries.ListTransactions(ctx, sqlLimit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount of transaction %s: %w", row.ID, err)
		}
		txs[i] = core.Transaction{
			ID:          row.ID,
			Type:        core.TransactionType(row.Type),
			Category:    row.Category,
			Amount:      amount,
			Description: row.Description,
			Vendor:      row.Vendor,
			Date:        time.Unix(0, row.OccurredAt),
		}
	}
	return txs, nil
}

// InsertGoal implements ledger.GoalStore
func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.Goal) error {
	err := r.queries.CreateGoal(ctx, CreateGoalParams{
		ID:      g.ID,
		Name:    g.Name,
		Target:  g.Target.String(),
		Current: g.Current.String(),
	})
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

// GetGoal implements ledger.GoalStore
func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	row, err := r.queries.GetGoal(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, &core.NotFoundError{Resource: "goal", ID: id}
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return goalFromRow(row)
}

// UpdateGoal implements ledger.GoalStore
func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	n, err := r.queries.UpdateGoalCurrent(ctx, g.ID, g.Current.String())
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Resource: "goal", ID: g.ID}
	}
	return nil
}

// ListGoals implements ledger.GoalStore
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.queries.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals := make([]core.Goal, len(rows))
	for i, row := range rows {
		if goals[i], err = goalFromRow(row); err != nil {
			return nil, err
		}
	}
	return goals, nil
}

func goalFromRow(row Goal) (core.Goal, error) {
	target, err := decimal.NewFromString(row.Target)
	if err != nil {
		return core.Goal{}, fmt.Errorf("parse target of goal %s: %w", row.ID, err)
	}
	current, err := decimal.NewFromString(row.Current)
	if err != nil {
		return core.Goal{}, fmt.Errorf("parse current of goal %s: %w", row.ID, err)
	}
	return core.Goal{ID: row.ID, Name: row.Name, Target: target, Current: current}, nil
}
