package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Transaction mirrors a row of the transactions table.
type Transaction struct {
	Seq         int64
	ID          string
	Type        string
	Category    string
	Amount      string
	Description string
	Vendor      string
	OccurredAt  int64
}

// Goal mirrors a row of the goals table.
type Goal struct {
	Seq     int64
	ID      string
	Name    string
	Target  string
	Current string
}

const createTransaction = `
INSERT INTO transactions (id, type, category, amount, description, vendor, occurred_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

type CreateTransactionParams struct {
	ID          string
	Type        string
	Category    string
	Amount      string
	Description string
	Vendor      string
	OccurredAt  int64
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		arg.ID,
		arg.Type,
		arg.Category,
		arg.Amount,
		arg.Description,
		arg.Vendor,
		arg.OccurredAt,
	)
	return err
}

const deleteTransaction = `DELETE FROM transactions WHERE id = ?`

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listTransactions = `
SELECT seq, id, type, category, amount, description, vendor, occurred_at
FROM transactions
ORDER BY occurred_at DESC, seq DESC
LIMIT ?`

// ListTransactions returns rows most recent first. A negative limit returns all rows.
func (q *Queries) ListTransactions(ctx context.Context, limit int64) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.Seq,
			&i.ID,
			&i.Type,
			&i.Category,
			&i.Amount,
			&i.Description,
			&i.Vendor,
			&i.OccurredAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createGoal = `INSERT INTO goals (id, name, target, current) VALUES (?, ?, ?, ?)`

type CreateGoalParams struct {
	ID      string
	Name    string
	Target  string
	Current string
}

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) error {
	_, err := q.db.ExecContext(ctx, createGoal, arg.ID, arg.Name, arg.Target, arg.Current)
	return err
}

const getGoal = `SELECT seq, id, name, target, current FROM goals WHERE id = ?`

func (q *Queries) GetGoal(ctx context.Context, id string) (Goal, error) {
	row := q.db.QueryRowContext(ctx, getGoal, id)
	var i Goal
	err := row.Scan(&i.Seq, &i.ID, &i.Name, &i.Target, &i.Current)
	return i, err
}

const updateGoalCurrent = `UPDATE goals SET current = ? WHERE id = ?`

func (q *Queries) UpdateGoalCurrent(ctx context.Context, id, current string) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateGoalCurrent, current, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listGoals = `SELECT seq, id, name, target, current FROM goals ORDER BY seq ASC`

func (q *Queries) ListGoals(ctx context.Context) ([]Goal, error) {
	rows, err := q.db.QueryContext(ctx, listGoals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Goal
	for rows.Next() {
		var i Goal
		if err := rows.Scan(&i.Seq, &i.ID, &i.Name, &i.Target, &i.Current); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
